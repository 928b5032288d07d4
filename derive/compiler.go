package derive

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/internal/shape"
	"github.com/wippyai/zvalue/value"
)

// Compiler derives and caches codecs. The zero value is not usable; use
// NewCompiler. A Compiler is safe for concurrent use.
type Compiler struct {
	cache  sync.Map // cacheKey -> *Codec
	fields sync.Map // reflect.Type -> *fieldCodec
	enums  sync.Map // reflect.Type -> *enumRegistration
}

type cacheKey struct {
	goType    reflect.Type
	lifetimes string
	flavors   Flavor
}

// session tracks the types being compiled by one Compile call.
type session struct {
	pending map[reflect.Type]bool
}

func newSession() *session {
	return &session{pending: make(map[reflect.Type]bool)}
}

// NewCompiler returns a compiler with an empty cache and no registered
// enums.
func NewCompiler() *Compiler {
	return &Compiler{}
}

func defaultOptions() options {
	return options{flavors: FlavorBoth}
}

// RegisterEnum declares t as a unit enum whose variants are the given
// constants in declaration order. repr names the discriminant width
// (u8, i16, u16, i32, u32, i64, u64); empty means u32.
//
// Enums must be registered before any codec that uses them is compiled.
func (c *Compiler) RegisterEnum(t reflect.Type, repr string, variants ...Variant) error {
	if t == nil {
		return errors.New(errors.PhaseDerive, errors.KindNilPointer).
			Detail("enum type cannot be nil").
			Build()
	}
	if !isIntegerKind(t.Kind()) {
		return errors.New(errors.PhaseDerive, errors.KindInvalidInput).
			Path(typeName(t)).
			GoType(t.String()).
			Detail("enum type must have an integer kind").
			Build()
	}
	if c.compiled(t) {
		return errors.New(errors.PhaseDerive, errors.KindInvalidInput).
			Path(typeName(t)).
			GoType(t.String()).
			Detail("enum registered after first use").
			Build()
	}

	reg := &enumRegistration{
		repr:    repr,
		members: make([]shape.MemberDef, len(variants)),
		natives: make([]reflect.Value, len(variants)),
	}
	for i, v := range variants {
		reg.members[i], reg.natives[i] = member(t, v)
	}
	c.enums.Store(t, reg)

	Logger().Debug("registered enum",
		zap.Stringer("type", t),
		zap.String("repr", repr),
		zap.Int("variants", len(variants)))
	return nil
}

func (c *Compiler) compiled(t reflect.Type) bool {
	if _, ok := c.fields.Load(t); ok {
		return true
	}
	found := false
	c.cache.Range(func(k, _ any) bool {
		if k.(cacheKey).goType == t {
			found = true
			return false
		}
		return true
	})
	return found
}

// Compile derives a codec for t. Pointer types are dereferenced.
// Results are cached per type and options.
func (c *Compiler) Compile(t reflect.Type, opts ...Option) (*Codec, error) {
	if t == nil {
		return nil, errors.New(errors.PhaseDerive, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	codec, err := c.compile(t, buildOptions(opts), newSession(), nil)
	if err != nil {
		Logger().Debug("derive failed", zap.Stringer("type", t), zap.Error(err))
		return nil, err
	}
	return codec, nil
}

func (c *Compiler) compile(t reflect.Type, o options, s *session, path []string) (*Codec, error) {
	key := cacheKey{goType: t, lifetimes: o.key(), flavors: o.flavors}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*Codec), nil
	}

	if s.pending[t] {
		return nil, errors.New(errors.PhaseDerive, errors.KindUnsupportedField).
			Path(path...).
			GoType(t.String()).
			Detail("recursive type has no finite signature").
			Build()
	}
	s.pending[t] = true
	defer delete(s.pending, t)

	desc, err := shape.Analyze(c.definition(t, o), o.flavors)
	if err != nil {
		return nil, err
	}

	var codec *Codec
	switch desc.Kind {
	case KindNamedRecord:
		codec, err = c.emitRecord(t, desc, s)
	case KindSingleFieldWrapper:
		codec, err = c.emitWrapper(t, desc, s)
	case KindUnitEnum:
		codec, err = c.emitEnum(t, desc)
	default:
		err = errors.UnsupportedShape(path, t.String(), "unknown shape")
	}
	if err != nil {
		return nil, err
	}

	actual, loaded := c.cache.LoadOrStore(key, codec)
	if !loaded {
		Logger().Debug("derived codec",
			zap.Stringer("type", t),
			zap.Stringer("kind", desc.Kind),
			zap.String("signature", string(codec.sig)),
			zap.String("lifetime", desc.Lifetime))
	}
	return actual.(*Codec), nil
}

// field returns the codec used for values of t when they appear as a field.
func (c *Compiler) field(t reflect.Type) (*fieldCodec, error) {
	return c.fieldCodec(t, newSession(), []string{typeName(t)})
}

// SignatureOf returns the signature t converts to as a field.
func (c *Compiler) SignatureOf(t reflect.Type) (value.Signature, error) {
	fc, err := c.field(t)
	if err != nil {
		return "", err
	}
	return fc.sig, nil
}
