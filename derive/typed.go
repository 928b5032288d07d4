package derive

import (
	"reflect"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/value"
)

// Default is the compiler behind the package-level helpers.
var Default = NewCompiler()

// TypedCodec is a Codec bound to T.
type TypedCodec[T any] struct {
	codec *Codec
}

// For compiles T with c. T must not be a pointer type.
func For[T any](c *Compiler, opts ...Option) (*TypedCodec[T], error) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		return nil, errors.New(errors.PhaseDerive, errors.KindInvalidInput).
			GoType(t.String()).
			Detail("codec type must not be a pointer").
			Build()
	}
	codec, err := c.Compile(t, opts...)
	if err != nil {
		return nil, err
	}
	return &TypedCodec[T]{codec: codec}, nil
}

// MustFor is For with generation errors turned into panics. Use it where a
// type that cannot be derived is a build defect, such as package variables.
func MustFor[T any](c *Compiler, opts ...Option) *TypedCodec[T] {
	tc, err := For[T](c, opts...)
	if err != nil {
		panic(err)
	}
	return tc
}

// Codec returns the untyped codec.
func (tc *TypedCodec[T]) Codec() *Codec {
	return tc.codec
}

// Descriptor returns the analysed shape of T.
func (tc *TypedCodec[T]) Descriptor() *Descriptor {
	return tc.codec.desc
}

// Signature returns the signature every encoded T has.
func (tc *TypedCodec[T]) Signature() value.Signature {
	return tc.codec.sig
}

// Encode converts v. It panics when the value flavor was not derived.
func (tc *TypedCodec[T]) Encode(v T) value.Value {
	tc.codec.mustHave(FlavorValue)
	return tc.codec.encode(reflect.ValueOf(&v).Elem())
}

// EncodeOwned is Encode for the owned flavor.
func (tc *TypedCodec[T]) EncodeOwned(v T) value.OwnedValue {
	tc.codec.mustHave(FlavorOwned)
	return tc.codec.encode(reflect.ValueOf(&v).Elem()).Owned()
}

// Decode converts v into a T. The zero T is returned with any error.
func (tc *TypedCodec[T]) Decode(v value.Value) (T, error) {
	var out T
	if !tc.codec.desc.Flavors.Has(FlavorValue) {
		return out, tc.codec.flavorError(FlavorValue)
	}
	err := tc.codec.decode(v, reflect.ValueOf(&out).Elem(), tc.codec.desc.Borrows())
	return out, err
}

// DecodeOwned is Decode for the owned flavor.
func (tc *TypedCodec[T]) DecodeOwned(o value.OwnedValue) (T, error) {
	var out T
	if !tc.codec.desc.Flavors.Has(FlavorOwned) {
		return out, tc.codec.flavorError(FlavorOwned)
	}
	err := tc.codec.decode(o.Value(), reflect.ValueOf(&out).Elem(), true)
	return out, err
}

// The helpers below convert single field values with the Default compiler.
// Generated code uses them for fields it cannot convert statically, such as
// fields whose type is a type parameter. The capability check happens once
// per type, on first use.

func mustField(t reflect.Type) *fieldCodec {
	fc, err := Default.field(t)
	if err != nil {
		panic(err)
	}
	return fc
}

// Marshal converts v. It panics when T has no Value representation.
func Marshal[T any](v T) value.Value {
	return mustField(reflect.TypeFor[T]()).encode(reflect.ValueOf(&v).Elem())
}

// MarshalField is Marshal for structure elements: values whose signature is
// "v" are wrapped in a variant.
func MarshalField[T any](v T) value.Value {
	fc := mustField(reflect.TypeFor[T]())
	return fc.box(fc.encode(reflect.ValueOf(&v).Elem()))
}

// Unmarshal populates dst from v, copying borrowed strings.
func Unmarshal[T any](v value.Value, dst *T) error {
	return unmarshal(v, dst, false)
}

// UnmarshalBorrowed is Unmarshal keeping borrowed strings aliased to the
// source buffer.
func UnmarshalBorrowed[T any](v value.Value, dst *T) error {
	return unmarshal(v, dst, true)
}

func unmarshal[T any](v value.Value, dst *T, keep bool) error {
	t := reflect.TypeFor[T]()
	if dst == nil {
		return errors.NilPointer(errors.PhaseDecode, nil, "*"+t.String())
	}
	fc, err := Default.field(t)
	if err != nil {
		return err
	}

	// Decode into a temporary so dst is untouched on failure.
	var tmp T
	if err := fc.decode(v, reflect.ValueOf(&tmp).Elem(), keep); err != nil {
		return err
	}
	*dst = tmp
	return nil
}

// SignatureFor returns the signature T converts to. It panics when T has
// no Value representation.
func SignatureFor[T any]() value.Signature {
	return mustField(reflect.TypeFor[T]()).sig
}
