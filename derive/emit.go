package derive

import (
	"reflect"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/value"
)

type recordField struct {
	codec  *fieldCodec
	goType reflect.Type
	name   string
	index  int
}

func (c *Compiler) emitRecord(t reflect.Type, d *Descriptor, s *session) (*Codec, error) {
	fields := make([]recordField, len(d.Fields))
	sigs := make([]value.Signature, len(d.Fields))
	for i, f := range d.Fields {
		fc, err := c.fieldCodec(f.Type.Reflect, s, []string{d.Name, f.Name})
		if err != nil {
			return nil, err
		}
		fields[i] = recordField{codec: fc, goType: f.Type.Reflect, name: f.Name, index: f.Index}
		sigs[i] = fc.sig
	}

	name := d.Name
	encode := func(rv reflect.Value) value.Value {
		rv = addressable(rv)
		b := value.NewStructureBuilder()
		for i := range fields {
			f := &fields[i]
			b.Add(f.codec.box(f.codec.encode(fieldOf(rv, f.index))))
		}
		return b.Build().Value()
	}

	// Elements are consumed in field order. Trailing extra elements are
	// ignored and dst is only written once every field decoded.
	decode := func(v value.Value, dst reflect.Value, keep bool) error {
		st, err := value.StructureFrom(v)
		if err != nil {
			return errors.IncorrectType([]string{name}, t.String(), string(v.Signature()))
		}
		elems := st.Fields()

		if len(elems) < len(fields) {
			return errors.ArityMismatch([]string{name}, len(fields), len(elems))
		}

		tmp := reflect.New(t).Elem()
		for i := range fields {
			f := &fields[i]
			if err := f.codec.decode(elems[i].Downcast(), fieldOf(tmp, f.index), keep); err != nil {
				return FieldError(name, f.name, f.goType.String(), elems[i], err)
			}
		}
		dst.Set(tmp)
		return nil
	}

	return newCodec(t, d, value.StructOf(sigs...), encode, decode), nil
}

func (c *Compiler) emitWrapper(t reflect.Type, d *Descriptor, s *session) (*Codec, error) {
	if t.Kind() != reflect.Struct {
		inner, err := c.kindCodec(t, s, []string{d.Name})
		if err != nil {
			return nil, err
		}
		return newCodec(t, d, inner.sig, inner.encode, inner.decode), nil
	}

	index := wrappedIndex(t)
	inner, err := c.fieldCodec(d.Inner.Reflect, s, []string{d.Name, d.Inner.String()})
	if err != nil {
		return nil, err
	}

	encode := func(rv reflect.Value) value.Value {
		return inner.encode(fieldOf(addressable(rv), index))
	}
	decode := func(v value.Value, dst reflect.Value, keep bool) error {
		tmp := reflect.New(t).Elem()
		if err := inner.decode(v, fieldOf(tmp, index), keep); err != nil {
			return err
		}
		dst.Set(tmp)
		return nil
	}
	return newCodec(t, d, inner.sig, encode, decode), nil
}

// wrappedIndex returns the index of the only non-blank field of t.
func wrappedIndex(t reflect.Type) int {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Name != "_" {
			return i
		}
	}
	return 0
}

func (c *Compiler) emitEnum(t reflect.Type, d *Descriptor) (*Codec, error) {
	reg, _ := c.enums.Load(t)
	natives := reg.(*enumRegistration).natives
	signed := isSignedKind(t.Kind())
	name := d.Name

	bits := func(rv reflect.Value) uint64 {
		if signed {
			return uint64(rv.Int())
		}
		return rv.Uint()
	}
	index := make(map[uint64]int, len(natives))
	for i := range natives {
		if _, ok := index[bits(natives[i])]; !ok {
			index[bits(natives[i])] = i
		}
	}

	// Only declared variants encode; any other native value is a
	// programming error.
	encode := func(rv reflect.Value) value.Value {
		i, ok := index[bits(rv)]
		if !ok {
			panic(errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Path(name).
				GoType(t.String()).
				Detail("%v is not a declared variant", rv).
				Build())
		}
		return d.Variants[i].Value
	}

	// First declared variant wins when discriminants repeat.
	decode := func(v value.Value, dst reflect.Value, _ bool) error {
		for i := range d.Variants {
			if d.Variants[i].Value.Equal(v) {
				dst.Set(natives[i])
				return nil
			}
		}
		return errors.IncorrectType([]string{name}, t.String(), string(v.Signature()))
	}

	return newCodec(t, d, value.ScalarSignature(d.Repr), encode, decode), nil
}

// FieldError reports a structure element that could not be converted into
// the field it is positioned at. The failure is always incorrect_type; the
// cause is kept as detail only.
func FieldError(typeName, field, goType string, elem value.Value, err error) error {
	return errors.New(errors.PhaseDecode, errors.KindIncorrectType).
		Path(typeName, field).
		GoType(goType).
		ValueType(string(elem.Signature())).
		Detail("%v", err).
		Build()
}
