package derive

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/value"
)

// encodeFunc converts a Go value of the compiled type into a Value.
type encodeFunc func(rv reflect.Value) value.Value

// decodeFunc populates dst from v. dst is always addressable. keep is set
// when string data may stay aliased to a borrowed source.
type decodeFunc func(v value.Value, dst reflect.Value, keep bool) error

// fieldCodec converts one field type. Codecs are cached per Go type and
// carry no path, so errors they return are positioned by the caller.
type fieldCodec struct {
	encode encodeFunc
	decode decodeFunc
	sig    value.Signature
}

// box wraps v in a variant when the field's signature is "v", so that
// container elements carry their own signature.
func (fc *fieldCodec) box(v value.Value) value.Value {
	if fc.sig == value.SignatureVariant {
		return value.NewVariant(v)
	}
	return v
}

func (fc *fieldCodec) unbox(v value.Value) value.Value {
	if fc.sig == value.SignatureVariant {
		return v.Downcast()
	}
	return v
}

var (
	valueType       = reflect.TypeFor[value.Value]()
	ownedValueType  = reflect.TypeFor[value.OwnedValue]()
	signatureType   = reflect.TypeFor[value.Signature]()
	structureType   = reflect.TypeFor[value.Structure]()
	marshalerType   = reflect.TypeFor[value.Marshaler]()
	unmarshalerType = reflect.TypeFor[value.Unmarshaler]()
	typedType       = reflect.TypeFor[value.Typed]()
)

func (c *Compiler) fieldCodec(t reflect.Type, s *session, path []string) (*fieldCodec, error) {
	if cached, ok := c.fields.Load(t); ok {
		return cached.(*fieldCodec), nil
	}

	fc, err := c.buildFieldCodec(t, s, path)
	if err != nil {
		return nil, err
	}

	actual, _ := c.fields.LoadOrStore(t, fc)
	return actual.(*fieldCodec), nil
}

func (c *Compiler) buildFieldCodec(t reflect.Type, s *session, path []string) (*fieldCodec, error) {
	switch t {
	case valueType:
		return valueCodec(), nil
	case ownedValueType:
		return ownedValueCodec(), nil
	case signatureType:
		return signatureCodec(), nil
	case structureType:
		return nil, errors.UnsupportedField(path, t.String())
	}

	if implementsCapabilities(t) {
		return capabilityCodec(t), nil
	}

	if isDefined(t) {
		if _, ok := c.enums.Load(t); ok || t.Kind() == reflect.Struct || supportedKind(t.Kind()) {
			return c.shapeCodec(t, s, path)
		}
		return nil, errors.UnsupportedField(path, t.String())
	}
	if t.Kind() == reflect.Struct {
		return c.shapeCodec(t, s, path)
	}
	return c.kindCodec(t, s, path)
}

// shapeCodec derives t as a type of its own and uses the result as a field
// codec.
func (c *Compiler) shapeCodec(t reflect.Type, s *session, path []string) (*fieldCodec, error) {
	codec, err := c.compile(t, defaultOptions(), s, path)
	if err != nil {
		return nil, err
	}
	return &fieldCodec{sig: codec.sig, encode: codec.encode, decode: codec.decode}, nil
}

// kindCodec converts t by its reflect kind. It never consults the shape of
// t, which makes it the inner codec of defined non-struct types.
func (c *Compiler) kindCodec(t reflect.Type, s *session, path []string) (*fieldCodec, error) {
	switch t.Kind() {
	case reflect.Bool:
		return boolCodec(t), nil
	case reflect.Uint8:
		return integerCodec(t, value.KindU8), nil
	case reflect.Int16:
		return integerCodec(t, value.KindI16), nil
	case reflect.Uint16:
		return integerCodec(t, value.KindU16), nil
	case reflect.Int32:
		return integerCodec(t, value.KindI32), nil
	case reflect.Uint32:
		return integerCodec(t, value.KindU32), nil
	case reflect.Int64, reflect.Int:
		return integerCodec(t, value.KindI64), nil
	case reflect.Uint64, reflect.Uint:
		return integerCodec(t, value.KindU64), nil
	case reflect.Float64:
		return floatCodec(t), nil
	case reflect.String:
		return stringCodec(t), nil
	case reflect.Slice:
		return c.sliceCodec(t, s, path)
	case reflect.Array:
		return c.arrayCodec(t, s, path)
	default:
		return nil, errors.UnsupportedField(path, t.String())
	}
}

func supportedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.Uint8, reflect.Int16, reflect.Uint16,
		reflect.Int32, reflect.Uint32, reflect.Int64, reflect.Uint64,
		reflect.Int, reflect.Uint, reflect.Float64, reflect.String,
		reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return isSignedKind(k)
}

// isDefined reports whether t is a declared type rather than a predeclared
// or unnamed composite one.
func isDefined(t reflect.Type) bool {
	return t.Name() != "" && t.PkgPath() != ""
}

func implementsCapabilities(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return false
	}
	return t.Implements(marshalerType) && t.Implements(typedType) &&
		reflect.PointerTo(t).Implements(unmarshalerType)
}

func mismatch(t reflect.Type, v value.Value) error {
	return errors.IncorrectType(nil, t.String(), string(v.Signature()))
}

func valueCodec() *fieldCodec {
	return &fieldCodec{
		sig: value.SignatureVariant,
		encode: func(rv reflect.Value) value.Value {
			return rv.Interface().(value.Value)
		},
		decode: func(v value.Value, dst reflect.Value, keep bool) error {
			if !keep && v.IsBorrowed() {
				v = v.Owned().Value()
			}
			dst.Set(reflect.ValueOf(v))
			return nil
		},
	}
}

func ownedValueCodec() *fieldCodec {
	return &fieldCodec{
		sig: value.SignatureVariant,
		encode: func(rv reflect.Value) value.Value {
			return rv.Interface().(value.OwnedValue).Value()
		},
		decode: func(v value.Value, dst reflect.Value, _ bool) error {
			dst.Set(reflect.ValueOf(v.Owned()))
			return nil
		},
	}
}

func signatureCodec() *fieldCodec {
	return &fieldCodec{
		sig: value.ScalarSignature(value.KindSignature),
		encode: func(rv reflect.Value) value.Value {
			return value.NewSignature(value.Signature(rv.String()))
		},
		decode: func(v value.Value, dst reflect.Value, _ bool) error {
			sig, err := v.AsSignature()
			if err != nil {
				return mismatch(signatureType, v)
			}
			dst.SetString(string(sig))
			return nil
		},
	}
}

func capabilityCodec(t reflect.Type) *fieldCodec {
	sig := reflect.Zero(t).Interface().(value.Typed).ValueSignature()
	return &fieldCodec{
		sig: sig,
		encode: func(rv reflect.Value) value.Value {
			return rv.Interface().(value.Marshaler).MarshalValue()
		},
		decode: func(v value.Value, dst reflect.Value, _ bool) error {
			return dst.Addr().Interface().(value.Unmarshaler).UnmarshalValue(v)
		},
	}
}

func boolCodec(t reflect.Type) *fieldCodec {
	return &fieldCodec{
		sig: value.ScalarSignature(value.KindBool),
		encode: func(rv reflect.Value) value.Value {
			return value.Bool(rv.Bool())
		},
		decode: func(v value.Value, dst reflect.Value, _ bool) error {
			b, err := v.AsBool()
			if err != nil {
				return mismatch(t, v)
			}
			dst.SetBool(b)
			return nil
		},
	}
}

func integerCodec(t reflect.Type, k value.Kind) *fieldCodec {
	signed := isSignedKind(t.Kind())
	return &fieldCodec{
		sig: value.ScalarSignature(k),
		encode: func(rv reflect.Value) value.Value {
			if signed {
				return value.Integer(k, uint64(rv.Int()))
			}
			return value.Integer(k, rv.Uint())
		},
		decode: func(v value.Value, dst reflect.Value, _ bool) error {
			bits, err := v.AsInteger(k)
			if err != nil {
				return mismatch(t, v)
			}
			if signed {
				dst.SetInt(int64(bits))
			} else {
				dst.SetUint(bits)
			}
			return nil
		},
	}
}

func floatCodec(t reflect.Type) *fieldCodec {
	return &fieldCodec{
		sig: value.ScalarSignature(value.KindF64),
		encode: func(rv reflect.Value) value.Value {
			return value.F64(rv.Float())
		},
		decode: func(v value.Value, dst reflect.Value, _ bool) error {
			f, err := v.AsF64()
			if err != nil {
				return mismatch(t, v)
			}
			dst.SetFloat(f)
			return nil
		},
	}
}

func stringCodec(t reflect.Type) *fieldCodec {
	return &fieldCodec{
		sig: value.ScalarSignature(value.KindStr),
		encode: func(rv reflect.Value) value.Value {
			return value.Str(rv.String())
		},
		decode: func(v value.Value, dst reflect.Value, keep bool) error {
			var s string
			var err error
			if keep {
				s, err = v.AsStr()
			} else {
				s, err = v.AsOwnedStr()
			}
			if err != nil {
				return mismatch(t, v)
			}
			dst.SetString(s)
			return nil
		},
	}
}

func (c *Compiler) sliceCodec(t reflect.Type, s *session, path []string) (*fieldCodec, error) {
	elem, err := c.fieldCodec(t.Elem(), s, path)
	if err != nil {
		return nil, err
	}

	return &fieldCodec{
		sig: value.ArrayOf(elem.sig),
		encode: func(rv reflect.Value) value.Value {
			return encodeElems(elem, rv)
		},
		decode: func(v value.Value, dst reflect.Value, keep bool) error {
			elems, err := arrayElems(t, elem, v)
			if err != nil {
				return err
			}
			if len(elems) == 0 {
				dst.Set(reflect.Zero(t))
				return nil
			}
			out := reflect.MakeSlice(t, len(elems), len(elems))
			if err := decodeElems(t, elem, elems, out, keep); err != nil {
				return err
			}
			dst.Set(out)
			return nil
		},
	}, nil
}

func (c *Compiler) arrayCodec(t reflect.Type, s *session, path []string) (*fieldCodec, error) {
	elem, err := c.fieldCodec(t.Elem(), s, path)
	if err != nil {
		return nil, err
	}

	n := t.Len()
	return &fieldCodec{
		sig: value.ArrayOf(elem.sig),
		encode: func(rv reflect.Value) value.Value {
			return encodeElems(elem, addressable(rv))
		},
		decode: func(v value.Value, dst reflect.Value, keep bool) error {
			elems, err := arrayElems(t, elem, v)
			if err != nil {
				return err
			}
			if len(elems) != n {
				return errors.New(errors.PhaseDecode, errors.KindIncorrectType).
					GoType(t.String()).
					ValueType(string(v.Signature())).
					Detail("array has %d elements, need %d", len(elems), n).
					Build()
			}
			out := reflect.New(t).Elem()
			if err := decodeElems(t, elem, elems, out, keep); err != nil {
				return err
			}
			dst.Set(out)
			return nil
		},
	}, nil
}

func encodeElems(elem *fieldCodec, rv reflect.Value) value.Value {
	n := rv.Len()
	if n == 0 {
		return value.NewArray(elem.sig)
	}
	elems := make([]value.Value, n)
	for i := 0; i < n; i++ {
		elems[i] = elem.box(elem.encode(rv.Index(i)))
	}
	return value.NewArray(elem.sig, elems...)
}

func arrayElems(t reflect.Type, elem *fieldCodec, v value.Value) ([]value.Value, error) {
	sig, elems, err := v.AsArray()
	if err != nil || sig != elem.sig {
		return nil, mismatch(t, v)
	}
	return elems, nil
}

func decodeElems(t reflect.Type, elem *fieldCodec, elems []value.Value, out reflect.Value, keep bool) error {
	for i, e := range elems {
		if err := elem.decode(elem.unbox(e), out.Index(i), keep); err != nil {
			return errors.New(errors.PhaseDecode, errors.KindIncorrectType).
				GoType(t.String()).
				ValueType(string(e.Signature())).
				Detail("element %d: %v", i, err).
				Build()
		}
	}
	return nil
}

func addressable(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv
	}
	tmp := reflect.New(rv.Type()).Elem()
	tmp.Set(rv)
	return tmp
}

// fieldOf returns field i of the addressable struct rv. Unexported fields
// are reached through their address so they can be read and set.
func fieldOf(rv reflect.Value, i int) reflect.Value {
	f := rv.Field(i)
	if f.CanSet() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}
