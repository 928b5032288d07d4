package derive

import (
	"fmt"
	"reflect"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/value"
)

// Codec converts between one Go type and Value. Codecs are immutable.
type Codec struct {
	desc   *Descriptor
	goType reflect.Type
	encode encodeFunc
	decode decodeFunc
	sig    value.Signature
}

func newCodec(t reflect.Type, d *Descriptor, sig value.Signature, enc encodeFunc, dec decodeFunc) *Codec {
	return &Codec{desc: d, goType: t, sig: sig, encode: enc, decode: dec}
}

// Descriptor returns the analysed shape the codec was emitted from.
func (c *Codec) Descriptor() *Descriptor {
	return c.desc
}

// Signature returns the signature of every Value the codec encodes.
func (c *Codec) Signature() value.Signature {
	return c.sig
}

// GoType returns the Go type the codec converts.
func (c *Codec) GoType() reflect.Type {
	return c.goType
}

// Encode converts v, which must be of the compiled type or a pointer to
// it. Encoding returns no error; a value of another type, or an enum value
// naming no declared variant, is a programming error and panics.
func (c *Codec) Encode(v any) value.Value {
	c.mustHave(FlavorValue)
	return c.encode(c.source(v))
}

// EncodeOwned is Encode for the owned flavor.
func (c *Codec) EncodeOwned(v any) value.OwnedValue {
	c.mustHave(FlavorOwned)
	return c.encode(c.source(v)).Owned()
}

// Decode populates out, a non-nil pointer to the compiled type, from v.
// out is left unchanged when decoding fails.
func (c *Codec) Decode(v value.Value, out any) error {
	if !c.desc.Flavors.Has(FlavorValue) {
		return c.flavorError(FlavorValue)
	}
	dst, err := c.target(out)
	if err != nil {
		return err
	}
	return c.decode(v, dst, c.desc.Borrows())
}

// DecodeOwned is Decode for the owned flavor. Owned values hold no
// borrowed data, so strings are never copied.
func (c *Codec) DecodeOwned(o value.OwnedValue, out any) error {
	if !c.desc.Flavors.Has(FlavorOwned) {
		return c.flavorError(FlavorOwned)
	}
	dst, err := c.target(out)
	if err != nil {
		return err
	}
	return c.decode(o.Value(), dst, true)
}

func (c *Codec) source(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		panic(errors.NilPointer(errors.PhaseEncode, []string{c.desc.Name}, c.goType.String()))
	}
	if rv.Kind() == reflect.Pointer && rv.Type().Elem() == c.goType {
		if rv.IsNil() {
			panic(errors.NilPointer(errors.PhaseEncode, []string{c.desc.Name}, rv.Type().String()))
		}
		return rv.Elem()
	}
	if rv.Type() != c.goType {
		panic(errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Path(c.desc.Name).
			GoType(fmt.Sprintf("%T", v)).
			Detail("codec converts %s", c.goType).
			Build())
	}
	return rv
}

func (c *Codec) target(out any) (reflect.Value, error) {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Type().Elem() != c.goType {
		return reflect.Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Path(c.desc.Name).
			GoType(fmt.Sprintf("%T", out)).
			Detail("out must be *%s", c.goType).
			Build()
	}
	if rv.IsNil() {
		return reflect.Value{}, errors.NilPointer(errors.PhaseDecode, []string{c.desc.Name}, rv.Type().String())
	}
	return rv.Elem(), nil
}

func (c *Codec) mustHave(f Flavor) {
	if !c.desc.Flavors.Has(f) {
		panic(c.flavorError(f))
	}
}

func (c *Codec) flavorError(f Flavor) error {
	name := "value"
	if f == FlavorOwned {
		name = "owned"
	}
	return errors.New(errors.PhaseDerive, errors.KindInvalidInput).
		Path(c.desc.Name).
		GoType(c.goType.String()).
		Detail("codec not derived for the %s flavor", name).
		Build()
}
