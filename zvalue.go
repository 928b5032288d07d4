package zvalue

import (
	"reflect"

	"github.com/wippyai/zvalue/derive"
	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/value"
)

type (
	Value      = value.Value
	OwnedValue = value.OwnedValue
	Signature  = value.Signature
)

// Marshal converts v, a derivable type or a pointer to one, to a Value.
func Marshal(v any) (Value, error) {
	codec, err := codecOf(v)
	if err != nil {
		return Value{}, err
	}
	return codec.Encode(v), nil
}

// MarshalOwned is Marshal for the owned flavor.
func MarshalOwned(v any) (OwnedValue, error) {
	codec, err := codecOf(v)
	if err != nil {
		return OwnedValue{}, err
	}
	return codec.EncodeOwned(v), nil
}

// Unmarshal decodes v into out, a non-nil pointer to a derivable type.
// Strings are copied out of borrowed values.
func Unmarshal(v Value, out any) error {
	codec, err := codecOf(out)
	if err != nil {
		return err
	}
	return codec.Decode(v, out)
}

// UnmarshalOwned is Unmarshal for the owned flavor.
func UnmarshalOwned(o OwnedValue, out any) error {
	codec, err := codecOf(out)
	if err != nil {
		return err
	}
	return codec.DecodeOwned(o, out)
}

// SignatureOf returns the signature of the Value v marshals to.
func SignatureOf(v any) (Signature, error) {
	codec, err := codecOf(v)
	if err != nil {
		return "", err
	}
	return codec.Signature(), nil
}

// RegisterEnum registers an enum with the default compiler.
func RegisterEnum(t reflect.Type, repr string, variants ...derive.Variant) error {
	return derive.Default.RegisterEnum(t, repr, variants...)
}

func codecOf(v any) (*derive.Codec, error) {
	if v == nil {
		return nil, errors.InvalidInput(errors.PhaseDerive, "value cannot be nil")
	}
	return derive.Default.Compile(reflect.TypeOf(v))
}
