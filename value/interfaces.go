package value

// Marshaler is implemented by types that convert themselves into a Value.
type Marshaler interface {
	MarshalValue() Value
}

// Unmarshaler is implemented by types that can be populated from a Value.
// Implementations fail with an incorrect_type or arity_mismatch error when
// the Value's shape does not match.
type Unmarshaler interface {
	UnmarshalValue(Value) error
}

// Typed is implemented by types that describe the signature of the Value
// they marshal to.
type Typed interface {
	ValueSignature() Signature
}

// OwnedMarshaler is the OwnedValue analogue of Marshaler.
type OwnedMarshaler interface {
	MarshalOwnedValue() OwnedValue
}

// OwnedUnmarshaler is the OwnedValue analogue of Unmarshaler.
type OwnedUnmarshaler interface {
	UnmarshalOwnedValue(OwnedValue) error
}
