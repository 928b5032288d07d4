package value

// OwnedValue is a Value that owns all of its data. It never aliases a
// caller buffer and stays valid independently of any source.
type OwnedValue struct {
	v Value
}

// Value returns the held Value. The result owns its data.
func (o OwnedValue) Value() Value {
	return o.v
}

// Kind returns the kind of the held Value.
func (o OwnedValue) Kind() Kind {
	return o.v.Kind()
}

// Signature returns the signature of the held Value.
func (o OwnedValue) Signature() Signature {
	return o.v.Signature()
}

// Equal reports whether both hold equal Values.
func (o OwnedValue) Equal(other OwnedValue) bool {
	return o.v.Equal(other.v)
}

func (o OwnedValue) String() string {
	return o.v.String()
}
