// Package header holds message header fields keyed by a small integer code.
package header

import (
	"slices"

	"github.com/wippyai/zvalue/derive"
	"github.com/wippyai/zvalue/value"
)

// MaxFields is the capacity a header starts with: the ten protocol fields
// rounded up to a multiple of eight.
const MaxFields = 16

// Field is one header entry. It encodes as (yv).
type Field struct {
	Code  uint8
	Value value.Value
}

// Fields is an ordered list of header fields. Codes may repeat; lookups
// return the first match. The zero value is an empty header. Take never
// modifies storage that a copy of the list may still see.
type Fields struct {
	list []Field
}

// New returns an empty field list with room for MaxFields entries.
func New() *Fields {
	return &Fields{list: make([]Field, 0, MaxFields)}
}

// Add appends a field, keeping any earlier field with the same code.
func (f *Fields) Add(code uint8, v value.Value) {
	f.list = append(f.list, Field{Code: code, Value: v})
}

// Get returns the value of the first field with code.
func (f *Fields) Get(code uint8) (value.Value, bool) {
	if i := f.index(code); i >= 0 {
		return f.list[i].Value, true
	}
	return value.Value{}, false
}

// Take removes the first field with code and returns its value.
func (f *Fields) Take(code uint8) (value.Value, bool) {
	i := f.index(code)
	if i < 0 {
		return value.Value{}, false
	}
	v := f.list[i].Value
	list := make([]Field, 0, max(cap(f.list), MaxFields))
	f.list = slices.Delete(append(list, f.list...), i, i+1)
	return v, true
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return len(f.list)
}

// All returns a copy of the fields in insertion order.
func (f *Fields) All() []Field {
	out := make([]Field, len(f.list))
	copy(out, f.list)
	return out
}

func (f *Fields) index(code uint8) int {
	for i := range f.list {
		if f.list[i].Code == code {
			return i
		}
	}
	return -1
}

// ValueSignature implements value.Typed.
func (Fields) ValueSignature() value.Signature {
	return derive.SignatureFor[[]Field]()
}

// MarshalValue implements value.Marshaler.
func (f Fields) MarshalValue() value.Value {
	return derive.Marshal(f.list)
}

// UnmarshalValue implements value.Unmarshaler. On failure f is unchanged.
func (f *Fields) UnmarshalValue(v value.Value) error {
	var list []Field
	if err := derive.Unmarshal(v, &list); err != nil {
		return err
	}
	f.list = list
	return nil
}
