package value

import "github.com/wippyai/zvalue/errors"

// Structure is an ordered, fixed-arity sequence of heterogeneous Values.
// Elements are positional; a structure carries no field names.
type Structure struct {
	fields []Value
}

// NewStructure returns a structure of fields in order.
func NewStructure(fields ...Value) Structure {
	return Structure{fields: fields}
}

// StructureFrom extracts the structure held by v.
func StructureFrom(v Value) (Structure, error) {
	if v.kind != KindStructure {
		return Structure{}, errors.IncorrectType(nil, "value.Structure", string(v.Signature()))
	}
	return Structure{fields: v.elems}, nil
}

// Fields returns the elements in order. The slice must not be modified.
func (s Structure) Fields() []Value {
	return s.fields
}

// Len returns the number of elements.
func (s Structure) Len() int {
	return len(s.fields)
}

// Signature returns the structure signature, "(" fields ")".
func (s Structure) Signature() Signature {
	return s.Value().Signature()
}

// Value converts s into a structure Value.
func (s Structure) Value() Value {
	return Value{kind: KindStructure, elems: s.fields}
}

// StructureBuilder appends fields in order and builds a Structure.
type StructureBuilder struct {
	fields []Value
}

// NewStructureBuilder returns an empty builder.
func NewStructureBuilder() *StructureBuilder {
	return &StructureBuilder{}
}

// Add appends the next positional field.
func (b *StructureBuilder) Add(v Value) *StructureBuilder {
	b.fields = append(b.fields, v)
	return b
}

// Build returns the structure of the fields added so far.
func (b *StructureBuilder) Build() Structure {
	return Structure{fields: b.fields}
}
