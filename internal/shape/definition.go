package shape

import "reflect"

// Category is the declared category of a type before classification.
type Category uint8

const (
	CategoryOther   Category = iota
	CategoryStruct           // struct type
	CategoryNewtype          // defined type over a non-struct, non-enum type
	CategoryEnum             // integer type with declared members
)

var categoryNames = [...]string{
	CategoryOther:   "other",
	CategoryStruct:  "struct",
	CategoryNewtype: "newtype",
	CategoryEnum:    "enum",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// DiscKind tells how an enum member states its discriminant.
type DiscKind uint8

const (
	DiscNone    DiscKind = iota // no discriminant
	DiscLiteral                 // integer or rune literal
	DiscExpr                    // any other expression
)

// TypeRef refers to a field or inner type.
type TypeRef struct {
	Reflect reflect.Type // set by the reflect frontend
	Expr    string       // Go type expression
	Param   bool         // names a type parameter of the enclosing type
}

func (r TypeRef) String() string {
	if r.Expr == "" && r.Reflect != nil {
		return r.Reflect.String()
	}
	return r.Expr
}

// FieldDef is a struct field as declared.
type FieldDef struct {
	Type     TypeRef
	Name     string
	Index    int // position in the Go struct
	Embedded bool
}

// MemberDef is an enum member as declared, with its discriminant text.
type MemberDef struct {
	Name     string
	DiscText string
	Disc     DiscKind
	HasData  bool
}

// Definition is the unclassified description of one declared type.
type Definition struct {
	Underlying TypeRef // CategoryNewtype only
	Name       string
	Repr       string // representation annotation, empty when absent
	Fields     []FieldDef
	Members    []MemberDef
	TypeParams []string
	Lifetimes  []string
	Category   Category
}
