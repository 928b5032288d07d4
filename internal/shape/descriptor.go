package shape

import "github.com/wippyai/zvalue/value"

// Kind is the category of an analysed type and selects its codec emitter.
type Kind uint8

const (
	KindNamedRecord Kind = iota + 1
	KindSingleFieldWrapper
	KindUnitEnum
)

var kindNames = [...]string{
	KindNamedRecord:        "record",
	KindSingleFieldWrapper: "wrapper",
	KindUnitEnum:           "enum",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Flavor selects which Value ownership flavors a codec is derived for.
type Flavor uint8

const (
	FlavorValue Flavor = 1 << iota // borrowing value.Value
	FlavorOwned                    // value.OwnedValue

	FlavorBoth = FlavorValue | FlavorOwned
)

// Has reports whether every flavor in o is set in f.
func (f Flavor) Has(o Flavor) bool {
	return f&o != 0
}

// StaticLifetime is the lifetime of types that declare no borrow.
const StaticLifetime = "static"

// Capability is a conversion capability a type parameter must provide.
type Capability string

const (
	CapMarshal   Capability = "value.Marshaler"
	CapUnmarshal Capability = "value.Unmarshaler"
	CapTyped     Capability = "value.Typed"
)

// Bound pairs a type parameter with the capabilities the derived codec
// requires of it.
type Bound struct {
	Param    string
	Requires []Capability
}

// Field is one record field, positioned by its order among non-blank
// fields. Index is the field's position in the Go struct.
type Field struct {
	Type  TypeRef
	Name  string
	Index int
}

// Variant is one enum member and its resolved discriminant.
type Variant struct {
	Value   value.Value // discriminant at the resolved repr, set by ResolveRepr
	Name    string
	Literal string
	Disc    DiscKind
}

// Descriptor is the classified, validated description of a type.
type Descriptor struct {
	Inner      TypeRef
	Name       string
	Lifetime   string
	Fields     []Field
	Variants   []Variant
	TypeParams []string
	Lifetimes  []string
	Bounds     []Bound
	Kind       Kind
	Repr       value.Kind
	Flavors    Flavor
}

// Borrows reports whether decoded values may alias the source buffer.
func (d *Descriptor) Borrows() bool {
	return d.Lifetime != "" && d.Lifetime != StaticLifetime
}

func (d *Descriptor) path(more ...string) []string {
	return append([]string{d.Name}, more...)
}
