package derive

import "github.com/wippyai/zvalue/internal/shape"

// Descriptor is the analysed shape a codec is emitted from.
type Descriptor = shape.Descriptor
// DescriptorKind selects the codec emitter.
type DescriptorKind = shape.Kind
// Flavor selects the Value and OwnedValue conversions.
type Flavor = shape.Flavor

const (
	KindNamedRecord        = shape.KindNamedRecord
	KindSingleFieldWrapper = shape.KindSingleFieldWrapper
	KindUnitEnum           = shape.KindUnitEnum
)

const (
	FlavorValue = shape.FlavorValue
	FlavorOwned = shape.FlavorOwned
	FlavorBoth  = shape.FlavorBoth
)

// Variant declares one member of a registered enum. Value must be a constant
// of the enum type; its numeric value is the discriminant.
type Variant struct {
	Value any
	Name  string
}
