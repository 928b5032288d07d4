package shape

import "github.com/wippyai/zvalue/errors"

var paramCapabilities = []Capability{CapMarshal, CapUnmarshal, CapTyped}

// Validate checks shape-specific preconditions and records the resolved
// lifetime and type parameter bounds on d.
func Validate(d *Descriptor, flavors Flavor) error {
	if flavors == 0 {
		flavors = FlavorBoth
	}
	d.Flavors = flavors

	if d.Kind == KindUnitEnum {
		// Enums hold no borrowed data and take no type parameters.
		d.Lifetime = StaticLifetime
		for _, v := range d.Variants {
			switch v.Disc {
			case DiscLiteral:
			case DiscNone:
				return errors.InvalidDiscriminant(d.path(), v.Name, "expected `Name = Value` variants")
			default:
				return errors.InvalidDiscriminant(d.path(), v.Name,
					"discriminant `"+v.Literal+"` is not a literal")
			}
		}
		return nil
	}

	d.Lifetime = StaticLifetime
	if flavors.Has(FlavorValue) {
		if len(d.Lifetimes) > 1 {
			return errors.TooManyLifetimes(d.path(), d.Lifetimes)
		}
		if len(d.Lifetimes) == 1 {
			d.Lifetime = d.Lifetimes[0]
		}
	}

	d.Bounds = make([]Bound, len(d.TypeParams))
	for i, p := range d.TypeParams {
		d.Bounds[i] = Bound{Param: p, Requires: paramCapabilities}
	}
	return nil
}
