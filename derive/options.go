package derive

import "strings"

// Option configures a single Compile call.
type Option func(*options)

type options struct {
	lifetimes []string
	flavors   Flavor
}

// Borrow declares a lifetime on the compiled type. A type with one lifetime
// decodes strings as views into the source buffer. Declaring two fails with
// too_many_lifetimes unless only the owned flavor is requested.
func Borrow(lifetime string) Option {
	return func(o *options) {
		o.lifetimes = append(o.lifetimes, lifetime)
	}
}

// Flavors restricts the Value flavors the codec is derived for.
// The default is FlavorBoth.
func Flavors(f Flavor) Option {
	return func(o *options) {
		o.flavors = f
	}
}

func buildOptions(opts []Option) options {
	o := options{flavors: FlavorBoth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.flavors == 0 {
		o.flavors = FlavorBoth
	}
	return o
}

func (o options) key() string {
	return strings.Join(o.lifetimes, ",")
}
