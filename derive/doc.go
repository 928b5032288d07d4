// Package derive emits Value codecs for Go types at runtime.
//
// A Compiler inspects a type through reflection, builds a definition for it,
// runs the shape analysis (classification, validation and repr resolution)
// and turns the resulting descriptor into a Codec:
//
//	c := derive.NewCompiler()
//	codec, err := c.Compile(reflect.TypeFor[Point]())
//	v := codec.Encode(Point{X: 3, Y: 4}) // Structure(I32(3), I32(4))
//
// Supported shapes:
//
//	struct with named fields   Structure, one element per field in order
//	struct with one embedded   the embedded field's Value
//	defined non-struct type    the underlying type's Value
//	registered enum            integer Value at the enum's repr
//
// Go has no enum declarations, so enums are registered explicitly:
//
//	c.RegisterEnum(reflect.TypeFor[Color](), "u8",
//		derive.Variant{Name: "Red", Value: Red},
//		derive.Variant{Name: "Green", Value: Green})
//
// Field types map as follows:
//
//	bool      b      int16   n      uint16  q
//	uint8     y      int32   i      uint32  u
//	int64,int x      uint64,uint t  float64 d
//	string    s      value.Signature g
//	value.Value and value.OwnedValue v
//	[]T and [N]T   aT
//
// Nested structs and defined types are derived recursively. Types that
// implement value.Marshaler, value.Typed and (through their pointer)
// value.Unmarshaler use those methods instead.
//
// # Borrowing
//
// Codecs compiled with Borrow keep strings decoded from a borrowed Value
// aliased to the source buffer. All other codecs copy borrowed strings so
// decoded values stay valid after the buffer changes. Decoding from an
// OwnedValue never copies.
//
// Codecs are immutable and safe for concurrent use.
package derive
