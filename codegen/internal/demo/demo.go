// Package demo declares derived types whose generated conversions are
// committed in zvalue_gen.go. Regenerate with:
//
//	zvalue-gen -C codegen/internal/demo .
package demo

import "github.com/wippyai/zvalue/value"

// Point is a position on a grid.
//
//zvalue:derive
type Point struct {
	X, Y int32
}

// Color is a palette entry. Crimson repeats Red's discriminant.
//
//zvalue:derive
//zvalue:repr u8
type Color uint16

const (
	Red     Color = 1
	Green   Color = 2
	Crimson Color = 1
)

//zvalue:derive
type Meters float64

// Length is only converted through owned values.
//
//zvalue:derive owned
type Length struct {
	Meters
}

//zvalue:derive
type Pair[K any, V any] struct {
	Key K
	Val []V
}

//zvalue:derive
type Outer struct {
	In    Point
	Tags  []string
	Extra value.Value
}

// View keeps decoded strings pointing into the source buffer.
//
//zvalue:derive
//zvalue:borrow buf
type View struct {
	Name string
}
