// Package zvalue converts Go types to and from Value, a self-describing
// tagged container whose structures are positional and carry no field names.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	zvalue/              Root package with Marshal and Unmarshal over the default compiler
//	├── value/           Value, OwnedValue, Signature and the conversion interfaces
//	├── derive/          Reflection-driven codec emitter with a per-type cache
//	├── codegen/         Source frontend and generator for //zvalue:derive types
//	├── header/          Ordered header fields keyed by code
//	├── errors/          Structured error types for generation and decoding
//	├── internal/shape/  Shape classification, validation and repr resolution
//	└── cmd/zvalue-gen/  Command that writes the generated conversion methods
//
// # Quick Start
//
//	type Point struct {
//		X, Y int32
//	}
//
//	v, err := zvalue.Marshal(Point{X: 3, Y: 4})
//	// v is Structure(I32(3), I32(4)) with signature (ii)
//
//	var p Point
//	err = zvalue.Unmarshal(v, &p)
//
// # Supported Shapes
//
//   - Records with named fields encode as a structure, one element per field
//     in declaration order.
//   - A struct with one embedded field, or a defined non-struct type, encodes
//     as its inner value.
//   - Enums of integer constants encode as their discriminant at the declared
//     repr, u32 by default.
//
// Anything else fails at derivation time with an unsupported_shape error.
// Decoding fails with incorrect_type when the Value does not have the
// expected shape and with arity_mismatch when a structure is too short.
//
// # Generated Code
//
// The zvalue-gen command writes the same conversions as methods, so no
// reflection is involved at run time:
//
//	//go:generate go run github.com/wippyai/zvalue/cmd/zvalue-gen
//
//	//zvalue:derive
//	type Point struct {
//		X, Y int32
//	}
//
// # Error Handling
//
// All errors are *errors.Error values with a phase and kind:
//
//	var p Point
//	if err := zvalue.Unmarshal(v, &p); errors.Is(err, zerrors.ErrArityMismatch) {
//	    // structure had fewer elements than Point has fields
//	}
package zvalue
