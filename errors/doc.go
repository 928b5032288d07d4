// Package errors provides structured error types for zvalue.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries context: field path, Go/Value type names, and cause chain.
//
// Two phases never mix. Derive and parse errors describe a type definition that
// cannot be mapped onto the Value model at all; they are fatal to code generation.
// Decode errors describe a Value whose runtime shape does not match the target type;
// they are ordinary, recoverable failures. Encoding never fails.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindIncorrectType).
//		Path("Point", "y").
//		GoType("int32").
//		ValueType("s").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IncorrectType(path, "int32", "s")
//	err := errors.ArityMismatch(path, 2, 1)
//
// All errors implement the standard error interface and support errors.Is/As:
//
//	if errors.Is(err, errors.ErrArityMismatch) { ... }
package errors
