// Package shape analyses type definitions for codec derivation.
//
// A Definition is the raw, frontend-neutral description of one declared
// type. Analysis runs three pure stages over it:
//
//	Definition ──Classify──▶ Descriptor ──Validate──▶ ──ResolveRepr──▶ emitter
//
// Classify picks one of NamedRecord, SingleFieldWrapper or UnitEnum.
// Validate checks borrow lifetime cardinality, attaches capability bounds
// to type parameters and requires literal enum discriminants. ResolveRepr
// fixes the integer width carrying enum discriminants and converts each
// literal to it.
//
// Every failure is a derive-phase error from the errors package; there is
// no partial output. Descriptors are immutable once Analyze returns.
//
// This package is internal to zvalue.
package shape
