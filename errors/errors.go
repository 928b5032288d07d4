package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDerive Phase = "derive" // type analysis and codec emission
	PhaseParse  Phase = "parse"  // Go source scanning
	PhaseEncode Phase = "encode" // Go to Value
	PhaseDecode Phase = "decode" // Value to Go
	PhaseConfig Phase = "config" // generator configuration
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedShape    Kind = "unsupported_shape"
	KindTooManyLifetimes    Kind = "too_many_lifetimes"
	KindInvalidDiscriminant Kind = "invalid_discriminant"
	KindInvalidRepr         Kind = "invalid_repr"
	KindUnsupportedField    Kind = "unsupported_field"
	KindIncorrectType       Kind = "incorrect_type"
	KindArityMismatch       Kind = "arity_mismatch"
	KindNilPointer          Kind = "nil_pointer"
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidData         Kind = "invalid_data"
	KindNotFound            Kind = "not_found"
)

// Sentinels for errors.Is. Matching is by phase and kind only.
var (
	ErrUnsupportedShape    = &Error{Phase: PhaseDerive, Kind: KindUnsupportedShape}
	ErrTooManyLifetimes    = &Error{Phase: PhaseDerive, Kind: KindTooManyLifetimes}
	ErrInvalidDiscriminant = &Error{Phase: PhaseDerive, Kind: KindInvalidDiscriminant}
	ErrInvalidRepr         = &Error{Phase: PhaseDerive, Kind: KindInvalidRepr}
	ErrUnsupportedField    = &Error{Phase: PhaseDerive, Kind: KindUnsupportedField}
	ErrIncorrectType       = &Error{Phase: PhaseDecode, Kind: KindIncorrectType}
	ErrArityMismatch       = &Error{Phase: PhaseDecode, Kind: KindArityMismatch}
)

// Error is the structured error type used throughout zvalue
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	GoType    string
	ValueType string
	Detail    string
	Path      []string
}

// Error renders phase, kind, path and types on one line, followed by the
// detail and the cause.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Phase, e.Kind)

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	switch {
	case e.GoType != "" && e.ValueType != "":
		fmt.Fprintf(&b, ": Value %s into %s", e.ValueType, e.GoType)
	case e.GoType != "":
		b.WriteString(": ")
		b.WriteString(e.GoType)
	case e.ValueType != "":
		b.WriteString(": Value ")
		b.WriteString(e.ValueType)
	}

	for _, s := range []string{e.Detail, causeText(e.Cause)} {
		if s != "" {
			b.WriteString(": ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsGeneration reports whether err was raised while analysing a type definition
// rather than while converting a value.
func IsGeneration(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Phase == PhaseDerive || e.Phase == PhaseParse
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ValueType sets the Value signature
func (b *Builder) ValueType(t string) *Builder {
	b.err.ValueType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedShape creates an error for a type definition with no Value mapping
func UnsupportedShape(path []string, goType, detail string) *Error {
	return &Error{
		Phase:  PhaseDerive,
		Kind:   KindUnsupportedShape,
		Path:   path,
		GoType: goType,
		Detail: detail,
	}
}

// TooManyLifetimes creates an error for a type declaring more than one borrow lifetime
func TooManyLifetimes(path []string, lifetimes []string) *Error {
	return &Error{
		Phase:  PhaseDerive,
		Kind:   KindTooManyLifetimes,
		Path:   path,
		Detail: fmt.Sprintf("type with more than 1 lifetime not supported, got %d (%s)", len(lifetimes), strings.Join(lifetimes, ", ")),
		Value:  len(lifetimes),
	}
}

// InvalidDiscriminant creates an error for an enum variant without a usable literal discriminant
func InvalidDiscriminant(path []string, variant, detail string) *Error {
	return &Error{
		Phase:  PhaseDerive,
		Kind:   KindInvalidDiscriminant,
		Path:   path,
		Detail: fmt.Sprintf("variant %q: %s", variant, detail),
		Value:  variant,
	}
}

// InvalidRepr creates an error for an unparseable representation annotation
func InvalidRepr(path []string, repr string) *Error {
	return &Error{
		Phase:  PhaseDerive,
		Kind:   KindInvalidRepr,
		Path:   path,
		Detail: fmt.Sprintf("failed to parse repr %q", repr),
		Value:  repr,
	}
}

// UnsupportedField creates an error for a field whose Go type has no Value mapping
func UnsupportedField(path []string, goType string) *Error {
	return &Error{
		Phase:  PhaseDerive,
		Kind:   KindUnsupportedField,
		Path:   path,
		GoType: goType,
		Detail: "field type cannot be converted to or from Value",
	}
}

// IncorrectType creates a decode error for a Value whose shape does not match
func IncorrectType(path []string, goType, valueType string) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindIncorrectType,
		Path:      path,
		GoType:    goType,
		ValueType: valueType,
	}
}

// ArityMismatch creates a decode error for a structure with too few elements
func ArityMismatch(path []string, want, got int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindArityMismatch,
		Path:   path,
		Detail: fmt.Sprintf("structure has %d elements, need %d", got, want),
		Value:  got,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
