package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:     PhaseDecode,
				Kind:      KindIncorrectType,
				Path:      []string{"Line", "start", "x"},
				GoType:    "int32",
				ValueType: "s",
				Detail:    "cannot convert",
			},
			contains: []string{"[decode]", "incorrect_type", "Line.start.x", "int32", "Value s into int32", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDerive,
				Kind:  KindUnsupportedShape,
			},
			contains: []string{"[derive]", "unsupported_shape"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidData,
				Detail: "parse point.go",
				Cause:  errors.New("expected ';'"),
			},
			contains: []string{"[parse]", "invalid_data", "parse point.go: expected ';'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := ArityMismatch([]string{"Point"}, 2, 1)

	if !errors.Is(err, ErrArityMismatch) {
		t.Error("errors.Is should match the arity sentinel")
	}
	if errors.Is(err, ErrIncorrectType) {
		t.Error("errors.Is should not match a different kind")
	}
	if err.Is(&Error{Phase: PhaseDerive, Kind: KindArityMismatch}) {
		t.Error("Is should not match a different phase")
	}

	wrapped := fmt.Errorf("decode request: %w", err)
	if !errors.Is(wrapped, ErrArityMismatch) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindIncorrectType).
		Path("Point", "x").
		GoType("int32").
		ValueType("s").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "i", "s").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindIncorrectType {
		t.Errorf("Kind = %v, want %v", err.Kind, KindIncorrectType)
	}
	if len(err.Path) != 2 || err.Path[0] != "Point" || err.Path[1] != "x" {
		t.Errorf("Path = %v, want [Point x]", err.Path)
	}
	if err.GoType != "int32" {
		t.Errorf("GoType = %v, want 'int32'", err.GoType)
	}
	if err.ValueType != "s" {
		t.Errorf("ValueType = %v, want 's'", err.ValueType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected i, got s" {
		t.Errorf("Detail = %v, want 'expected i, got s'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("UnsupportedShape", func(t *testing.T) {
		err := UnsupportedShape([]string{"Empty"}, "struct {}", "unit structures not supported")
		if err.Kind != KindUnsupportedShape || err.Phase != PhaseDerive {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("TooManyLifetimes", func(t *testing.T) {
		err := TooManyLifetimes([]string{"Frame"}, []string{"a", "b"})
		if err.Kind != KindTooManyLifetimes {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTooManyLifetimes)
		}
		if err.Value != 2 {
			t.Errorf("Value = %v, want 2", err.Value)
		}
	})

	t.Run("InvalidDiscriminant", func(t *testing.T) {
		err := InvalidDiscriminant([]string{"Color"}, "Green", "expected `Name = Value` variants")
		if err.Kind != KindInvalidDiscriminant {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidDiscriminant)
		}
		if !strings.Contains(err.Detail, "Green") {
			t.Errorf("Detail = %v, should name the variant", err.Detail)
		}
	})

	t.Run("InvalidRepr", func(t *testing.T) {
		err := InvalidRepr([]string{"Color"}, "u7")
		if err.Kind != KindInvalidRepr {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidRepr)
		}
	})

	t.Run("UnsupportedField", func(t *testing.T) {
		err := UnsupportedField([]string{"Point", "tags"}, "map[string]string")
		if err.Kind != KindUnsupportedField {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupportedField)
		}
		if err.GoType != "map[string]string" {
			t.Errorf("GoType = %v", err.GoType)
		}
	})

	t.Run("IncorrectType", func(t *testing.T) {
		err := IncorrectType([]string{"Meters"}, "float64", "s")
		if err.Phase != PhaseDecode || err.Kind != KindIncorrectType {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("ArityMismatch", func(t *testing.T) {
		err := ArityMismatch([]string{"Point"}, 2, 1)
		if err.Value != 1 {
			t.Errorf("Value = %v, want 1", err.Value)
		}
		if !strings.Contains(err.Detail, "need 2") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseDecode, []string{"out"}, "*Point")
		if err.Kind != KindNilPointer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNilPointer)
		}
		if err.GoType != "*Point" {
			t.Errorf("GoType = %v, want '*Point'", err.GoType)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseParse, "type", "Point")
		if !strings.Contains(err.Error(), `type "Point" not found`) {
			t.Errorf("Error() = %v", err.Error())
		}
	})
}

func TestIsGeneration(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "derive", err: UnsupportedShape(nil, "int", ""), want: true},
		{name: "parse", err: ParseFailed("x.go", errors.New("boom")), want: true},
		{name: "decode", err: IncorrectType(nil, "int32", "s"), want: false},
		{name: "wrapped derive", err: fmt.Errorf("compile: %w", InvalidRepr(nil, "u7")), want: true},
		{name: "plain", err: errors.New("plain"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGeneration(tt.err); got != tt.want {
				t.Errorf("IsGeneration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(fmt.Errorf("x: %w", ArityMismatch(nil, 3, 0))); k != KindArityMismatch {
		t.Errorf("KindOf = %v, want %v", k, KindArityMismatch)
	}
	if k := KindOf(errors.New("plain")); k != "" {
		t.Errorf("KindOf(plain) = %q, want empty", k)
	}
}
