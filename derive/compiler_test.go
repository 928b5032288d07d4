package derive

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	zerrors "github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/value"
)

type Point struct {
	X int32
	Y int32
}

type Meters float64

type Color uint8

const (
	Red Color = iota
	Green
	Blue
)

type YX struct {
	Y int32
	X int32
}

type Node struct {
	Children []Node
	Name     string
}

type withMap struct {
	Attrs map[string]string
}

type empty struct{}

type pair struct {
	int32
	string
}

type Pair[K, V any] struct {
	Key K
	Val V
}

type allScalars struct {
	B   bool
	U8  uint8
	I16 int16
	U16 uint16
	I32 int32
	U32 uint32
	I64 int64
	U64 uint64
	I   int
	U   uint
	F   float64
	S   string
	G   value.Signature
	V   value.Value
	O   value.OwnedValue
	L   []string
	A   [2]uint16
}

func registerColor(t *testing.T, c *Compiler) {
	t.Helper()
	err := c.RegisterEnum(reflect.TypeFor[Color](), "u8",
		Variant{Name: "Red", Value: Red},
		Variant{Name: "Green", Value: Green},
		Variant{Name: "Blue", Value: Blue})
	if err != nil {
		t.Fatalf("RegisterEnum() error = %v", err)
	}
}

func TestCompileSignatures(t *testing.T) {
	c := NewCompiler()
	registerColor(t, c)

	tests := []struct {
		goType reflect.Type
		want   value.Signature
		kind   DescriptorKind
	}{
		{reflect.TypeFor[Point](), "(ii)", KindNamedRecord},
		{reflect.TypeFor[*Point](), "(ii)", KindNamedRecord},
		{reflect.TypeFor[Meters](), "d", KindSingleFieldWrapper},
		{reflect.TypeFor[Color](), "y", KindUnitEnum},
		{reflect.TypeFor[Pair[int32, string]](), "(is)", KindNamedRecord},
		{reflect.TypeFor[allScalars](), "(bynqiuxtxtdsgvvasaq)", KindNamedRecord},
		{reflect.TypeFor[struct{ P Point }](), "((ii))", KindNamedRecord},
	}

	for _, tt := range tests {
		t.Run(tt.goType.String(), func(t *testing.T) {
			codec, err := c.Compile(tt.goType)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if codec.Signature() != tt.want {
				t.Errorf("Signature() = %s, want %s", codec.Signature(), tt.want)
			}
			if codec.Descriptor().Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", codec.Descriptor().Kind, tt.kind)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		goType reflect.Type
		want   error
		name   string
		opts   []Option
	}{
		{name: "unit struct", goType: reflect.TypeFor[empty](), want: zerrors.ErrUnsupportedShape},
		{name: "tuple struct", goType: reflect.TypeFor[pair](), want: zerrors.ErrUnsupportedShape},
		{name: "function", goType: reflect.TypeFor[func()](), want: zerrors.ErrUnsupportedShape},
		{name: "map field", goType: reflect.TypeFor[withMap](), want: zerrors.ErrUnsupportedField},
		{name: "recursive", goType: reflect.TypeFor[Node](), want: zerrors.ErrUnsupportedField},
		{name: "pointer field", goType: reflect.TypeFor[struct{ P *Point }](), want: zerrors.ErrUnsupportedField},
		{name: "int8 field", goType: reflect.TypeFor[struct{ N int8 }](), want: zerrors.ErrUnsupportedField},
		{
			name:   "two lifetimes",
			goType: reflect.TypeFor[Point](),
			opts:   []Option{Borrow("a"), Borrow("b")},
			want:   zerrors.ErrTooManyLifetimes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompiler().Compile(tt.goType, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compile() error = %v, want %v", err, tt.want)
			}
			if !zerrors.IsGeneration(err) {
				t.Errorf("error %v should be a generation error", err)
			}
		})
	}
}

func TestCompileNilType(t *testing.T) {
	if _, err := NewCompiler().Compile(nil); zerrors.KindOf(err) != zerrors.KindNilPointer {
		t.Errorf("Compile(nil) error = %v, want nil_pointer", err)
	}
}

func TestOwnedFlavorIgnoresLifetimes(t *testing.T) {
	codec, err := NewCompiler().Compile(reflect.TypeFor[Point](),
		Borrow("a"), Borrow("b"), Flavors(FlavorOwned))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if codec.Descriptor().Borrows() {
		t.Error("owned-only codec should not borrow")
	}
}

func TestCompileCache(t *testing.T) {
	c := NewCompiler()
	t1, err := c.Compile(reflect.TypeFor[Point]())
	if err != nil {
		t.Fatal(err)
	}
	t2, _ := c.Compile(reflect.TypeFor[*Point]())
	if t1 != t2 {
		t.Error("Compile() should return the cached codec")
	}

	t3, err := c.Compile(reflect.TypeFor[Point](), Borrow("buf"))
	if err != nil {
		t.Fatal(err)
	}
	if t3 == t1 {
		t.Error("different options should compile a different codec")
	}
	if t3.Descriptor().Lifetime != "buf" {
		t.Errorf("Lifetime = %q, want buf", t3.Descriptor().Lifetime)
	}
}

func TestCompileConcurrent(t *testing.T) {
	c := NewCompiler()
	registerColor(t, c)

	var wg sync.WaitGroup
	codecs := make([]*Codec, 16)
	for i := range codecs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codec, err := c.Compile(reflect.TypeFor[struct {
				P Point
				C Color
			}]())
			if err != nil {
				t.Errorf("Compile() error = %v", err)
				return
			}
			v := codec.Encode(struct {
				P Point
				C Color
			}{Point{int32(i), 1}, Blue})
			if v.Len() != 2 {
				t.Errorf("Len() = %d, want 2", v.Len())
			}
			codecs[i] = codec
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(codecs); i++ {
		if codecs[i] != nil && codecs[0] != nil && codecs[i] != codecs[0] {
			t.Fatal("concurrent compiles should converge on one cached codec")
		}
	}
}

func TestRegisterEnumErrors(t *testing.T) {
	t.Run("non-integer type", func(t *testing.T) {
		err := NewCompiler().RegisterEnum(reflect.TypeFor[Meters](), "u8")
		if zerrors.KindOf(err) != zerrors.KindInvalidInput {
			t.Errorf("error = %v, want invalid_input", err)
		}
	})

	t.Run("after first use", func(t *testing.T) {
		c := NewCompiler()
		if _, err := c.Compile(reflect.TypeFor[struct{ C Color }]()); err != nil {
			t.Fatal(err)
		}
		err := c.RegisterEnum(reflect.TypeFor[Color](), "u8", Variant{Name: "Red", Value: Red})
		if zerrors.KindOf(err) != zerrors.KindInvalidInput {
			t.Errorf("error = %v, want invalid_input", err)
		}
	})

	tests := []struct {
		want     error
		name     string
		repr     string
		variants []Variant
	}{
		{
			name:     "unknown repr",
			repr:     "u7",
			variants: []Variant{{Name: "Red", Value: Red}},
			want:     zerrors.ErrInvalidRepr,
		},
		{
			name:     "missing discriminant",
			repr:     "u8",
			variants: []Variant{{Name: "Red"}},
			want:     zerrors.ErrInvalidDiscriminant,
		},
		{
			name:     "negative discriminant",
			repr:     "i16",
			variants: []Variant{{Name: "Down", Value: -1}},
			want:     zerrors.ErrInvalidDiscriminant,
		},
		{
			name:     "non-integer discriminant",
			repr:     "u8",
			variants: []Variant{{Name: "Red", Value: "red"}},
			want:     zerrors.ErrInvalidDiscriminant,
		},
		{
			name:     "overflow",
			repr:     "u8",
			variants: []Variant{{Name: "Big", Value: 300}},
			want:     zerrors.ErrInvalidDiscriminant,
		},
	}

	type level int32
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompiler()
			if err := c.RegisterEnum(reflect.TypeFor[level](), tt.repr, tt.variants...); err != nil {
				t.Fatalf("RegisterEnum() error = %v", err)
			}
			_, err := c.Compile(reflect.TypeFor[level]())
			if !errors.Is(err, tt.want) {
				t.Errorf("Compile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSignatureOf(t *testing.T) {
	c := NewCompiler()
	sig, err := c.SignatureOf(reflect.TypeFor[[]Point]())
	if err != nil {
		t.Fatal(err)
	}
	if sig != "a(ii)" {
		t.Errorf("SignatureOf([]Point) = %s, want a(ii)", sig)
	}
	if _, err := c.SignatureOf(reflect.TypeFor[chan int]()); !errors.Is(err, zerrors.ErrUnsupportedField) {
		t.Errorf("SignatureOf(chan) error = %v, want unsupported_field", err)
	}
}
