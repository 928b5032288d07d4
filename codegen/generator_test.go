package codegen

import (
	"errors"
	"flag"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	zerrors "github.com/wippyai/zvalue/errors"
)

var update = flag.Bool("update", false, "rewrite golden generated files")

func generate(t *testing.T, src string) string {
	t.Helper()
	pkg, err := ParseSource("demo.go", src)
	if err != nil {
		t.Fatalf("ParseSource() error = %v", err)
	}
	out, err := Generate(pkg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return string(out)
}

// methods parses generated code and lists its methods as Recv.Name.
func methods(t *testing.T, code string) (*ast.File, []string) {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", code, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, code)
	}

	var names []string
	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil {
			continue
		}
		recv := fd.Recv.List[0].Type
		if star, ok := recv.(*ast.StarExpr); ok {
			recv = star.X
		}
		names = append(names, embeddedName(recv)+"."+fd.Name.Name)
	}
	sort.Strings(names)
	return f, names
}

func TestGenerateDemo(t *testing.T) {
	code := generate(t, demoSource)
	f, got := methods(t, code)

	if !strings.HasPrefix(code, Header) || !ast.IsGenerated(f) {
		t.Errorf("generated file is not marked as generated:\n%s", code)
	}
	if f.Name.Name != "demo" {
		t.Errorf("package = %s, want demo", f.Name.Name)
	}

	both := []string{"MarshalOwnedValue", "MarshalValue", "UnmarshalOwnedValue", "UnmarshalValue", "ValueSignature"}
	var want []string
	for _, typ := range []string{"Color", "Meters", "Pair", "Point", "Stamp"} {
		for _, m := range both {
			want = append(want, typ+"."+m)
		}
	}
	want = append(want, "Wrapped.MarshalOwnedValue", "Wrapped.UnmarshalOwnedValue", "Wrapped.ValueSignature")
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}

	var imports []string
	for _, imp := range f.Imports {
		p, _ := strconv.Unquote(imp.Path.Value)
		imports = append(imports, p)
	}
	wantImports := []string{
		"github.com/wippyai/zvalue/derive",
		"github.com/wippyai/zvalue/errors",
		"github.com/wippyai/zvalue/value",
		"time",
	}
	sort.Strings(imports)
	if diff := cmp.Diff(wantImports, imports); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSnippets(t *testing.T) {
	code := generate(t, demoSource)

	snippets := []string{
		`return "(iiv)"`,
		`b.Add(value.NewVariant(x.Tag))`,
		`zerrors.ArityMismatch([]string{"Point"}, 3, len(elems))`,
		`return derive.FieldError("Point", "Y", "int32", elems[1], err)`,
		`var n uint8`,
		`case Green:`,
		`n = 103`,
		`return value.U8(n)`,
		`Detail("%d is not a declared variant", x)`,
		`case 103:`,
		`*x = Green`,
		`return value.F64(float64(x))`,
		`*x = Meters(n)`,
		`value.StructOf(derive.SignatureFor[K](), derive.SignatureFor[[]V]())`,
		`derive.MarshalField(x.Key)`,
		`derive.Unmarshal(elems[0].Downcast(), &out.Key)`,
		`derive.SignatureFor[time.Duration]()`,
		`out.Meters.UnmarshalValue(v)`,
		`return x.UnmarshalValue(o.Value())`,
	}
	for _, s := range snippets {
		if !strings.Contains(code, s) {
			t.Errorf("generated code lacks %q:\n%s", s, code)
		}
	}
}

func TestGenerateBorrowing(t *testing.T) {
	src := `package demo

//zvalue:derive
//zvalue:borrow buf
type View struct {
	Name string
	Tags []string
}

//zvalue:derive
type Copy struct {
	Name string
}
`
	code := generate(t, src)
	if !strings.Contains(code, "elems[0].Downcast().AsStr()") {
		t.Errorf("borrowing record should keep strings:\n%s", code)
	}
	if !strings.Contains(code, "derive.UnmarshalBorrowed(elems[1].Downcast(), &out.Tags)") {
		t.Errorf("borrowing record should keep slices of strings:\n%s", code)
	}
	if !strings.Contains(code, "AsOwnedStr()") {
		t.Errorf("non-borrowing record should copy strings:\n%s", code)
	}
	if !strings.Contains(code, `return "(sas)"`) {
		t.Errorf("View signature missing:\n%s", code)
	}
}

func TestGenerateNestedTypes(t *testing.T) {
	src := `package demo

//zvalue:derive
type Inner struct {
	A int64
}

//zvalue:derive
type Outer struct {
	In   Inner
	List []Inner
	Grid [2]uint16
}
`
	code := generate(t, src)
	for _, s := range []string{
		`return "(x(x)a(x)aq)"`,
		`b.Add(x.In.MarshalValue())`,
		`out.In.UnmarshalValue(elems[0].Downcast())`,
		`derive.MarshalField(x.List)`,
	} {
		if !strings.Contains(code, s) {
			t.Errorf("generated code lacks %q:\n%s", s, code)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	pkg, err := ParseSource("p.go", "package p\n\ntype plain int\n")
	if err != nil {
		t.Fatal(err)
	}
	out, err := Generate(pkg)
	if err != nil || out != nil {
		t.Errorf("Generate() = %q, %v, want nil, nil", out, err)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"map field", "package p\n//zvalue:derive\ntype T struct{ M map[string]int }\n"},
		{"pointer field", "package p\n//zvalue:derive\ntype T struct{ P *int32 }\n"},
		{"int8 field", "package p\n//zvalue:derive\ntype T struct{ B int8 }\n"},
		{"float32 wrapper", "package p\n//zvalue:derive\ntype T float32\n"},
		{"slice of func", "package p\n//zvalue:derive\ntype T struct{ F []func() }\n"},
		{"recursive", "package p\n//zvalue:derive\ntype T struct{ Kids []T }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := ParseSource("p.go", tt.src)
			if err != nil {
				t.Fatalf("ParseSource() error = %v", err)
			}
			if _, err := Generate(pkg); !errors.Is(err, zerrors.ErrUnsupportedField) {
				t.Errorf("Generate() error = %v, want unsupported_field", err)
			}
		})
	}
}

func TestGeneratorSignature(t *testing.T) {
	pkg, err := ParseSource("demo.go", demoSource)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGenerator(pkg)

	want := map[string]string{
		"Point":   "(iiv)",
		"Color":   "y",
		"Meters":  "d",
		"Wrapped": "d",
		"Stamp":   "value.StructOf(derive.SignatureFor[time.Duration]())",
	}
	for _, typ := range pkg.Types {
		w, ok := want[typ.Name]
		if !ok {
			continue
		}
		got, err := g.Signature(typ)
		if err != nil {
			t.Errorf("Signature(%s) error = %v", typ.Name, err)
			continue
		}
		if got != w {
			t.Errorf("Signature(%s) = %s, want %s", typ.Name, got, w)
		}
	}
}

// TestGenerateGolden checks the committed output of internal/demo, whose
// own tests run the generated methods.
func TestGenerateGolden(t *testing.T) {
	dir := filepath.Join("internal", "demo")
	pkg, err := ParseFiles(filepath.Join(dir, "demo.go"), filepath.Join(dir, "zvalue_gen.go"))
	if err != nil {
		t.Fatalf("ParseFiles() error = %v", err)
	}
	got, err := Generate(pkg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	golden := filepath.Join(dir, "zvalue_gen.go")
	if *update {
		if err := os.WriteFile(golden, got, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("generated code differs from %s (-want +got):\n%s", golden, diff)
	}
}

func TestGenerateArityBeforeFields(t *testing.T) {
	code := generate(t, demoSource)
	arity := strings.Index(code, `zerrors.ArityMismatch([]string{"Point"}, 3, len(elems))`)
	first := strings.Index(code, `elems[0].Downcast().AsI32()`)
	if arity < 0 || first < 0 || arity > first {
		t.Errorf("arity check must precede field decoding:\n%s", code)
	}
	if n := strings.Count(code, `zerrors.ArityMismatch([]string{"Point"}`); n != 1 {
		t.Errorf("Point arity checks = %d, want 1", n)
	}
}
