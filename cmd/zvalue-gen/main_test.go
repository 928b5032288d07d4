package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/wippyai/zvalue/codegen"
	zerrors "github.com/wippyai/zvalue/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zvalue.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, "output: values_gen.go\npatterns: [./a, ./b]\nverbose: true\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := Config{Output: "values_gen.go", Dir: ".", Patterns: []string{"./a", "./b"}, Verbose: true}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want zerrors.Kind
	}{
		{"malformed yaml", "output: [", zerrors.KindInvalidData},
		{"output path", "output: sub/gen.go\n", zerrors.KindInvalidInput},
		{"test file", "output: gen_test.go\n", zerrors.KindInvalidInput},
		{"not go", "output: gen.txt\n", zerrors.KindInvalidInput},
		{"no patterns", "patterns: []\n", zerrors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if zerrors.KindOf(err) != tt.want {
				t.Errorf("LoadConfig() error = %v, want %s", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing) should fail")
	}
}

func TestResolveConfigFlagsOverride(t *testing.T) {
	path := writeConfig(t, "output: a_gen.go\ndir: ./src\n")

	flags, f, err := parseFlags([]string{"--config", path, "-o", "b_gen.go", "./pkg/..."})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	cfg, err := resolveConfig(flags, f)
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}

	want := Config{Output: "b_gen.go", Dir: "./src", Patterns: []string{"./pkg/..."}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("resolveConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveConfigRejectsBadOutput(t *testing.T) {
	flags, f, err := parseFlags([]string{"--output", "../gen.go"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(flags, f); zerrors.KindOf(err) != zerrors.KindInvalidInput {
		t.Errorf("resolveConfig() error = %v, want invalid_input", err)
	}
}

const listSource = `package demo

//zvalue:derive
type Point struct {
	X, Y int32
}

//zvalue:derive owned
type Meters float64
`

func TestPrintListPlain(t *testing.T) {
	pkg, err := codegen.ParseSource("demo.go", listSource)
	if err != nil {
		t.Fatal(err)
	}
	pkg.Path = "example.com/demo"

	var buf bytes.Buffer
	if err := printList(&buf, []*codegen.Package{pkg}); err != nil {
		t.Fatalf("printList() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("printList() wrote %d lines, want 3:\n%s", len(lines), buf.String())
	}

	tests := []struct {
		line int
		want []string
	}{
		{0, []string{"PACKAGE", "TYPE", "SIGNATURE"}},
		{1, []string{"example.com/demo", "Point", "record", "(ii)", "value,owned", "static"}},
		{2, []string{"Meters", "wrapper", "d", "owned"}},
	}
	for _, tt := range tests {
		fields := strings.Fields(lines[tt.line])
		for _, w := range tt.want {
			if !contains(fields, w) {
				t.Errorf("line %d = %q, want field %q", tt.line, lines[tt.line], w)
			}
		}
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("printList() should not style output for a non-terminal")
	}
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	pkg, err := codegen.ParseSource("demo.go", listSource)
	if err != nil {
		t.Fatal(err)
	}
	pkg.Dir = dir
	empty := &codegen.Package{Name: "empty", Dir: dir}

	if err := writeAll([]*codegen.Package{pkg, empty}, "out_gen.go", zap.NewNop()); err != nil {
		t.Fatalf("writeAll() error = %v", err)
	}

	src, err := os.ReadFile(filepath.Join(dir, "out_gen.go"))
	if err != nil {
		t.Fatalf("generated file missing: %v", err)
	}
	if !strings.HasPrefix(string(src), codegen.Header) {
		t.Errorf("generated file lacks header:\n%s", src)
	}
	if !strings.Contains(string(src), "func (x *Point) UnmarshalValue(v value.Value) error") {
		t.Errorf("generated file lacks Point methods:\n%s", src)
	}
}
