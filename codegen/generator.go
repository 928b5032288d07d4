package codegen

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/internal/shape"
	"github.com/wippyai/zvalue/value"
)

// Header starts every generated file.
const Header = "// Code generated by zvalue-gen. DO NOT EDIT."

const (
	derivePath = "github.com/wippyai/zvalue/derive"
	errorsPath = "github.com/wippyai/zvalue/errors"
)

type basic struct {
	sig      string
	ctor     string // value constructor
	accessor string // Value method returning goType
	goType   string
}

var basics = map[string]basic{
	"bool":            {"b", "value.Bool", "AsBool", "bool"},
	"uint8":           {"y", "value.U8", "AsU8", "uint8"},
	"byte":            {"y", "value.U8", "AsU8", "uint8"},
	"int16":           {"n", "value.I16", "AsI16", "int16"},
	"uint16":          {"q", "value.U16", "AsU16", "uint16"},
	"int32":           {"i", "value.I32", "AsI32", "int32"},
	"rune":            {"i", "value.I32", "AsI32", "int32"},
	"uint32":          {"u", "value.U32", "AsU32", "uint32"},
	"int64":           {"x", "value.I64", "AsI64", "int64"},
	"int":             {"x", "value.I64", "AsI64", "int64"},
	"uint64":          {"t", "value.U64", "AsU64", "uint64"},
	"uint":            {"t", "value.U64", "AsU64", "uint64"},
	"float64":         {"d", "value.F64", "AsF64", "float64"},
	"string":          {"s", "value.Str", "AsOwnedStr", "string"},
	"value.Signature": {"g", "value.NewSignature", "AsSignature", "value.Signature"},
}

var reprTypes = map[value.Kind]string{
	value.KindU8:  "uint8",
	value.KindI16: "int16",
	value.KindU16: "uint16",
	value.KindI32: "int32",
	value.KindU32: "uint32",
	value.KindI64: "int64",
	value.KindU64: "uint64",
}

var unsupportedTypes = map[string]bool{
	"int8": true, "float32": true, "complex64": true, "complex128": true,
	"uintptr": true, "any": true, "error": true, "value.Structure": true,
}

type convKind uint8

const (
	convBasic   convKind = iota // converted inline
	convValue                   // value.Value
	convMethod                  // type derived in the same package
	convRuntime                 // converted through the derive runtime
)

type conv struct {
	expr  string // Go type expression
	sig   string // static signature, empty when only known at run time
	basic basic
	kind  convKind
}

// Generator renders the conversion methods of one package.
type Generator struct {
	pkg       *Package
	byName    map[string]*Type
	sigs      map[string]string
	active    map[string]bool
	imports   map[string]Import // path -> import
	buf       bytes.Buffer
	useDerive bool
	useErrors bool
}

// NewGenerator returns a generator for the derived types of pkg.
func NewGenerator(pkg *Package) *Generator {
	g := &Generator{
		pkg:     pkg,
		byName:  make(map[string]*Type),
		sigs:    make(map[string]string),
		active:  make(map[string]bool),
		imports: make(map[string]Import),
	}
	for _, t := range pkg.Types {
		if len(t.Def.TypeParams) == 0 {
			g.byName[t.Name] = t
		}
	}
	return g
}

// Generate renders the package's generated file. It returns nil when the
// package declares no derived types.
func Generate(pkg *Package) ([]byte, error) {
	return NewGenerator(pkg).Generate()
}

// Generate renders and formats the generated file. Every type that fails
// to generate is reported in the joined error.
func (g *Generator) Generate() ([]byte, error) {
	if len(g.pkg.Types) == 0 {
		return nil, nil
	}

	var errs []error
	for _, t := range g.pkg.Types {
		if err := g.emitType(t); err != nil {
			errs = append(errs, err)
			continue
		}
		Logger().Debug("generated type", zap.String("type", t.Name), zap.String("package", g.pkg.Name))
	}
	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "%s\n\npackage %s\n\nimport (\n", Header, g.pkg.Name)
	for _, imp := range g.importList() {
		if imp.Name != "" && imp.Name != defaultImportName(imp.Path) {
			fmt.Fprintf(&out, "\t%s %q\n", imp.Name, imp.Path)
		} else {
			fmt.Fprintf(&out, "\t%q\n", imp.Path)
		}
	}
	out.WriteString(")\n")
	out.Write(g.buf.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDerive, errors.KindInvalidData, err, "format generated code")
	}
	return src, nil
}

func (g *Generator) importList() []Import {
	list := []Import{{Name: "value", Path: valuePath}}
	if g.useDerive {
		list = append(list, Import{Name: "derive", Path: derivePath})
	}
	if g.useErrors {
		list = append(list, Import{Name: "zerrors", Path: errorsPath})
	}
	for _, imp := range g.imports {
		list = append(list, imp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}

// Signature returns the signature of t, or the Go expression computing it
// when it depends on types only known at run time.
func (g *Generator) Signature(t *Type) (string, error) {
	if sig, err := g.staticSig(t); err != nil || sig != "" {
		return sig, err
	}
	return g.typeSigExpr(t)
}

func (g *Generator) conv(t *Type, ref shape.TypeRef, path []string) (conv, error) {
	expr := ref.Expr
	if ref.Param || t.isParam(expr) {
		return conv{kind: convRuntime, expr: expr}, nil
	}
	if b, ok := basics[expr]; ok {
		return conv{kind: convBasic, basic: b, expr: expr, sig: b.sig}, nil
	}
	if expr == "value.Value" {
		return conv{kind: convValue, expr: expr, sig: string(value.SignatureVariant)}, nil
	}
	if unsupported(expr) {
		return conv{}, errors.UnsupportedField(path, expr)
	}
	if d, ok := g.byName[expr]; ok {
		sig, err := g.staticSig(d)
		return conv{kind: convMethod, expr: expr, sig: sig}, err
	}

	c := conv{kind: convRuntime, expr: expr}
	if elem, ok := elemType(expr); ok {
		ec, err := g.conv(t, shape.TypeRef{Expr: elem}, path)
		if err != nil {
			return conv{}, err
		}
		if ec.sig != "" {
			c.sig = "a" + ec.sig
		}
	}
	return c, nil
}

func (t *Type) isParam(expr string) bool {
	for _, p := range t.Def.TypeParams {
		if p == expr {
			return true
		}
	}
	return false
}

// elemType strips one slice or array level from expr.
func elemType(expr string) (string, bool) {
	if strings.HasPrefix(expr, "[]") {
		return expr[2:], true
	}
	if strings.HasPrefix(expr, "[") {
		if i := strings.IndexByte(expr, ']'); i > 0 {
			return expr[i+1:], true
		}
	}
	return "", false
}

func unsupported(expr string) bool {
	for {
		elem, ok := elemType(expr)
		if !ok {
			break
		}
		expr = elem
	}
	for _, p := range []string{"*", "map[", "chan ", "<-chan", "func", "interface"} {
		if strings.HasPrefix(expr, p) {
			return true
		}
	}
	return unsupportedTypes[expr]
}

// staticSig returns the signature of t when every part of it is known at
// generation time, and "" otherwise.
func (g *Generator) staticSig(t *Type) (string, error) {
	if sig, ok := g.sigs[t.Name]; ok {
		return sig, nil
	}
	if g.active[t.Name] {
		return "", errors.New(errors.PhaseDerive, errors.KindUnsupportedField).
			Path(t.Name).
			GoType(t.Name).
			Detail("recursive type has no finite signature").
			Build()
	}
	g.active[t.Name] = true
	defer delete(g.active, t.Name)

	d := t.Desc
	var sig string
	switch d.Kind {
	case shape.KindUnitEnum:
		sig = string(value.ScalarSignature(d.Repr))
	case shape.KindSingleFieldWrapper:
		c, err := g.conv(t, d.Inner, []string{t.Name})
		if err != nil {
			return "", err
		}
		sig = c.sig
	case shape.KindNamedRecord:
		var b strings.Builder
		b.WriteByte('(')
		for _, f := range d.Fields {
			c, err := g.conv(t, f.Type, []string{t.Name, f.Name})
			if err != nil {
				return "", err
			}
			if c.sig == "" {
				b.Reset()
				break
			}
			b.WriteString(c.sig)
		}
		if b.Len() > 0 {
			b.WriteByte(')')
		}
		sig = b.String()
	}

	g.sigs[t.Name] = sig
	return sig, nil
}

func (g *Generator) require(t *Type, expr string) {
	g.useDerive = true
	for _, imp := range t.refs[expr] {
		g.imports[imp.Path] = imp
	}
}

func (g *Generator) sigExpr(t *Type, c conv) string {
	if c.sig != "" {
		return strconv.Quote(c.sig)
	}
	g.require(t, c.expr)
	return "derive.SignatureFor[" + c.expr + "]()"
}

func (g *Generator) typeSigExpr(t *Type) (string, error) {
	sig, err := g.staticSig(t)
	if err != nil {
		return "", err
	}
	if sig != "" {
		return strconv.Quote(sig), nil
	}

	d := t.Desc
	if d.Kind == shape.KindSingleFieldWrapper {
		c, err := g.conv(t, d.Inner, []string{t.Name})
		if err != nil {
			return "", err
		}
		return g.sigExpr(t, c), nil
	}

	parts := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		c, err := g.conv(t, f.Type, []string{t.Name, f.Name})
		if err != nil {
			return "", err
		}
		parts[i] = g.sigExpr(t, c)
	}
	return "value.StructOf(" + strings.Join(parts, ", ") + ")", nil
}

// encodeExpr returns an expression converting src, of Go type srcType, to
// a Value. Structure elements with signature "v" are wrapped in a variant.
func (g *Generator) encodeExpr(t *Type, c conv, src, srcType string, element bool) string {
	switch c.kind {
	case convBasic:
		if srcType == c.basic.goType {
			return c.basic.ctor + "(" + src + ")"
		}
		return fmt.Sprintf("%s(%s(%s))", c.basic.ctor, c.basic.goType, src)
	case convValue:
		if srcType != c.expr {
			src = "value.Value(" + src + ")"
		}
		if element {
			return "value.NewVariant(" + src + ")"
		}
		return src
	}

	if srcType != c.expr {
		src = c.expr + "(" + src + ")"
	}
	if c.kind == convMethod && (!element || c.sig != "") {
		if element && c.sig == string(value.SignatureVariant) {
			return "value.NewVariant(" + src + ".MarshalValue())"
		}
		return src + ".MarshalValue()"
	}

	g.require(t, c.expr)
	if element {
		return "derive.MarshalField(" + src + ")"
	}
	return "derive.Marshal(" + src + ")"
}

// decodeStmts returns statements converting the Value expression src into
// dst, an addressable location of Go type dstType. fail renders the
// statement returning a conversion error held in err.
func (g *Generator) decodeStmts(t *Type, c conv, src, dst, dstType string, keep bool, fail func() string) []string {
	assign := func(v string) string {
		if dstType != c.expr {
			v = dstType + "(" + v + ")"
		}
		return dst + " = " + v
	}

	switch c.kind {
	case convBasic:
		acc := c.basic.accessor
		if keep && c.basic.sig == "s" {
			acc = "AsStr"
		}
		v := "n"
		if dstType != c.basic.goType {
			v = dstType + "(n)"
		}
		return []string{
			"n, err := " + src + "." + acc + "()",
			"if err != nil {",
			"\t" + fail(),
			"}",
			dst + " = " + v,
		}
	case convValue:
		if keep {
			return []string{assign(src)}
		}
		return []string{
			"w := " + src,
			"if w.IsBorrowed() {",
			"\tw = w.Owned().Value()",
			"}",
			assign("w"),
		}
	}

	call := "inner.UnmarshalValue(" + src + ")"
	target := "&inner"
	if dstType == c.expr {
		target = "&" + dst
		call = dst + ".UnmarshalValue(" + src + ")"
	}
	if c.kind == convRuntime {
		g.require(t, c.expr)
		fn := "derive.Unmarshal"
		if keep {
			fn = "derive.UnmarshalBorrowed"
		}
		call = fn + "(" + src + ", " + target + ")"
	}

	var lines []string
	if dstType != c.expr {
		lines = append(lines, "var inner "+c.expr)
	}
	lines = append(lines,
		"if err := "+call+"; err != nil {",
		"\t"+fail(),
		"}")
	if dstType != c.expr {
		lines = append(lines, assign("inner"))
	}
	return lines
}

func (g *Generator) emitType(t *Type) error {
	sig, err := g.typeSigExpr(t)
	if err != nil {
		return err
	}

	var enc, dec []string
	var result string
	switch t.Desc.Kind {
	case shape.KindNamedRecord:
		enc, result, dec, err = g.record(t)
	case shape.KindSingleFieldWrapper:
		enc, result, dec, err = g.wrapper(t)
	case shape.KindUnitEnum:
		enc, result, dec, err = g.enum(t)
	}
	if err != nil {
		return err
	}

	g.methods(t, sig, enc, result, dec)
	return nil
}

func (g *Generator) methods(t *Type, sig string, enc []string, result string, dec []string) {
	recv := t.Receiver()
	flavors := t.Desc.Flavors

	g.printf("\n// ValueSignature implements value.Typed.\n")
	g.printf("func (%s) ValueSignature() value.Signature {\n\treturn %s\n}\n", recv, sig)

	if flavors.Has(shape.FlavorValue) {
		g.printf("\n// MarshalValue implements value.Marshaler.\n")
		g.printf("func (x %s) MarshalValue() value.Value {\n", recv)
		g.lines(enc)
		g.printf("\treturn %s\n}\n", result)

		g.printf("\n// UnmarshalValue implements value.Unmarshaler.\n")
		g.printf("func (x *%s) UnmarshalValue(v value.Value) error {\n", recv)
		g.lines(dec)
		g.printf("}\n")
	}

	if !flavors.Has(shape.FlavorOwned) {
		return
	}

	g.printf("\n// MarshalOwnedValue implements value.OwnedMarshaler.\n")
	g.printf("func (x %s) MarshalOwnedValue() value.OwnedValue {\n", recv)
	if flavors.Has(shape.FlavorValue) {
		g.printf("\treturn x.MarshalValue().Owned()\n}\n")
	} else {
		g.lines(enc)
		g.printf("\treturn %s.Owned()\n}\n", result)
	}

	g.printf("\n// UnmarshalOwnedValue implements value.OwnedUnmarshaler.\n")
	g.printf("func (x *%s) UnmarshalOwnedValue(o value.OwnedValue) error {\n", recv)
	if flavors.Has(shape.FlavorValue) {
		g.printf("\treturn x.UnmarshalValue(o.Value())\n}\n")
	} else {
		g.printf("\tv := o.Value()\n")
		g.lines(dec)
		g.printf("}\n")
	}
}

func (g *Generator) record(t *Type) (enc []string, result string, dec []string, err error) {
	d := t.Desc
	keep := d.Borrows()
	g.useErrors = true
	g.useDerive = true

	enc = append(enc, "b := value.NewStructureBuilder()")
	dec = append(dec,
		"s, err := value.StructureFrom(v)",
		"if err != nil {",
		fmt.Sprintf("\treturn zerrors.IncorrectType([]string{%q}, %q, string(v.Signature()))", t.Name, t.Name),
		"}",
		"elems := s.Fields()",
		fmt.Sprintf("if len(elems) < %d {", len(d.Fields)),
		fmt.Sprintf("\treturn zerrors.ArityMismatch([]string{%q}, %d, len(elems))", t.Name, len(d.Fields)),
		"}",
		"var out "+t.Receiver())

	for i, f := range d.Fields {
		c, err := g.conv(t, f.Type, []string{t.Name, f.Name})
		if err != nil {
			return nil, "", nil, err
		}
		enc = append(enc, "b.Add("+g.encodeExpr(t, c, "x."+f.Name, c.expr, true)+")")

		fail := func() string {
			return fmt.Sprintf("return derive.FieldError(%q, %q, %q, elems[%d], err)", t.Name, f.Name, c.expr, i)
		}
		dec = append(dec, "{")
		src := fmt.Sprintf("elems[%d].Downcast()", i)
		for _, l := range g.decodeStmts(t, c, src, "out."+f.Name, c.expr, keep, fail) {
			dec = append(dec, "\t"+l)
		}
		dec = append(dec, "}")
	}

	dec = append(dec, "*x = out", "return nil")
	return enc, "b.Build().Value()", dec, nil
}

func (g *Generator) wrapper(t *Type) (enc []string, result string, dec []string, err error) {
	d := t.Desc
	c, err := g.conv(t, d.Inner, []string{t.Name})
	if err != nil {
		return nil, "", nil, err
	}
	fail := func() string { return "return err" }

	if t.Def.Category == shape.CategoryStruct {
		name := t.Def.Fields[0].Name
		result = g.encodeExpr(t, c, "x."+name, c.expr, false)
		dec = append(dec, "var out "+t.Receiver())
		dec = append(dec, g.decodeStmts(t, c, "v", "out."+name, c.expr, d.Borrows(), fail)...)
		dec = append(dec, "*x = out", "return nil")
		return nil, result, dec, nil
	}

	recv := t.Receiver()
	result = g.encodeExpr(t, c, "x", recv, false)
	dec = append(g.decodeStmts(t, c, "v", "*x", recv, d.Borrows(), fail), "return nil")
	return nil, result, dec, nil
}

func (g *Generator) enum(t *Type) (enc []string, result string, dec []string, err error) {
	d := t.Desc
	b := basics[reprTypes[d.Repr]]
	g.useErrors = true

	mismatch := fmt.Sprintf("return zerrors.IncorrectType([]string{%q}, %q, string(v.Signature()))", t.Name, t.Name)
	undeclared := fmt.Sprintf("\tpanic(zerrors.New(zerrors.PhaseEncode, zerrors.KindInvalidInput).Path(%q).GoType(%q).Detail(\"%%d is not a declared variant\", x).Build())", t.Name, t.Name)
	result = b.ctor + "(n)"
	enc = append(enc, "var n "+b.goType, "switch x {")
	dec = append(dec,
		"n, err := v."+b.accessor+"()",
		"if err != nil {",
		"\t"+mismatch,
		"}",
		"switch n {")

	// The first variant declared with a discriminant wins.
	seen := make(map[uint64]bool)
	for _, v := range d.Variants {
		bits, _ := v.Value.AsInteger(d.Repr)
		if seen[bits] {
			continue
		}
		seen[bits] = true
		label := strconv.FormatUint(bits, 10)
		if d.Repr.IsSigned() {
			label = strconv.FormatInt(int64(bits), 10)
		}
		enc = append(enc, "case "+v.Name+":", "\tn = "+label)
		dec = append(dec, "case "+label+":", "\t*x = "+v.Name)
	}
	enc = append(enc, "default:", undeclared, "}")
	dec = append(dec, "default:", "\t"+mismatch, "}", "return nil")
	return enc, result, dec, nil
}

func (g *Generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func (g *Generator) lines(ls []string) {
	for _, l := range ls {
		g.buf.WriteString("\t")
		g.buf.WriteString(l)
		g.buf.WriteByte('\n')
	}
}
