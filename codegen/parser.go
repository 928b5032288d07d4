package codegen

import (
	stderrors "errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/internal/shape"
)

const valuePath = "github.com/wippyai/zvalue/value"

// Import is a package referenced by a field type.
type Import struct {
	Name string
	Path string
}

// Type is a declaration carrying a derive directive.
type Type struct {
	Def       *shape.Definition
	Desc      *shape.Descriptor
	refs      map[string][]Import // field type expression -> packages it names
	Name      string
	Pos       token.Position
	Directive Directive
}

// Receiver returns the method receiver type, including type parameters.
func (t *Type) Receiver() string {
	if len(t.Def.TypeParams) == 0 {
		return t.Name
	}
	return t.Name + "[" + strings.Join(t.Def.TypeParams, ", ") + "]"
}

// Package is the set of derived types declared by one Go package.
type Package struct {
	Name  string
	Path  string
	Dir   string
	Types []*Type
}

// ParseFiles parses the given files of one package.
func ParseFiles(filenames ...string) (*Package, error) {
	fset := token.NewFileSet()
	files := make([]*ast.File, 0, len(filenames))
	for _, fn := range filenames {
		f, err := parser.ParseFile(fset, fn, nil, parser.ParseComments)
		if err != nil {
			return nil, errors.ParseFailed(fn, err)
		}
		files = append(files, f)
	}
	return Collect(fset, files)
}

// ParseSource parses a single file from src.
func ParseSource(filename string, src any) (*Package, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.ParseFailed(filename, err)
	}
	return Collect(fset, []*ast.File{f})
}

type candidate struct {
	spec    *ast.TypeSpec
	imports map[string]string
	typ     *Type
}

type collector struct {
	fset    *token.FileSet
	members map[string][]shape.MemberDef // enum type name -> constants
}

// Collect extracts the derived types of one package from its parsed files.
// Generated files are skipped. Every analysis failure is reported.
func Collect(fset *token.FileSet, files []*ast.File) (*Package, error) {
	c := &collector{fset: fset, members: make(map[string][]shape.MemberDef)}
	pkg := &Package{}

	var cands []candidate
	var errs []error
	for _, f := range files {
		if ast.IsGenerated(f) {
			continue
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		}
		imports := fileImports(f)
		c.collectConsts(f)

		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				dir, ok, err := parseDirective(doc)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if !ok {
					continue
				}

				t := &Type{
					Name:      ts.Name.Name,
					Pos:       fset.Position(ts.Pos()),
					Directive: dir,
					refs:      make(map[string][]Import),
				}
				if ts.Assign.IsValid() {
					errs = append(errs, errors.UnsupportedShape([]string{t.Name}, t.Name,
						"type aliases cannot be derived"))
					continue
				}
				cands = append(cands, candidate{spec: ts, imports: imports, typ: t})
			}
		}
	}

	for _, cand := range cands {
		t := cand.typ
		t.Def = c.definition(cand)
		desc, err := shape.Analyze(t.Def, t.Directive.Flavors)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		t.Desc = desc
		pkg.Types = append(pkg.Types, t)

		Logger().Debug("collected type",
			zap.String("type", t.Name),
			zap.Stringer("kind", desc.Kind),
			zap.String("pos", t.Pos.String()))
	}

	if len(errs) > 0 {
		return pkg, stderrors.Join(errs...)
	}
	return pkg, nil
}

func (c *collector) definition(cand candidate) *shape.Definition {
	ts, t := cand.spec, cand.typ
	def := &shape.Definition{
		Name:      t.Name,
		Repr:      t.Directive.Repr,
		Lifetimes: t.Directive.Borrows,
	}

	params := make(map[string]bool)
	if ts.TypeParams != nil {
		for _, f := range ts.TypeParams.List {
			for _, n := range f.Names {
				def.TypeParams = append(def.TypeParams, n.Name)
				params[n.Name] = true
			}
		}
	}

	switch u := ts.Type.(type) {
	case *ast.StructType:
		def.Category = shape.CategoryStruct
		index := 0
		for _, f := range u.Fields.List {
			ref := c.typeRef(f.Type, params, cand.imports, t)
			if len(f.Names) == 0 {
				def.Fields = append(def.Fields, shape.FieldDef{
					Name:     embeddedName(f.Type),
					Type:     ref,
					Index:    index,
					Embedded: true,
				})
				index++
				continue
			}
			for _, n := range f.Names {
				if n.Name != "_" {
					def.Fields = append(def.Fields, shape.FieldDef{Name: n.Name, Type: ref, Index: index})
				}
				index++
			}
		}
	case *ast.Ident:
		if integerTypes[u.Name] && len(c.members[t.Name]) > 0 {
			def.Category = shape.CategoryEnum
			def.Members = c.members[t.Name]
			return def
		}
		def.Category = shape.CategoryNewtype
		def.Underlying = c.typeRef(u, params, cand.imports, t)
	case *ast.ArrayType, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		def.Category = shape.CategoryNewtype
		def.Underlying = c.typeRef(u, params, cand.imports, t)
	default:
		def.Category = shape.CategoryOther
	}
	return def
}

var integerTypes = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"byte": true, "rune": true, "uintptr": true,
}

// collectConsts records constants typed with a named type as members of
// that type. A spec that repeats the previous one implicitly is a member
// without a discriminant.
func (c *collector) collectConsts(f *ast.File) {
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}

		last := ""
		for _, spec := range gd.Specs {
			vs := spec.(*ast.ValueSpec)

			typ, implicit := "", false
			switch {
			case vs.Type != nil:
				typ = identName(vs.Type)
			case len(vs.Values) == 0:
				typ, implicit = last, true
			default:
				typ, _ = conversion(vs.Values[0])
			}
			last = typ
			if typ == "" {
				continue
			}

			for i, name := range vs.Names {
				if name.Name == "_" {
					continue
				}
				m := shape.MemberDef{Name: name.Name}
				if !implicit && i < len(vs.Values) {
					expr := vs.Values[i]
					if vs.Type == nil {
						var arg ast.Expr
						if _, arg = conversion(expr); arg == nil {
							continue
						}
						expr = arg
					}
					m.Disc, m.DiscText = discriminant(expr)
				}
				c.members[typ] = append(c.members[typ], m)
			}
		}
	}
}

// conversion matches T(x) and returns T and x.
func conversion(expr ast.Expr) (string, ast.Expr) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return "", nil
	}
	id, ok := call.Fun.(*ast.Ident)
	if !ok {
		return "", nil
	}
	return id.Name, call.Args[0]
}

func discriminant(expr ast.Expr) (shape.DiscKind, string) {
	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			break
		}
		expr = p.X
	}
	if lit, ok := expr.(*ast.BasicLit); ok && (lit.Kind == token.INT || lit.Kind == token.CHAR) {
		return shape.DiscLiteral, lit.Value
	}
	return shape.DiscExpr, types.ExprString(expr)
}

func identName(expr ast.Expr) string {
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	}
	return types.ExprString(expr)
}

// typeRef describes a field type and records the packages it references.
// References to the value package are normalised to the name "value".
func (c *collector) typeRef(expr ast.Expr, params map[string]bool, imports map[string]string, t *Type) shape.TypeRef {
	text := types.ExprString(expr)

	var refs []Import
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		x, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		p, ok := imports[x.Name]
		if !ok {
			return true
		}
		if p == valuePath {
			if x.Name != "value" {
				text = regexp.MustCompile(`\b`+regexp.QuoteMeta(x.Name)+`\.`).ReplaceAllString(text, "value.")
			}
			return true
		}
		refs = append(refs, Import{Name: x.Name, Path: p})
		return true
	})

	if len(refs) > 0 {
		t.refs[text] = refs
	}
	return shape.TypeRef{Expr: text, Param: params[text]}
}

func fileImports(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := defaultImportName(p)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = p
	}
	return imports
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// defaultImportName guesses the package name of an import path the way the
// go command's conventions usually make it.
func defaultImportName(p string) string {
	base := path.Base(p)
	if majorVersion.MatchString(base) {
		base = path.Base(path.Dir(p))
	}
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	return strings.ReplaceAll(base, "-", "_")
}
