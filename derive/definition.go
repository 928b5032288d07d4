package derive

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/wippyai/zvalue/internal/shape"
)

type enumRegistration struct {
	repr    string
	members []shape.MemberDef
	natives []reflect.Value // variant constants converted to the enum type
}

// definition describes t the way a type declaration would.
func (c *Compiler) definition(t reflect.Type, o options) *shape.Definition {
	def := &shape.Definition{
		Name:      typeName(t),
		Lifetimes: o.lifetimes,
	}

	if reg, ok := c.enums.Load(t); ok {
		r := reg.(*enumRegistration)
		def.Category = shape.CategoryEnum
		def.Repr = r.repr
		def.Members = r.members
		return def
	}

	switch {
	case t.Kind() == reflect.Struct:
		def.Category = shape.CategoryStruct
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Name == "_" {
				continue
			}
			def.Fields = append(def.Fields, shape.FieldDef{
				Name:     f.Name,
				Index:    i,
				Embedded: f.Anonymous,
				Type:     shape.TypeRef{Reflect: f.Type, Expr: f.Type.String()},
			})
		}
	case isDefined(t) && supportedKind(t.Kind()):
		def.Category = shape.CategoryNewtype
		def.Underlying = shape.TypeRef{Reflect: t, Expr: t.Kind().String()}
	default:
		def.Category = shape.CategoryOther
	}
	return def
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// member turns a registered variant into an enum member. Its discriminant
// text is the constant's numeric value; negative and non-integer values are
// not literals.
func member(t reflect.Type, v Variant) (shape.MemberDef, reflect.Value) {
	m := shape.MemberDef{Name: v.Name}
	if v.Value == nil {
		return m, reflect.Value{}
	}

	rv := reflect.ValueOf(v.Value)
	if !isIntegerKind(rv.Kind()) || !rv.CanConvert(t) {
		m.Disc = shape.DiscExpr
		m.DiscText = fmt.Sprint(v.Value)
		return m, reflect.Value{}
	}

	native := rv.Convert(t)
	if isSignedKind(rv.Kind()) {
		n := rv.Int()
		m.DiscText = strconv.FormatInt(n, 10)
		m.Disc = shape.DiscLiteral
		if n < 0 {
			m.Disc = shape.DiscExpr
		}
	} else {
		m.DiscText = strconv.FormatUint(rv.Uint(), 10)
		m.Disc = shape.DiscLiteral
	}
	return m, native
}
