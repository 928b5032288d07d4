package codegen

import (
	"go/ast"
	"strings"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/internal/shape"
)

const directivePrefix = "//zvalue:"

// Directive holds the zvalue directives found in a type's doc comment.
type Directive struct {
	Repr    string
	Borrows []string
	Flavors shape.Flavor
}

// parseDirective reads the directives of doc. ok is false when doc carries
// no derive directive.
func parseDirective(doc *ast.CommentGroup) (d Directive, ok bool, err error) {
	if doc == nil {
		return d, false, nil
	}

	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
		if len(fields) == 0 {
			return d, false, directiveError(c.Text, "missing directive name")
		}

		name, args := fields[0], fields[1:]
		switch name {
		case "derive":
			ok = true
			for _, a := range args {
				switch a {
				case "value":
					d.Flavors |= shape.FlavorValue
				case "owned":
					d.Flavors |= shape.FlavorOwned
				default:
					return d, false, directiveError(c.Text, "unknown flavor "+a)
				}
			}
		case "repr":
			if len(args) != 1 {
				return d, false, directiveError(c.Text, "repr takes one width")
			}
			d.Repr = args[0]
		case "borrow":
			if len(args) != 1 {
				return d, false, directiveError(c.Text, "borrow takes one name")
			}
			d.Borrows = append(d.Borrows, args[0])
		default:
			return d, false, directiveError(c.Text, "unknown directive "+name)
		}
	}

	if d.Flavors == 0 {
		d.Flavors = shape.FlavorBoth
	}
	return d, ok, nil
}

func directiveError(text, detail string) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Detail("%s: %s", strings.TrimSpace(text), detail).
		Build()
}
