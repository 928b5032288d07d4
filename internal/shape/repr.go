package shape

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/zvalue/errors"
	"github.com/wippyai/zvalue/value"
)

// DefaultRepr carries discriminants of enums without a repr annotation.
const DefaultRepr = value.KindU32

// ResolveRepr fixes the discriminant width of a UnitEnum and converts each
// variant literal to it. Other shapes are left untouched.
func ResolveRepr(d *Descriptor, annotation string) error {
	if d.Kind != KindUnitEnum {
		return nil
	}

	repr := DefaultRepr
	if annotation = strings.TrimSpace(annotation); annotation != "" {
		k, ok := value.ParseIntegerKind(annotation)
		if !ok {
			return errors.InvalidRepr(d.path(), annotation)
		}
		repr = k
	}
	d.Repr = repr

	for i := range d.Variants {
		v := &d.Variants[i]
		bits, err := parseLiteral(v.Literal)
		if err != nil {
			return errors.InvalidDiscriminant(d.path(), v.Name, err.Error())
		}
		if !fits(repr, bits) {
			return errors.InvalidDiscriminant(d.path(), v.Name,
				fmt.Sprintf("literal %s overflows %s", v.Literal, repr))
		}
		v.Value = value.Integer(repr, bits)
	}
	return nil
}

// parseLiteral accepts Go integer literals in any base and rune literals.
func parseLiteral(lit string) (uint64, error) {
	lit = strings.TrimSpace(lit)
	if strings.HasPrefix(lit, "'") {
		if len(lit) < 3 || !strings.HasSuffix(lit, "'") {
			return 0, fmt.Errorf("malformed rune literal %s", lit)
		}
		r, _, tail, err := strconv.UnquoteChar(lit[1:len(lit)-1], '\'')
		if err != nil || tail != "" {
			return 0, fmt.Errorf("malformed rune literal %s", lit)
		}
		return uint64(r), nil
	}
	bits, err := strconv.ParseUint(lit, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %s", lit)
	}
	return bits, nil
}

func fits(k value.Kind, bits uint64) bool {
	w := uint(8 * k.Width())
	if k.IsSigned() {
		return bits <= uint64(math.MaxInt64)>>(64-w)
	}
	return w == 64 || bits < 1<<w
}
