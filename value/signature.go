package value

import "strings"

// Signature is the D-Bus style type signature of a Value: one code per
// scalar, "a" followed by the element signature for arrays, parenthesized
// field signatures for structures and "v" for variants.
type Signature string

// SignatureVariant is the signature of every variant.
const SignatureVariant Signature = "v"

// ScalarSignature returns the signature of a scalar kind, or "" for
// container kinds.
func ScalarSignature(k Kind) Signature {
	if !k.IsScalar() {
		return ""
	}
	return Signature([]byte{k.Code()})
}

// ArrayOf returns the signature of an array of elem.
func ArrayOf(elem Signature) Signature {
	return "a" + elem
}

// StructOf returns the signature of a structure with the given field
// signatures in order.
func StructOf(fields ...Signature) Signature {
	var b strings.Builder
	b.WriteByte('(')
	for _, f := range fields {
		b.WriteString(string(f))
	}
	b.WriteByte(')')
	return Signature(b.String())
}

func (s Signature) String() string {
	return string(s)
}

// Kind returns the kind of the leading complete type.
func (s Signature) Kind() Kind {
	if s == "" {
		return KindInvalid
	}
	return KindForCode(s[0])
}

// Elem returns the element signature of an array signature.
func (s Signature) Elem() Signature {
	if s.Kind() != KindArray {
		return ""
	}
	return s[1:]
}

// Fields splits a structure signature into its field signatures.
func (s Signature) Fields() []Signature {
	if s.Kind() != KindStructure || !s.Valid() {
		return nil
	}
	inner := string(s[1 : len(s)-1])
	var out []Signature
	for len(inner) > 0 {
		n := scanType(inner)
		out = append(out, Signature(inner[:n]))
		inner = inner[n:]
	}
	return out
}

// Valid reports whether s is exactly one complete type.
func (s Signature) Valid() bool {
	if s == "" {
		return false
	}
	return scanType(string(s)) == len(s)
}

// scanType returns the length of the complete type at the start of s, or -1.
func scanType(s string) int {
	if s == "" {
		return -1
	}
	switch s[0] {
	case 'a':
		n := scanType(s[1:])
		if n < 0 {
			return -1
		}
		return 1 + n
	case '(':
		i := 1
		for i < len(s) && s[i] != ')' {
			n := scanType(s[i:])
			if n < 0 {
				return -1
			}
			i += n
		}
		// unit structures have no signature
		if i >= len(s) || i == 1 {
			return -1
		}
		return i + 1
	default:
		k := KindForCode(s[0])
		if !k.IsScalar() && k != KindVariant {
			return -1
		}
		return 1
	}
}
