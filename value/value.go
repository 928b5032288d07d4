package value

import (
	"math"
	"strconv"
	"strings"
	"unsafe"

	"github.com/wippyai/zvalue/errors"
)

// Value is a self-describing tagged container. A zero Value is invalid.
//
// Values are immutable once built. A Value may borrow string data from a
// caller buffer (see BorrowStr); Owned produces a copy that does not.
type Value struct {
	elems    []Value
	str      string
	sig      Signature // element signature of an array
	bits     uint64
	kind     Kind
	borrowed bool
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	var bits uint64
	if b {
		bits = 1
	}
	return Value{kind: KindBool, bits: bits}
}

// U8 returns a byte Value.
func U8(v uint8) Value {
	return Value{kind: KindU8, bits: uint64(v)}
}

// I16 returns an int16 Value.
func I16(v int16) Value {
	return Value{kind: KindI16, bits: uint64(int64(v))}
}

// U16 returns a uint16 Value.
func U16(v uint16) Value {
	return Value{kind: KindU16, bits: uint64(v)}
}

// I32 returns an int32 Value.
func I32(v int32) Value {
	return Value{kind: KindI32, bits: uint64(int64(v))}
}

// U32 returns a uint32 Value.
func U32(v uint32) Value {
	return Value{kind: KindU32, bits: uint64(v)}
}

// I64 returns an int64 Value.
func I64(v int64) Value {
	return Value{kind: KindI64, bits: uint64(v)}
}

// U64 returns a uint64 Value.
func U64(v uint64) Value {
	return Value{kind: KindU64, bits: v}
}

// F64 returns a double Value.
func F64(v float64) Value {
	return Value{kind: KindF64, bits: math.Float64bits(v)}
}

// Str returns an owned string Value.
func Str(s string) Value {
	return Value{kind: KindStr, str: s}
}

// BorrowStr returns a string Value that aliases buf without copying. The
// Value is only valid while buf is not modified.
func BorrowStr(buf []byte) Value {
	if len(buf) == 0 {
		return Str("")
	}
	return Value{
		kind:     KindStr,
		str:      unsafe.String(unsafe.SliceData(buf), len(buf)),
		borrowed: true,
	}
}

// NewSignature returns a Value holding the signature s.
func NewSignature(s Signature) Value {
	return Value{kind: KindSignature, str: string(s)}
}

// Integer builds an integer Value of kind k from two's complement bits,
// truncating to the kind's width.
func Integer(k Kind, bits uint64) Value {
	if !k.IsInteger() {
		return Value{}
	}
	return Value{kind: k, bits: normalize(k, bits)}
}

func normalize(k Kind, bits uint64) uint64 {
	shift := uint(64 - 8*k.Width())
	if k.IsSigned() {
		return uint64(int64(bits<<shift) >> shift)
	}
	return bits << shift >> shift
}

// NewArray builds an array whose elements all have signature elem.
func NewArray(elem Signature, elems ...Value) Value {
	return Value{kind: KindArray, sig: elem, elems: elems}
}

// NewVariant wraps inner so that it carries its own signature.
func NewVariant(inner Value) Value {
	return Value{kind: KindVariant, elems: []Value{inner}}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v holds anything. The zero Value is invalid.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// IsBorrowed reports whether v holds string data aliasing a caller buffer.
func (v Value) IsBorrowed() bool {
	if v.borrowed {
		return true
	}
	for _, e := range v.elems {
		if e.IsBorrowed() {
			return true
		}
	}
	return false
}

// Signature returns the signature of v, computed from its contents.
func (v Value) Signature() Signature {
	switch v.kind {
	case KindArray:
		return ArrayOf(v.sig)
	case KindStructure:
		sigs := make([]Signature, len(v.elems))
		for i, e := range v.elems {
			sigs[i] = e.Signature()
		}
		return StructOf(sigs...)
	case KindVariant:
		return SignatureVariant
	default:
		return ScalarSignature(v.kind)
	}
}

// Downcast unwraps one level of Variant. Other values are returned as is.
func (v Value) Downcast() Value {
	if v.kind == KindVariant && len(v.elems) == 1 {
		return v.elems[0]
	}
	return v
}

func (v Value) incorrect(goType string) error {
	return errors.IncorrectType(nil, goType, string(v.Signature()))
}

// AsBool returns the bool held by v. Any other kind is incorrect_type.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.incorrect("bool")
	}
	return v.bits != 0, nil
}

// AsU8 returns the uint8 held by v. Any other kind is incorrect_type.
func (v Value) AsU8() (uint8, error) {
	if v.kind != KindU8 {
		return 0, v.incorrect("uint8")
	}
	return uint8(v.bits), nil
}

// AsI16 returns the int16 held by v. Any other kind is incorrect_type.
func (v Value) AsI16() (int16, error) {
	if v.kind != KindI16 {
		return 0, v.incorrect("int16")
	}
	return int16(v.bits), nil
}

// AsU16 returns the uint16 held by v. Any other kind is incorrect_type.
func (v Value) AsU16() (uint16, error) {
	if v.kind != KindU16 {
		return 0, v.incorrect("uint16")
	}
	return uint16(v.bits), nil
}

// AsI32 returns the int32 held by v. Any other kind is incorrect_type.
func (v Value) AsI32() (int32, error) {
	if v.kind != KindI32 {
		return 0, v.incorrect("int32")
	}
	return int32(v.bits), nil
}

// AsU32 returns the uint32 held by v. Any other kind is incorrect_type.
func (v Value) AsU32() (uint32, error) {
	if v.kind != KindU32 {
		return 0, v.incorrect("uint32")
	}
	return uint32(v.bits), nil
}

// AsI64 returns the int64 held by v. Any other kind is incorrect_type.
func (v Value) AsI64() (int64, error) {
	if v.kind != KindI64 {
		return 0, v.incorrect("int64")
	}
	return int64(v.bits), nil
}

// AsU64 returns the uint64 held by v. Any other kind is incorrect_type.
func (v Value) AsU64() (uint64, error) {
	if v.kind != KindU64 {
		return 0, v.incorrect("uint64")
	}
	return v.bits, nil
}

// AsF64 returns the float64 held by v. Any other kind is incorrect_type.
func (v Value) AsF64() (float64, error) {
	if v.kind != KindF64 {
		return 0, v.incorrect("float64")
	}
	return math.Float64frombits(v.bits), nil
}

// AsStr returns the string payload. When v borrows its data the result
// aliases the source buffer.
func (v Value) AsStr() (string, error) {
	if v.kind != KindStr {
		return "", v.incorrect("string")
	}
	return v.str, nil
}

// AsOwnedStr is AsStr with borrowed data copied out of the source buffer.
func (v Value) AsOwnedStr() (string, error) {
	s, err := v.AsStr()
	if err != nil || !v.borrowed {
		return s, err
	}
	return strings.Clone(s), nil
}

// AsSignature returns the signature held by a signature Value.
func (v Value) AsSignature() (Signature, error) {
	if v.kind != KindSignature {
		return "", v.incorrect("value.Signature")
	}
	return Signature(v.str), nil
}

// AsInteger returns the two's complement bits of an integer Value of kind k.
func (v Value) AsInteger(k Kind) (uint64, error) {
	if !k.IsInteger() || v.kind != k {
		return 0, v.incorrect(k.String())
	}
	return v.bits, nil
}

// AsArray returns the element signature and elements of an array.
func (v Value) AsArray() (Signature, []Value, error) {
	if v.kind != KindArray {
		return "", nil, v.incorrect("array")
	}
	return v.sig, v.elems, nil
}

// AsVariant returns the Value wrapped by a variant.
func (v Value) AsVariant() (Value, error) {
	if v.kind != KindVariant || len(v.elems) != 1 {
		return Value{}, v.incorrect("value.Value")
	}
	return v.elems[0], nil
}

// AsStructure is StructureFrom(v).
func (v Value) AsStructure() (Structure, error) {
	return StructureFrom(v)
}

// Len returns the element count of arrays and structures.
func (v Value) Len() int {
	if v.kind == KindArray || v.kind == KindStructure {
		return len(v.elems)
	}
	return 0
}

// Equal reports structural equality. Floats compare by bit pattern.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindStr, KindSignature:
		return v.str == o.str
	case KindArray, KindStructure, KindVariant:
		if v.sig != o.sig || len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	default:
		return v.bits == o.bits
	}
}

// Owned returns a deep copy that does not alias any caller buffer.
func (v Value) Owned() OwnedValue {
	return OwnedValue{v: v.clone()}
}

func (v Value) clone() Value {
	c := v
	if v.borrowed {
		c.str = strings.Clone(v.str)
		c.borrowed = false
	}
	if v.elems != nil {
		c.elems = make([]Value, len(v.elems))
		for i, e := range v.elems {
			c.elems[i] = e.clone()
		}
	}
	return c
}

func (v Value) String() string {
	var b strings.Builder
	v.format(&b)
	return b.String()
}

func (v Value) format(b *strings.Builder) {
	switch v.kind {
	case KindBool:
		b.WriteString("Bool(")
		b.WriteString(strconv.FormatBool(v.bits != 0))
		b.WriteByte(')')
	case KindU8, KindU16, KindU32, KindU64:
		b.WriteString(strings.ToUpper(v.kind.String()))
		b.WriteByte('(')
		b.WriteString(strconv.FormatUint(v.bits, 10))
		b.WriteByte(')')
	case KindI16, KindI32, KindI64:
		b.WriteString(strings.ToUpper(v.kind.String()))
		b.WriteByte('(')
		b.WriteString(strconv.FormatInt(int64(v.bits), 10))
		b.WriteByte(')')
	case KindF64:
		b.WriteString("F64(")
		b.WriteString(strconv.FormatFloat(math.Float64frombits(v.bits), 'g', -1, 64))
		b.WriteByte(')')
	case KindStr:
		b.WriteString("Str(")
		b.WriteString(strconv.Quote(v.str))
		b.WriteByte(')')
	case KindSignature:
		b.WriteString("Signature(")
		b.WriteString(strconv.Quote(v.str))
		b.WriteByte(')')
	case KindArray:
		b.WriteString("Array<")
		b.WriteString(string(v.sig))
		b.WriteString(">[")
		formatList(b, v.elems)
		b.WriteByte(']')
	case KindStructure:
		b.WriteString("Structure(")
		formatList(b, v.elems)
		b.WriteByte(')')
	case KindVariant:
		b.WriteString("Variant(")
		formatList(b, v.elems)
		b.WriteByte(')')
	default:
		b.WriteString("Invalid")
	}
}

func formatList(b *strings.Builder, elems []Value) {
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		e.format(b)
	}
}
