package value

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF64
	KindStr
	KindSignature
	KindArray
	KindStructure
	KindVariant
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindBool:      "bool",
	KindU8:        "u8",
	KindI16:       "i16",
	KindU16:       "u16",
	KindI32:       "i32",
	KindU32:       "u32",
	KindI64:       "i64",
	KindU64:       "u64",
	KindF64:       "f64",
	KindStr:       "str",
	KindSignature: "signature",
	KindArray:     "array",
	KindStructure: "structure",
	KindVariant:   "variant",
}

// D-Bus type codes.
var kindCodes = [...]byte{
	KindBool:      'b',
	KindU8:        'y',
	KindI16:       'n',
	KindU16:       'q',
	KindI32:       'i',
	KindU32:       'u',
	KindI64:       'x',
	KindU64:       't',
	KindF64:       'd',
	KindStr:       's',
	KindSignature: 'g',
	KindArray:     'a',
	KindStructure: '(',
	KindVariant:   'v',
}

// width in bytes of the integer kinds
var kindWidths = [...]int{
	KindU8:  1,
	KindI16: 2,
	KindU16: 2,
	KindI32: 4,
	KindU32: 4,
	KindI64: 8,
	KindU64: 8,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Code returns the single-byte D-Bus type code, or 0 for KindInvalid.
func (k Kind) Code() byte {
	if int(k) < len(kindCodes) {
		return kindCodes[k]
	}
	return 0
}

// IsScalar reports whether k is a basic, non-container kind.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindSignature
}

// IsInteger reports whether k is one of the integer kinds.
func (k Kind) IsInteger() bool {
	return k >= KindU8 && k <= KindU64
}

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	return k == KindI16 || k == KindI32 || k == KindI64
}

// Width returns the byte width of an integer kind, 0 otherwise.
func (k Kind) Width() int {
	if k.IsInteger() {
		return kindWidths[k]
	}
	return 0
}

// KindForCode maps a D-Bus type code to its Kind.
func KindForCode(c byte) Kind {
	for k, code := range kindCodes {
		if code == c && code != 0 {
			return Kind(k)
		}
	}
	return KindInvalid
}

// ParseIntegerKind maps a width name such as "u8" or "i32" to its integer Kind.
func ParseIntegerKind(name string) (Kind, bool) {
	for k := KindU8; k <= KindU64; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}
