// Package value provides the generic, self-describing tagged container that
// derived codecs convert to and from.
//
// A Value holds one of:
//
//	Kind        Code  Go
//	──────────────────────────────
//	bool        b     bool
//	u8          y     uint8
//	i16         n     int16
//	u16         q     uint16
//	i32         i     int32
//	u32         u     uint32
//	i64         x     int64
//	u64         t     uint64
//	f64         d     float64
//	str         s     string
//	signature   g     Signature
//	array       a     homogeneous []Value
//	structure   (..)  positional []Value
//	variant     v     Value with its own signature
//
// Structures are positional: element i corresponds to the i-th declared
// field of the native record and no names travel with the data.
//
// # Ownership
//
// Value is the borrowing flavor. BorrowStr builds string Values that alias
// a caller buffer without copying, so such a Value is only valid while the
// buffer is left untouched. OwnedValue is the fully owned flavor: Value.Owned
// deep-copies any borrowed data. Codec rules are identical for both.
//
// # Capabilities
//
// Marshaler, Unmarshaler and Typed describe types that take part in Value
// conversion. Generated and runtime-derived codecs implement and consume
// them.
package value
