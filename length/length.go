// Package length implements the DICOM element length type.
//
// A Length is usually a defined 32-bit byte count, but the wire sentinel
// 0xFFFFFFFF marks certain sequences and items as having an undefined
// length, terminated instead by a delimiter. This type carries NaN-like
// arithmetic: an undefined Length is never equal to, nor ordered against,
// anything else — including another undefined Length.
package length

import "fmt"

// Undefined is the wire sentinel marking a Length as undefined.
const Undefined uint32 = 0xFFFFFFFF

// Length is a 32-bit element length, or the undefined sentinel.
type Length struct {
	raw uint32
}

// Defined returns a Length wrapping n. It panics if n is the undefined
// sentinel: callers that need to represent "undefined" must call
// UndefinedLength explicitly.
func Defined(n uint32) Length {
	if n == Undefined {
		panic("length: Defined called with the undefined sentinel; use UndefinedLength")
	}
	return Length{raw: n}
}

// UndefinedLength returns the undefined Length.
func UndefinedLength() Length {
	return Length{raw: Undefined}
}

// New wraps n as a Length, including the sentinel value.
func New(n uint32) Length {
	return Length{raw: n}
}

// IsDefined reports whether l carries a concrete byte count.
func (l Length) IsDefined() bool {
	return l.raw != Undefined
}

// IsUndefined reports whether l is the undefined sentinel.
func (l Length) IsUndefined() bool {
	return l.raw == Undefined
}

// Get returns the byte count and true, or (0, false) if l is undefined.
func (l Length) Get() (uint32, bool) {
	if l.IsUndefined() {
		return 0, false
	}
	return l.raw, true
}

// String renders the defined value in decimal, or "U/L" when undefined.
func (l Length) String() string {
	if l.IsUndefined() {
		return "U/L"
	}
	return fmt.Sprintf("%d", l.raw)
}

// Equal reports whether l and other carry the same defined value.
// An undefined Length is never equal to anything, including another
// undefined Length.
func (l Length) Equal(other Length) bool {
	if l.IsUndefined() || other.IsUndefined() {
		return false
	}
	return l.raw == other.raw
}

// Less reports whether l orders strictly before other. Any comparison
// involving an undefined Length is false.
func (l Length) Less(other Length) bool {
	if l.IsUndefined() || other.IsUndefined() {
		return false
	}
	return l.raw < other.raw
}

// Greater reports whether l orders strictly after other. Any comparison
// involving an undefined Length is false.
func (l Length) Greater(other Length) bool {
	if l.IsUndefined() || other.IsUndefined() {
		return false
	}
	return l.raw > other.raw
}

// Add returns l + other. If either operand is undefined, the result is
// undefined. Overflow onto the sentinel is an assertion failure: a
// conforming defined-length element can never legitimately sum to it.
func (l Length) Add(other Length) Length {
	if l.IsUndefined() || other.IsUndefined() {
		return UndefinedLength()
	}
	sum := l.raw + other.raw
	if sum == Undefined {
		panic("length: addition overflowed onto the undefined sentinel")
	}
	return Length{raw: sum}
}

// Sub returns l - other. If either operand is undefined, the result is
// undefined.
func (l Length) Sub(other Length) Length {
	if l.IsUndefined() || other.IsUndefined() {
		return UndefinedLength()
	}
	diff := l.raw - other.raw
	if diff == Undefined {
		panic("length: subtraction overflowed onto the undefined sentinel")
	}
	return Length{raw: diff}
}

// AddDelta returns l + delta, where delta is a signed 32-bit adjustment.
// If l is undefined, the result is undefined. Otherwise the addition is
// performed in signed space and wrapped back to unsigned, asserting the
// result is not the sentinel.
func (l Length) AddDelta(delta int32) Length {
	if l.IsUndefined() {
		return UndefinedLength()
	}
	result := uint32(int64(l.raw) + int64(delta))
	if result == Undefined {
		panic("length: delta addition overflowed onto the undefined sentinel")
	}
	return Length{raw: result}
}

// SubDelta returns l - delta. See AddDelta.
func (l Length) SubDelta(delta int32) Length {
	return l.AddDelta(-delta)
}
