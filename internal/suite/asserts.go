package suite

import (
	"bytes"

	"github.com/faultsafe/gosuite/internal/event"
)

// True reports failure when cond is false.
func True(b *Base, cond bool, varName string) bool {
	return b.reportUnary(event.AssertTrue, varName, cond)
}

// False reports failure when cond is true.
func False(b *Base, cond bool, varName string) bool {
	return b.reportUnary(event.AssertFalse, varName, !cond)
}

// Equal reports failure when a != want.
func Equal[T comparable](b *Base, a, want T, aName, wantName string) bool {
	return b.reportBinary(event.AssertEqual, aName, wantName, a == want)
}

// Different reports failure when a == notWant.
func Different[T comparable](b *Base, a, notWant T, aName, notWantName string) bool {
	return b.reportBinary(event.AssertDifferent, aName, notWantName, a != notWant)
}

// BitwiseEqual compares the raw bytes of two byte slices, the generic-Go
// analogue of a bitwise memcmp-style comparison over a fixed-width type.
// A nil operand or zero-length comparison is an automatic failure.
func BitwiseEqual(b *Base, a, want []byte, aName, wantName string) bool {
	return b.reportBinary(event.AssertBitwiseEqual, aName, wantName, dataComparable(a, want) && bytes.Equal(a, want))
}

// BitwiseDifferent is the negation of BitwiseEqual; it still fails (rather
// than passing vacuously) when an operand is nil or empty.
func BitwiseDifferent(b *Base, a, notWant []byte, aName, notWantName string) bool {
	return b.reportBinary(event.AssertBitwiseDifferent, aName, notWantName, dataComparable(a, notWant) && !bytes.Equal(a, notWant))
}

// StringEqual reports failure when a != want.
func StringEqual(b *Base, a, want, aName, wantName string) bool {
	return b.reportBinary(event.AssertStringEqual, aName, wantName, a == want)
}

// StringDifferent reports failure when a == notWant.
func StringDifferent(b *Base, a, notWant, aName, notWantName string) bool {
	return b.reportBinary(event.AssertStringDifferent, aName, notWantName, a != notWant)
}

// SameData reports failure unless a and b hold identical bytes. A nil
// operand or zero-length comparison is an automatic failure, matching
// haveSameData's "a && b && sizeInBytes" guard.
func SameData(b *Base, a, other []byte, aName, otherName string) bool {
	return b.reportBinary(event.AssertSameData, aName, otherName, dataComparable(a, other) && bytes.Equal(a, other))
}

// DifferentData reports failure if a and b hold identical bytes, or if
// either operand is nil or empty.
func DifferentData(b *Base, a, other []byte, aName, otherName string) bool {
	return b.reportBinary(event.AssertDifferentData, aName, otherName, dataComparable(a, other) && !bytes.Equal(a, other))
}

// dataComparable is the guard every data predicate runs through before
// comparing bytes: both operands must be non-nil and non-empty.
func dataComparable(a, b []byte) bool {
	return a != nil && b != nil && len(a) > 0 && len(b) > 0
}

// Null reports failure when ptr is non-nil.
func Null[T any](b *Base, ptr *T, varName string) bool {
	return b.reportUnary(event.AssertNull, varName, ptr == nil)
}

// NotNull reports failure when ptr is nil.
func NotNull[T any](b *Base, ptr *T, varName string) bool {
	return b.reportUnary(event.AssertNotNull, varName, ptr != nil)
}

// AreEqual is the non-reporting comparison used by callers that want to
// assert on a derived boolean rather than have the helper itself report,
// matching the original's areXxx family used inside ASSERT_TRUE/FALSE.
func AreEqual[T comparable](a, want T) bool {
	return a == want
}

// AreDifferent is the negation of AreEqual.
func AreDifferent[T comparable](a, want T) bool {
	return a != want
}

// AreStringEqual is the string-specific non-reporting comparison.
func AreStringEqual(a, want string) bool {
	return a == want
}

// AreStringDifferent is the negation of AreStringEqual.
func AreStringDifferent(a, want string) bool {
	return a != want
}

// HaveSameData is the non-reporting byte-slice comparison; a nil or empty
// operand is an automatic false, matching SameData.
func HaveSameData(a, other []byte) bool {
	return dataComparable(a, other) && bytes.Equal(a, other)
}

// HaveDifferentData is the negation of HaveSameData.
func HaveDifferentData(a, other []byte) bool {
	return dataComparable(a, other) && !bytes.Equal(a, other)
}
