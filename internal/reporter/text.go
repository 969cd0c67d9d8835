package reporter

import "github.com/faultsafe/gosuite/internal/event"

func unaryAssertText(kind event.AssertKind) string {
	switch kind {
	case event.AssertTrue:
		return "is not true"
	case event.AssertFalse:
		return "is not false"
	case event.AssertNull:
		return "is not null"
	case event.AssertNotNull:
		return "is null"
	default:
		return "failed"
	}
}

func binaryAssertText(kind event.AssertKind) string {
	switch kind {
	case event.AssertEqual:
		return "is not equal to"
	case event.AssertDifferent:
		return "is equal to"
	case event.AssertBitwiseEqual:
		return "is not bitwise equal to"
	case event.AssertBitwiseDifferent:
		return "is bitwise equal to"
	case event.AssertStringEqual:
		return "does not match"
	case event.AssertStringDifferent:
		return "matches"
	case event.AssertSameData:
		return "does not have the same data as"
	case event.AssertDifferentData:
		return "has the same data as"
	default:
		return "failed against"
	}
}
