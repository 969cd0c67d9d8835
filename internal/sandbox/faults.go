package sandbox

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/faultsafe/gosuite/internal/event"
)

// classify turns a recovered panic value into a FaultKind and detail
// string. runtime.Error only promises a stable Error() message, not a
// typed sub-code, so matching on that text is the established idiom for
// telling Go's built-in fault panics apart; this is the direct analogue
// of inspecting siginfo_t's si_code in the original signal handler.
func classify(r any) (event.FaultKind, string) {
	if rerr, ok := r.(runtime.Error); ok {
		msg := rerr.Error()
		switch {
		case strings.Contains(msg, "invalid memory address or nil pointer dereference"):
			return event.FaultMemoryNotMapped, msg
		case strings.Contains(msg, "index out of range"):
			return event.FaultIndexOutOfBounds, msg
		case strings.Contains(msg, "slice bounds out of range"):
			return event.FaultIndexOutOfBounds, msg
		case strings.Contains(msg, "integer divide by zero"):
			return event.FaultIntegerDivByZero, msg
		default:
			return event.FaultUndefined, msg
		}
	}

	if err, ok := r.(error); ok {
		return event.FaultTypedException, err.Error()
	}
	if str, ok := r.(fmt.Stringer); ok {
		return event.FaultTypedException, str.String()
	}
	if s, ok := r.(string); ok {
		return event.FaultTypedException, s
	}

	return event.FaultUndefinedException, fmt.Sprintf("%v", r)
}
