//go:build !linux

package clock

import "time"

// processCPUTime and threadCPUTime fall back to the real-time clock on
// platforms without a RUSAGE_SELF/RUSAGE_THREAD equivalent wired here, per
// the "progressively coarser source" fallback rule.
func processCPUTime() time.Duration {
	return time.Duration(time.Now().UnixNano())
}

func threadCPUTime() time.Duration {
	return processCPUTime()
}
