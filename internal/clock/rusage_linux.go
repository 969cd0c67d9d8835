//go:build linux

package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

func processCPUTime() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return time.Duration(time.Now().UnixNano())
	}
	return rusageToDuration(ru)
}

// threadCPUTime reads RUSAGE_THREAD, which is only meaningful for a
// goroutine pinned to its OS thread via runtime.LockOSThread; callers in
// internal/runner hold that invariant for the life of a worker.
func threadCPUTime() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_THREAD, &ru); err != nil {
		return processCPUTime()
	}
	return rusageToDuration(ru)
}

func rusageToDuration(ru unix.Rusage) time.Duration {
	user := time.Duration(ru.Utime.Sec)*time.Second + time.Duration(ru.Utime.Usec)*time.Microsecond
	sys := time.Duration(ru.Stime.Sec)*time.Second + time.Duration(ru.Stime.Usec)*time.Microsecond
	return user + sys
}
