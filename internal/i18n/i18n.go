// Package i18n is a thin localization seam for the output emitters,
// grounded on original_source/src/i18n/i18n.cpp's getString/getSequence
// API shape. Only the default catalog is populated; additional locales
// register their own catalog with golang.org/x/text/message.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Key identifies a catalog entry.
type Key int

const (
	RunnerStartVerbose Key = iota
	RunnerStartThreads
	StatsNotAvailable
	TotalExecTime
	FailedSuite
	TraceHeader
	AssertHeader
	RuntimeErrorHeader
	TimeUnitsSeq
	TimePrefixesSeq
)

var printer = message.NewPrinter(language.AmericanEnglish)

func init() {
	message.SetString(language.AmericanEnglish, "runner.start.verbose", "running %d suites (%d cases)")
	message.SetString(language.AmericanEnglish, "runner.start.threads", "using %d worker threads")
	message.SetString(language.AmericanEnglish, "stats.not_available", "n/a")
	message.SetString(language.AmericanEnglish, "total.exec.time", "total execution time")
	message.SetString(language.AmericanEnglish, "failed.suite", "%s FAILED TO CONSTRUCT")
	message.SetString(language.AmericanEnglish, "trace.header", "trace %s")
	message.SetString(language.AmericanEnglish, "assert.header", "assert %s")
	message.SetString(language.AmericanEnglish, "runtime.error.header", "runtime error")
}

// String returns the localized message for key, formatted with args.
func String(key Key, args ...any) string {
	return printer.Sprintf(catalogKey(key), args...)
}

// Sequence returns a fixed-length set of localized strings, the
// analogue of getSequence(TIME_UNITS_SEQ, 5).
func Sequence(key Key) []string {
	switch key {
	case TimeUnitsSeq:
		return []string{"ns", "us", "ms", "s", "m"}
	case TimePrefixesSeq:
		return []string{"real: ", "cpu: ", "thread: "}
	default:
		return nil
	}
}

func catalogKey(key Key) string {
	switch key {
	case RunnerStartVerbose:
		return "runner.start.verbose"
	case RunnerStartThreads:
		return "runner.start.threads"
	case StatsNotAvailable:
		return "stats.not_available"
	case TotalExecTime:
		return "total.exec.time"
	case FailedSuite:
		return "failed.suite"
	case TraceHeader:
		return "trace.header"
	case AssertHeader:
		return "assert.header"
	case RuntimeErrorHeader:
		return "runtime.error.header"
	default:
		return ""
	}
}
