// Package reporter implements the three event.Sink output emitters: a
// human-readable log, a TAP (Test Anything Protocol) stream, and a
// newline-delimited JSON structured stream.
//
// # Overview
//
// Each emitter buffers per worker and flushes that worker's buffer to the
// shared writer atomically at event boundaries (the structured emitter
// after every record it writes), so
// concurrent workers never interleave partial lines even though they
// write without holding a lock for the whole case. This mirrors
// FormattedBuffer/getWorkerThreadBuffer/flushAndClear from the original
// output writers.
//
// # Usage
//
//	out := reporter.NewTAPEmitter(os.Stdout, verbose, stats)
//	r := runner.New(out, runner.Options{Workers: 4})
//	suites, _ := registry.All()
//	r.Start(suites)
//	r.WaitTermination()
//
// # Formats
//
//   - Log: one line per suite/case transition plus an optional stats
//     suffix, intended for a human watching a terminal.
//   - TAP: a "1..N" plan header followed by "ok"/"not ok" lines, verbose
//     mode adding diagnostic lines for traces, assertion failures and
//     runtime faults.
//   - Structured: one JSON object per event, suitable for piping into
//     another tool.
package reporter
