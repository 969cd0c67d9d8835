package reporter

import (
	"fmt"
	"io"

	"github.com/faultsafe/gosuite/internal/event"
	"github.com/faultsafe/gosuite/internal/i18n"
)

// LogEmitter writes a human-readable line per transition, intended for a
// terminal watching a run live.
type LogEmitter struct {
	buf     *workerBuffers
	verbose bool
	stats   bool
}

// NewLogEmitter returns a log emitter writing to out.
func NewLogEmitter(out io.Writer, verbose, stats bool) *LogEmitter {
	return &LogEmitter{buf: newWorkerBuffers(out), verbose: verbose, stats: stats}
}

func (l *LogEmitter) OnEvent(e event.Event) {
	switch e.Kind {
	case event.RunnerStart:
		b := l.buf.get(0)
		fmt.Fprintf(b, "%s, %s\n",
			i18n.String(i18n.RunnerStartVerbose, e.NBTotalSuites, e.NBTotalCases),
			i18n.String(i18n.RunnerStartThreads, e.NBMaxWorkers))
		l.buf.flush(0)

	case event.RunnerFinish:
		b := l.buf.get(0)
		fmt.Fprintf(b, "done: %d/%d suites passed", e.NBSuccessSuites, e.NBTotalSuites)
		if l.stats {
			if e.Timer != nil {
				fmt.Fprintf(b, " (%s: real=%s process=%s thread=%s)",
					i18n.String(i18n.TotalExecTime), e.Timer.ElapsedReal(), e.Timer.ElapsedProcess(), e.Timer.ElapsedThread())
			} else {
				fmt.Fprintf(b, " (%s)", i18n.String(i18n.StatsNotAvailable))
			}
		}
		fmt.Fprintln(b)
		l.buf.flush(0)

	case event.SuiteError:
		b := l.buf.get(e.WorkerIdx)
		fmt.Fprintln(b, i18n.String(i18n.FailedSuite, e.SuiteName))
		l.buf.flush(e.WorkerIdx)

	case event.SuiteStart:
		b := l.buf.get(e.WorkerIdx)
		fmt.Fprintf(b, "[%s] starting (%d cases)\n", e.SuiteName, e.NBTotalCases)
		l.buf.flush(e.WorkerIdx)

	case event.SuiteFinish:
		b := l.buf.get(e.WorkerIdx)
		fmt.Fprintf(b, "[%s] finished: %d/%d passed", e.SuiteName, e.NBSuccessCases, e.NBTotalCases)
		if l.stats && e.Timer != nil {
			fmt.Fprintf(b, " (real=%s)", e.Timer.ElapsedReal())
		}
		fmt.Fprintln(b)
		l.buf.flush(e.WorkerIdx)

	case event.CaseStart:
		// No-op, held for the matching CaseFinish line.

	case event.CaseFinish:
		b := l.buf.get(e.WorkerIdx)
		status := "PASS"
		if !e.Success {
			status = "FAIL"
		}
		fmt.Fprintf(b, "  [%s::%s] %s", e.SuiteName, e.CaseName, status)
		if l.stats && e.Timer != nil {
			fmt.Fprintf(b, " (real=%s)", e.Timer.ElapsedReal())
		}
		fmt.Fprintln(b)
		l.buf.flush(e.WorkerIdx)
	}
}

func (l *LogEmitter) OnTrace(workerIdx uint32, info event.SrcInfo, message string) {
	if !l.verbose {
		return
	}
	b := l.buf.get(workerIdx)
	fmt.Fprintf(b, "    %s: %s\n", i18n.String(i18n.TraceHeader, info), message)
}

func (l *LogEmitter) OnUnaryAssertFailure(workerIdx uint32, info event.SrcInfo, kind event.AssertKind, varName string) {
	b := l.buf.get(workerIdx)
	fmt.Fprintf(b, "    %s: %s %s\n", i18n.String(i18n.AssertHeader, info), varName, unaryAssertText(kind))
}

func (l *LogEmitter) OnBinaryAssertFailure(workerIdx uint32, info event.SrcInfo, kind event.AssertKind, aName, bName string) {
	b := l.buf.get(workerIdx)
	fmt.Fprintf(b, "    %s: %s %s %s\n", i18n.String(i18n.AssertHeader, info), aName, binaryAssertText(kind), bName)
}

func (l *LogEmitter) OnRuntimeError(workerIdx uint32, kind event.FaultKind, detail string) {
	b := l.buf.get(workerIdx)
	if kind == event.FaultTypedException {
		fmt.Fprintf(b, "    %s: panic: %s\n", i18n.String(i18n.RuntimeErrorHeader), detail)
	} else {
		fmt.Fprintf(b, "    %s: %s\n", i18n.String(i18n.RuntimeErrorHeader), kind)
	}
}
