package reporter

import (
	"fmt"
	"io"

	"github.com/faultsafe/gosuite/internal/event"
)

// TAPEmitter writes the Test Anything Protocol format, grounded on
// original_source/src/output/TAPWriter.cpp.
type TAPEmitter struct {
	buf     *workerBuffers
	verbose bool
	stats   bool
}

// NewTAPEmitter returns a TAP emitter writing to out. verbose enables
// diagnostic lines for traces, assertion failures and runtime faults.
// stats enables the per-case/total timing suffixes.
func NewTAPEmitter(out io.Writer, verbose, stats bool) *TAPEmitter {
	return &TAPEmitter{buf: newWorkerBuffers(out), verbose: verbose, stats: stats}
}

func (t *TAPEmitter) OnEvent(e event.Event) {
	switch e.Kind {
	case event.RunnerStart:
		b := t.buf.get(0)
		fmt.Fprintf(b, "1..%d\n", e.NBTotalCases)
		if t.verbose {
			fmt.Fprintf(b, "# running %d suites\n", e.NBTotalSuites)
			fmt.Fprintf(b, "# using %d worker threads\n", e.NBMaxWorkers)
		}
		t.buf.flush(0)

	case event.RunnerFinish:
		if t.stats && e.Timer != nil {
			b := t.buf.get(0)
			fmt.Fprintf(b, "# total execution time: real=%s process=%s thread=%s\n",
				e.Timer.ElapsedReal(), e.Timer.ElapsedProcess(), e.Timer.ElapsedThread())
			t.buf.flush(0)
		}

	case event.SuiteError:
		b := t.buf.get(e.WorkerIdx)
		for i := 0; i < e.NBTotalCases; i++ {
			fmt.Fprintf(b, "not ok - suite %q failed to construct\n", e.SuiteName)
		}
		t.buf.flush(e.WorkerIdx)

	case event.SuiteStart:
		// Nothing to emit.

	case event.SuiteFinish:
		if t.verbose {
			// Flush the worker buffer so runtime errors raised during
			// destruction are printed even with no further case events.
			t.buf.flush(e.WorkerIdx)
		}

	case event.CaseStart:
		// No-op: the worker's buffer is created on first use.

	case event.CaseFinish:
		b := t.buf.get(e.WorkerIdx)
		status := "ok"
		if !e.Success {
			status = "not ok"
		}
		if t.stats && e.Timer != nil {
			fmt.Fprintf(b, "%s - [%s::%s] - real=%s process=%s thread=%s\n",
				status, e.SuiteName, e.CaseName,
				e.Timer.ElapsedReal(), e.Timer.ElapsedProcess(), e.Timer.ElapsedThread())
		} else {
			fmt.Fprintf(b, "%s - [%s::%s]\n", status, e.SuiteName, e.CaseName)
		}
		t.buf.flush(e.WorkerIdx)
	}
}

func (t *TAPEmitter) OnTrace(workerIdx uint32, info event.SrcInfo, message string) {
	if !t.verbose {
		return
	}
	b := t.buf.get(workerIdx)
	fmt.Fprintf(b, "# trace %s: %s\n", info, message)
}

func (t *TAPEmitter) OnUnaryAssertFailure(workerIdx uint32, info event.SrcInfo, kind event.AssertKind, varName string) {
	if !t.verbose {
		return
	}
	b := t.buf.get(workerIdx)
	fmt.Fprintf(b, "# assert %s: %s %s\n", info, varName, unaryAssertText(kind))
}

func (t *TAPEmitter) OnBinaryAssertFailure(workerIdx uint32, info event.SrcInfo, kind event.AssertKind, aName, bName string) {
	if !t.verbose {
		return
	}
	b := t.buf.get(workerIdx)
	fmt.Fprintf(b, "# assert %s: %s %s %s\n", info, aName, binaryAssertText(kind), bName)
}

func (t *TAPEmitter) OnRuntimeError(workerIdx uint32, kind event.FaultKind, detail string) {
	if !t.verbose {
		return
	}
	b := t.buf.get(workerIdx)
	if kind == event.FaultTypedException {
		fmt.Fprintf(b, "# runtime error: panic: %s\n", detail)
	} else {
		fmt.Fprintf(b, "# runtime error: %s\n", kind)
	}
}
