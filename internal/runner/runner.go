// Package runner implements the worker-pool scheduler that drives
// registered suites through the sandbox and emits the event stream.
// Grounded on original_source/src/TestRunner.cpp's hardware-thread
// detection, work distribution and worker loop, adapted from the
// goroutine-pool shape of the teacher repo's internal/executor package
// and built on github.com/sourcegraph/conc for panic-safe worker
// lifecycle management.
package runner

import (
	"runtime"
	"sync/atomic"

	"github.com/sourcegraph/conc"

	"github.com/faultsafe/gosuite/internal/clock"
	"github.com/faultsafe/gosuite/internal/event"
	"github.com/faultsafe/gosuite/internal/registry"
	"github.com/faultsafe/gosuite/internal/sandbox"
)

// Options configures a Runner.
type Options struct {
	// Workers is the number of worker goroutines. 0 runs every suite
	// inline on the calling goroutine (no pool at all); values above
	// runtime.NumCPU() are accepted as-is, matching the CLI's -n max
	// resolving to runtime.NumCPU() before Options ever sees it.
	Workers int
}

// Runner schedules registered suites across a worker pool, reporting
// progress to an event.Sink.
type Runner struct {
	sink    event.Sink
	workers int

	suites  []*registry.SuiteDescriptor
	nextIdx atomic.Uint64

	stopped atomic.Bool

	usedWorkers   atomic.Int32
	successSuites atomic.Int64
	failedSuites  atomic.Int64

	timer clock.CodeTimer
}

// New returns a Runner bound to sink.
func New(sink event.Sink, opts Options) *Runner {
	workers := opts.Workers
	if workers < 0 {
		workers = 0
	}
	return &Runner{sink: sink, workers: workers}
}

func totalCases(suites []*registry.SuiteDescriptor) int {
	n := 0
	for _, s := range suites {
		n += len(s.Cases)
	}
	return n
}

// Start records suites, begins the run timer, installs fault interception
// and emits RunnerStart. It does not run any suite: the worker pool (or
// the inline run) is launched by WaitTermination. It returns false
// without emitting any event if suites is empty, the
// infrastructure-failure tier from the error-handling design.
func (r *Runner) Start(suites []*registry.SuiteDescriptor) bool {
	if len(suites) == 0 {
		return false
	}
	r.suites = suites
	r.timer.Start()

	sandbox.InitFaultInterception()

	r.sink.OnEvent(event.Event{
		Kind:          event.RunnerStart,
		NBMaxWorkers:  r.effectiveWorkers(),
		NBTotalSuites: len(suites),
		NBTotalCases:  totalCases(suites),
	})

	return true
}

// effectiveWorkers reports how many workers will run the suites: 1 for the
// inline run (no goroutine is spawned), otherwise the number of pool
// goroutines, never more than there are suites to run, matching the
// original's "if (nbThreads > m_nbTestSuites) nbThreads = m_nbTestSuites"
// clamp.
func (r *Runner) effectiveWorkers() int {
	if r.workers <= 0 {
		return 1
	}
	if r.workers > len(r.suites) {
		return len(r.suites)
	}
	return r.workers
}

// Stop requests cancellation: workers finish their current case, skip
// the rest of their current suite's remaining cases, and the pool winds
// down. Safe to call from a signal handler: it performs no allocation.
func (r *Runner) Stop() {
	r.stopped.Store(true)
}

// WaitTermination runs the worker pool to completion (or until Stop is
// called), emits RunnerFinish, and returns the number of suites that
// failed (construction fault, at least one failing/faulting case, or
// cases skipped because Stop was called mid-suite).
func (r *Runner) WaitTermination() int {
	defer sandbox.ShutdownFaultInterception()

	if r.workers == 0 {
		r.runInline()
	} else {
		r.runPooled()
	}

	r.timer.Stop()

	r.sink.OnEvent(event.Event{
		Kind:            event.RunnerFinish,
		NBUsedWorkers:   int(r.usedWorkers.Load()),
		NBTotalSuites:   len(r.suites),
		NBSuccessSuites: int(r.successSuites.Load()),
		NBFailedSuites:  int(r.failedSuites.Load()),
		Timer:           &r.timer,
	})

	return int(r.failedSuites.Load())
}

func (r *Runner) runInline() {
	r.usedWorkers.Store(1)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	r.worker(0)
}

func (r *Runner) runPooled() {
	nbWorkers := r.effectiveWorkers()
	wg := conc.NewWaitGroup()
	for i := 0; i < nbWorkers; i++ {
		idx := uint32(i)
		wg.Go(func() {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			r.worker(idx)
		})
	}
	wg.Wait()
	r.usedWorkers.Store(int32(nbWorkers))
}

// worker pulls suites by atomically incrementing a shared cursor (the
// work-stealing-style distribution from the original's startTestSuites),
// running each to completion unless Stop() has been called.
func (r *Runner) worker(workerIdx uint32) {
	sb := sandbox.New(r.sink, workerIdx)

	for {
		if r.stopped.Load() {
			return
		}
		i := r.nextIdx.Add(1) - 1
		if i >= uint64(len(r.suites)) {
			return
		}
		r.runSuite(sb, workerIdx, r.suites[i])
	}
}

func (r *Runner) runSuite(sb *sandbox.Sandbox, workerIdx uint32, desc *registry.SuiteDescriptor) {
	instance, ok := sb.CreateSuite(desc.New)
	if !ok {
		r.failedSuites.Add(1)
		r.sink.OnEvent(event.Event{
			Kind:         event.SuiteError,
			WorkerIdx:    workerIdx,
			SuiteName:    desc.Name,
			NBTotalCases: len(desc.Cases),
		})
		return
	}

	if binder, ok := instance.(interface {
		Bind(sink event.Sink, workerIdx uint32, suiteName string)
	}); ok {
		binder.Bind(r.sink, workerIdx, desc.Name)
	}

	r.sink.OnEvent(event.Event{
		Kind:         event.SuiteStart,
		WorkerIdx:    workerIdx,
		SuiteName:    desc.Name,
		NBTotalCases: len(desc.Cases),
	})

	successCases, failedCases := 0, 0
	interrupted := false

	for _, c := range desc.Cases {
		if r.stopped.Load() {
			interrupted = true
			break
		}

		if beginner, ok := instance.(interface{ BeginCase() }); ok {
			beginner.BeginCase()
		}

		r.sink.OnEvent(event.Event{Kind: event.CaseStart, WorkerIdx: workerIdx, SuiteName: desc.Name, CaseName: c.Name})

		var caseTimer clock.CodeTimer
		caseTimer.Start()
		success := sb.RunCase(instance, c.Name, c.Run)
		if failer, ok := instance.(interface{ Failed() bool }); ok && failer.Failed() {
			success = false
		}
		caseTimer.Stop()

		if success {
			successCases++
		} else {
			failedCases++
		}

		r.sink.OnEvent(event.Event{
			Kind: event.CaseFinish, WorkerIdx: workerIdx, SuiteName: desc.Name, CaseName: c.Name,
			Success: success, Timer: &caseTimer,
		})
	}

	if unbinder, ok := instance.(interface{ Unbind() }); ok {
		unbinder.Unbind()
	}

	if desc.Destroy != nil {
		sb.DestroySuite(instance, desc.Destroy)
	}

	if failedCases == 0 && !interrupted {
		r.successSuites.Add(1)
	} else {
		r.failedSuites.Add(1)
	}

	r.sink.OnEvent(event.Event{
		Kind: event.SuiteFinish, WorkerIdx: workerIdx, SuiteName: desc.Name,
		NBTotalCases: len(desc.Cases), NBSuccessCases: successCases, NBFailedCases: failedCases,
	})
}
