// Package sandbox provides per-worker fault isolation: a guarded block
// that converts a suite constructor/case/destructor's Go panics into
// structured fault events instead of letting them crash the worker.
//
// This replaces the original's sigaction + alternate-stack + sigsetjmp
// protocol (original_source/src/RTErrorProtector.cpp), which Go has no
// direct equivalent for: goroutine stacks are runtime-managed and Go
// exposes no setjmp-style non-local transfer to user code. recover()
// inside a deferred function is the idiomatic substitute, extended by
// debug.SetPanicOnFault so that certain invalid-memory-access faults that
// would otherwise be a fatal, unrecoverable signal become a recoverable
// panic instead. See faults.go for exactly which FaultKind values this
// makes reachable.
package sandbox

import (
	"runtime/debug"
	"sync"

	"github.com/faultsafe/gosuite/internal/event"
	"github.com/faultsafe/gosuite/internal/suite"
)

var (
	interceptionMu       sync.Mutex
	interceptionRefCount int
	priorPanicOnFault    bool
)

// InitFaultInterception installs process-wide panic-on-fault behavior.
// Safe to call more than once; interception is only lifted once every
// caller has called ShutdownFaultInterception, mirroring the reference-
// counted initProtectors()/shutProtectors() pair it is grounded on.
func InitFaultInterception() {
	interceptionMu.Lock()
	defer interceptionMu.Unlock()
	if interceptionRefCount == 0 {
		priorPanicOnFault = debug.SetPanicOnFault(true)
	}
	interceptionRefCount++
}

// ShutdownFaultInterception releases one reference installed by
// InitFaultInterception, restoring the prior setting once the count
// reaches zero.
func ShutdownFaultInterception() {
	interceptionMu.Lock()
	defer interceptionMu.Unlock()
	if interceptionRefCount == 0 {
		return
	}
	interceptionRefCount--
	if interceptionRefCount == 0 {
		debug.SetPanicOnFault(priorPanicOnFault)
	}
}

// Sandbox runs suite construction, case execution and suite destruction
// inside guarded blocks for a single worker, reporting faults to sink.
type Sandbox struct {
	sink      event.Sink
	workerIdx uint32
}

// New binds a Sandbox to the sink events flow to and the worker index
// attributed to them.
func New(sink event.Sink, workerIdx uint32) *Sandbox {
	return &Sandbox{sink: sink, workerIdx: workerIdx}
}

// CreateSuite runs newFn inside a guarded block. On success it returns
// the built instance and true. On fault it reports a runtime error to the
// sink and returns (nil, false); callers must not attempt to run cases
// against a suite whose constructor faulted.
func (s *Sandbox) CreateSuite(newFn func() any) (instance any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			kind, detail := classify(r)
			s.sink.OnRuntimeError(s.workerIdx, kind, detail)
			instance, ok = nil, false
		}
	}()
	return newFn(), true
}

// RunCase runs one case's method against instance inside a guarded block,
// wrapped by the instance's SetupFixture/TeardownFixture when it
// implements suite.Fixture. It does not bind the suite to a sink; the
// runner does that once per suite. Returns false when setup fails, when
// the case itself reports failure, or when it faults.
func (s *Sandbox) RunCase(instance any, caseName string, run func(instance any) bool) (success bool) {
	defer func() {
		if r := recover(); r != nil {
			kind, detail := classify(r)
			s.sink.OnRuntimeError(s.workerIdx, kind, detail)
			success = false
		}
	}()

	if fixture, ok := instance.(suite.Fixture); ok {
		if !fixture.SetupFixture() {
			return false
		}
		defer fixture.TeardownFixture()
	}

	return run(instance)
}

// DestroySuite runs destroyFn (if non-nil) inside a guarded block. Faults
// here are reported as a runtime error only; they do not change the
// outcome of cases that already completed. The runner calls it after the
// suite's last CaseFinish and before its SuiteFinish.
func (s *Sandbox) DestroySuite(instance any, destroyFn func(any)) {
	if destroyFn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			kind, detail := classify(r)
			s.sink.OnRuntimeError(s.workerIdx, kind, detail)
		}
	}()
	destroyFn(instance)
}
