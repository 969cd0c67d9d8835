// Package suite provides the base type test suites embed and the generic
// assertion helpers they call, the Go analogue of the CRTP SpecTestSuite<C>
// base and TestSuite assertion template methods.
package suite

import (
	"fmt"

	"github.com/faultsafe/gosuite/internal/event"
)

// Fixture is implemented by a suite that needs per-case setup/teardown
// beyond construction/destruction. Base supplies no-op defaults so a
// suite only overrides what it needs.
type Fixture interface {
	SetupFixture() bool
	TeardownFixture()
}

// Base is embedded by every test suite type. It tracks the sink and
// worker index a case runs under and the pass/fail state assertions
// report into, and supplies default (no-op) Fixture behavior.
type Base struct {
	sink      event.Sink
	workerIdx uint32
	suiteName string
	failed    bool
}

// SetupFixture is the default no-op; override by defining the method on
// the embedding type.
func (b *Base) SetupFixture() bool { return true }

// TeardownFixture is the default no-op.
func (b *Base) TeardownFixture() {}

// Bind attaches a suite instance to the sink and worker it is about to
// run under. Called by internal/runner once per suite, right after the
// instance is constructed.
func (b *Base) Bind(sink event.Sink, workerIdx uint32, suiteName string) {
	b.sink = sink
	b.workerIdx = workerIdx
	b.suiteName = suiteName
}

// Unbind clears the sink so that Trace/assertion calls made from a
// destructor after the suite's last case has finished never reach the
// wire. Called by internal/runner immediately before suite destruction.
func (b *Base) Unbind() {
	b.sink = nil
}

// BeginCase clears the accumulated failure state ahead of a new case.
func (b *Base) BeginCase() {
	b.failed = false
}

// Failed reports whether any assertion recorded a failure since the last
// BeginCase.
func (b *Base) Failed() bool {
	return b.failed
}

// Trace emits a diagnostic message attributed to the caller's source
// location, the Go analogue of the original's TRACE() macro.
func (b *Base) Trace(format string, args ...any) {
	if b.sink == nil {
		return
	}
	b.sink.OnTrace(b.workerIdx, event.CaptureSrcInfo(1), fmt.Sprintf(format, args...))
}

func (b *Base) reportUnary(kind event.AssertKind, varName string, ok bool) bool {
	if !ok {
		b.failed = true
		if b.sink != nil {
			b.sink.OnUnaryAssertFailure(b.workerIdx, event.CaptureSrcInfo(2), kind, varName)
		}
	}
	return ok
}

func (b *Base) reportBinary(kind event.AssertKind, aName, bName string, ok bool) bool {
	if !ok {
		b.failed = true
		if b.sink != nil {
			b.sink.OnBinaryAssertFailure(b.workerIdx, event.CaptureSrcInfo(2), kind, aName, bName)
		}
	}
	return ok
}
