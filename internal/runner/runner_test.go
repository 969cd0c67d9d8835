package runner

import (
	"sync"
	"testing"

	"github.com/faultsafe/gosuite/internal/event"
	"github.com/faultsafe/gosuite/internal/registry"
	"github.com/faultsafe/gosuite/internal/suite"
)

type mathSuite struct {
	suite.Base
}

func (s *mathSuite) TestPass() bool {
	return suite.Equal(&s.Base, 2+2, 4, "2+2", "4")
}

func (s *mathSuite) TestFail() bool {
	return suite.Equal(&s.Base, 2+2, 5, "2+2", "5")
}

func (s *mathSuite) TestFault() bool {
	empty := []int{}
	return empty[0] == 0
}

type brokenSuite struct {
	suite.Base
}

func newBrokenSuite() *brokenSuite {
	panic("construction always fails")
}

type recordingSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordingSink) OnEvent(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}
func (r *recordingSink) OnTrace(uint32, event.SrcInfo, string)                             {}
func (r *recordingSink) OnUnaryAssertFailure(uint32, event.SrcInfo, event.AssertKind, string) {}
func (r *recordingSink) OnBinaryAssertFailure(uint32, event.SrcInfo, event.AssertKind, string, string) {
}
func (r *recordingSink) OnRuntimeError(uint32, event.FaultKind, string) {}

func (r *recordingSink) kindCount(k event.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func TestRunnerInlineRunsAllCasesAndReportsOutcome(t *testing.T) {
	sink := &recordingSink{}
	desc := &registry.SuiteDescriptor{
		Name: "Math",
		New:  func() any { return &mathSuite{} },
	}
	desc.Cases = []registry.CaseDescriptor{
		{Name: "TestPass", Run: func(i any) bool { return i.(*mathSuite).TestPass() }},
		{Name: "TestFail", Run: func(i any) bool { return i.(*mathSuite).TestFail() }},
	}

	r := New(sink, Options{Workers: 0})
	if !r.Start([]*registry.SuiteDescriptor{desc}) {
		t.Fatal("Start() = false, want true")
	}
	failed := r.WaitTermination()

	if failed != 1 {
		t.Errorf("WaitTermination() = %d failed suites, want 1", failed)
	}
	if sink.kindCount(event.RunnerStart) != 1 {
		t.Errorf("RunnerStart emitted %d times, want 1", sink.kindCount(event.RunnerStart))
	}
	if sink.kindCount(event.RunnerFinish) != 1 {
		t.Errorf("RunnerFinish emitted %d times, want 1", sink.kindCount(event.RunnerFinish))
	}
	if sink.kindCount(event.CaseFinish) != 2 {
		t.Errorf("CaseFinish emitted %d times, want 2", sink.kindCount(event.CaseFinish))
	}
}

func TestRunnerSandboxesFaultingCase(t *testing.T) {
	sink := &recordingSink{}
	desc := &registry.SuiteDescriptor{
		Name: "Math",
		New:  func() any { return &mathSuite{} },
	}
	desc.Cases = []registry.CaseDescriptor{
		{Name: "TestFault", Run: func(i any) bool { return i.(*mathSuite).TestFault() }},
	}

	r := New(sink, Options{Workers: 0})
	r.Start([]*registry.SuiteDescriptor{desc})
	failed := r.WaitTermination()

	if failed != 1 {
		t.Errorf("WaitTermination() = %d, want 1", failed)
	}
}

func TestRunnerSuiteErrorSkipsPerCaseEvents(t *testing.T) {
	sink := &recordingSink{}
	desc := &registry.SuiteDescriptor{
		Name: "Broken",
		New:  func() any { return newBrokenSuite() },
	}
	desc.Cases = []registry.CaseDescriptor{
		{Name: "Whatever", Run: func(any) bool { return true }},
	}

	r := New(sink, Options{Workers: 0})
	r.Start([]*registry.SuiteDescriptor{desc})
	failed := r.WaitTermination()

	if failed != 1 {
		t.Errorf("WaitTermination() = %d, want 1", failed)
	}
	if sink.kindCount(event.SuiteError) != 1 {
		t.Errorf("SuiteError emitted %d times, want 1", sink.kindCount(event.SuiteError))
	}
	if sink.kindCount(event.CaseStart) != 0 {
		t.Errorf("CaseStart emitted %d times after a suite construction fault, want 0", sink.kindCount(event.CaseStart))
	}
}

func TestRunnerPooledAcrossMultipleSuites(t *testing.T) {
	sink := &recordingSink{}
	var descs []*registry.SuiteDescriptor
	for i := 0; i < 8; i++ {
		descs = append(descs, &registry.SuiteDescriptor{
			Name: "Math",
			New:  func() any { return &mathSuite{} },
			Cases: []registry.CaseDescriptor{
				{Name: "TestPass", Run: func(i any) bool { return i.(*mathSuite).TestPass() }},
			},
		})
	}

	r := New(sink, Options{Workers: 4})
	r.Start(descs)
	failed := r.WaitTermination()

	if failed != 0 {
		t.Errorf("WaitTermination() = %d, want 0", failed)
	}
	if sink.kindCount(event.SuiteFinish) != 8 {
		t.Errorf("SuiteFinish emitted %d times, want 8", sink.kindCount(event.SuiteFinish))
	}
}

func TestRunnerStopSkipsRemainingSuites(t *testing.T) {
	sink := &recordingSink{}
	var descs []*registry.SuiteDescriptor
	for i := 0; i < 5; i++ {
		descs = append(descs, &registry.SuiteDescriptor{
			Name: "Math",
			New:  func() any { return &mathSuite{} },
			Cases: []registry.CaseDescriptor{
				{Name: "TestPass", Run: func(i any) bool { return i.(*mathSuite).TestPass() }},
			},
		})
	}

	r := New(sink, Options{Workers: 0})
	r.Start(descs)
	r.Stop()
	r.WaitTermination()

	if sink.kindCount(event.SuiteFinish) == 5 {
		t.Errorf("all 5 suites ran despite Stop() before WaitTermination()")
	}
}

func TestRunnerMarksInterruptedSuiteAsFailed(t *testing.T) {
	sink := &recordingSink{}
	desc := &registry.SuiteDescriptor{
		Name: "Math",
		New:  func() any { return &mathSuite{} },
	}

	r := New(sink, Options{Workers: 0})

	desc.Cases = []registry.CaseDescriptor{
		{Name: "TestPass", Run: func(i any) bool {
			r.Stop()
			return i.(*mathSuite).TestPass()
		}},
		{Name: "NeverRuns", Run: func(i any) bool { return i.(*mathSuite).TestPass() }},
	}

	if !r.Start([]*registry.SuiteDescriptor{desc}) {
		t.Fatal("Start() = false, want true")
	}
	failed := r.WaitTermination()

	if failed != 1 {
		t.Errorf("WaitTermination() = %d, want 1 (suite interrupted by Stop() mid-run, despite no failing case)", failed)
	}
	if sink.kindCount(event.CaseFinish) != 1 {
		t.Errorf("CaseFinish emitted %d times, want 1 (second case skipped after Stop())", sink.kindCount(event.CaseFinish))
	}
}

func TestRunnerClampsWorkersToSuiteCount(t *testing.T) {
	sink := &recordingSink{}
	var descs []*registry.SuiteDescriptor
	for i := 0; i < 2; i++ {
		descs = append(descs, &registry.SuiteDescriptor{
			Name: "Math",
			New:  func() any { return &mathSuite{} },
			Cases: []registry.CaseDescriptor{
				{Name: "TestPass", Run: func(i any) bool { return i.(*mathSuite).TestPass() }},
			},
		})
	}

	r := New(sink, Options{Workers: 10})
	if !r.Start(descs) {
		t.Fatal("Start() = false, want true")
	}
	r.WaitTermination()

	sink.mu.Lock()
	var startMax, finishUsed int
	for _, e := range sink.events {
		switch e.Kind {
		case event.RunnerStart:
			startMax = e.NBMaxWorkers
		case event.RunnerFinish:
			finishUsed = e.NBUsedWorkers
		}
	}
	sink.mu.Unlock()

	if startMax != 2 {
		t.Errorf("RunnerStart.NBMaxWorkers = %d, want 2 (clamped to suite count)", startMax)
	}
	if finishUsed != 2 {
		t.Errorf("RunnerFinish.NBUsedWorkers = %d, want 2 (clamped to suite count)", finishUsed)
	}
}

func TestStartOnEmptySuiteListFails(t *testing.T) {
	sink := &recordingSink{}
	r := New(sink, Options{Workers: 0})
	if r.Start(nil) {
		t.Errorf("Start(nil) = true, want false")
	}
	if sink.kindCount(event.RunnerStart) != 0 {
		t.Errorf("RunnerStart emitted on empty suite list")
	}
}
