package sandbox

import (
	"errors"
	"testing"

	"github.com/faultsafe/gosuite/internal/event"
)

type faultSink struct {
	kinds   []event.FaultKind
	details []string
}

func (s *faultSink) OnEvent(event.Event)                                                       {}
func (s *faultSink) OnTrace(uint32, event.SrcInfo, string)                                      {}
func (s *faultSink) OnUnaryAssertFailure(uint32, event.SrcInfo, event.AssertKind, string)        {}
func (s *faultSink) OnBinaryAssertFailure(uint32, event.SrcInfo, event.AssertKind, string, string) {}
func (s *faultSink) OnRuntimeError(workerIdx uint32, kind event.FaultKind, detail string) {
	s.kinds = append(s.kinds, kind)
	s.details = append(s.details, detail)
}

func TestCreateSuiteRecoversNilPointerFault(t *testing.T) {
	sink := &faultSink{}
	sb := New(sink, 0)

	instance, ok := sb.CreateSuite(func() any {
		var p *int
		return *p
	})

	if ok {
		t.Fatalf("CreateSuite() ok = true, want false")
	}
	if instance != nil {
		t.Errorf("CreateSuite() instance = %v, want nil", instance)
	}
	if len(sink.kinds) != 1 || sink.kinds[0] != event.FaultMemoryNotMapped {
		t.Errorf("kinds = %v, want [FaultMemoryNotMapped]", sink.kinds)
	}
}

func TestRunCaseRecoversIndexOutOfRange(t *testing.T) {
	sink := &faultSink{}
	sb := New(sink, 0)

	ok := sb.RunCase(struct{}{}, "Case", func(any) bool {
		s := []int{1, 2, 3}
		return s[10] == 0
	})

	if ok {
		t.Fatalf("RunCase() = true, want false")
	}
	if len(sink.kinds) != 1 || sink.kinds[0] != event.FaultIndexOutOfBounds {
		t.Errorf("kinds = %v, want [FaultIndexOutOfBounds]", sink.kinds)
	}
}

func TestRunCaseRecoversDivideByZero(t *testing.T) {
	sink := &faultSink{}
	sb := New(sink, 0)

	ok := sb.RunCase(struct{}{}, "Case", func(any) bool {
		a, b := 1, 0
		return a/b == 0
	})

	if ok {
		t.Fatalf("RunCase() = true, want false")
	}
	if len(sink.kinds) != 1 || sink.kinds[0] != event.FaultIntegerDivByZero {
		t.Errorf("kinds = %v, want [FaultIntegerDivByZero]", sink.kinds)
	}
}

func TestRunCaseRecoversTypedException(t *testing.T) {
	sink := &faultSink{}
	sb := New(sink, 0)

	ok := sb.RunCase(struct{}{}, "Case", func(any) bool {
		panic(errors.New("boom"))
	})

	if ok {
		t.Fatalf("RunCase() = true, want false")
	}
	if len(sink.kinds) != 1 || sink.kinds[0] != event.FaultTypedException {
		t.Errorf("kinds = %v, want [FaultTypedException]", sink.kinds)
	}
	if sink.details[0] != "boom" {
		t.Errorf("details = %v, want [boom]", sink.details)
	}
}

func TestRunCasePassesThroughNormalResult(t *testing.T) {
	sink := &faultSink{}
	sb := New(sink, 0)

	if !sb.RunCase(struct{}{}, "Case", func(any) bool { return true }) {
		t.Errorf("RunCase() = false, want true")
	}
	if len(sink.kinds) != 0 {
		t.Errorf("unexpected faults reported: %v", sink.kinds)
	}
}

func TestDestroySuiteRecoversFault(t *testing.T) {
	sink := &faultSink{}
	sb := New(sink, 0)

	sb.DestroySuite(struct{}{}, func(any) {
		panic("destroy boom")
	})

	if len(sink.kinds) != 1 || sink.kinds[0] != event.FaultTypedException {
		t.Errorf("kinds = %v, want [FaultTypedException]", sink.kinds)
	}
}

func TestInitShutdownFaultInterceptionIsRefCounted(t *testing.T) {
	InitFaultInterception()
	InitFaultInterception()
	ShutdownFaultInterception()
	ShutdownFaultInterception()
	// A third Shutdown without a matching Init must not panic or underflow.
	ShutdownFaultInterception()
}
