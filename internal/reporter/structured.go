package reporter

import (
	"encoding/json"
	"io"

	"github.com/faultsafe/gosuite/internal/event"
)

// StructuredEmitter writes one JSON object per event/trace/assert/fault
// callback, newline-delimited, grounded on the teacher repo's use of
// encoding/json for machine-readable output. In verbose mode each object
// is pretty-printed and traces are included.
type StructuredEmitter struct {
	buf     *workerBuffers
	verbose bool
}

// NewStructuredEmitter returns a structured emitter writing to out.
func NewStructuredEmitter(out io.Writer, verbose bool) *StructuredEmitter {
	return &StructuredEmitter{buf: newWorkerBuffers(out), verbose: verbose}
}

type structuredRecord struct {
	Record    string `json:"record"`
	Kind      string `json:"kind,omitempty"`
	WorkerIdx uint32 `json:"worker_idx"`
	Suite     string `json:"suite,omitempty"`
	Case      string `json:"case,omitempty"`

	NBMaxWorkers    int `json:"nb_max_workers,omitempty"`
	NBTotalSuites   int `json:"nb_total_suites,omitempty"`
	NBTotalCases    int `json:"nb_total_cases,omitempty"`
	NBSuccessSuites int `json:"nb_success_suites,omitempty"`
	NBFailedSuites  int `json:"nb_failed_suites,omitempty"`
	NBSuccessCases  int `json:"nb_success_cases,omitempty"`
	NBFailedCases   int `json:"nb_failed_cases,omitempty"`

	Success bool `json:"success,omitempty"`

	RealNS    int64 `json:"real_ns,omitempty"`
	ProcessNS int64 `json:"process_ns,omitempty"`
	ThreadNS  int64 `json:"thread_ns,omitempty"`

	Message  string `json:"message,omitempty"`
	VarName  string `json:"var_name,omitempty"`
	VarAName string `json:"var_a_name,omitempty"`
	VarBName string `json:"var_b_name,omitempty"`
	Fault    string `json:"fault,omitempty"`
	Detail   string `json:"detail,omitempty"`
	File     string `json:"file,omitempty"`
	Function string `json:"function,omitempty"`
	Line     int    `json:"line,omitempty"`
}

func (s *StructuredEmitter) write(workerIdx uint32, rec structuredRecord) {
	b := s.buf.get(workerIdx)
	enc := json.NewEncoder(b)
	if s.verbose {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(rec)
	s.buf.flush(workerIdx)
}

func (s *StructuredEmitter) OnEvent(e event.Event) {
	rec := structuredRecord{
		Record:          "event",
		Kind:            e.Kind.String(),
		WorkerIdx:       e.WorkerIdx,
		Suite:           e.SuiteName,
		Case:            e.CaseName,
		NBMaxWorkers:    e.NBMaxWorkers,
		NBTotalSuites:   e.NBTotalSuites,
		NBTotalCases:    e.NBTotalCases,
		NBSuccessSuites: e.NBSuccessSuites,
		NBFailedSuites:  e.NBFailedSuites,
		NBSuccessCases:  e.NBSuccessCases,
		NBFailedCases:   e.NBFailedCases,
		Success:         e.Success,
	}
	if e.Timer != nil {
		rec.RealNS = e.Timer.ElapsedReal().Nanoseconds()
		rec.ProcessNS = e.Timer.ElapsedProcess().Nanoseconds()
		rec.ThreadNS = e.Timer.ElapsedThread().Nanoseconds()
	}
	s.write(e.WorkerIdx, rec)
}

func (s *StructuredEmitter) OnTrace(workerIdx uint32, info event.SrcInfo, message string) {
	if !s.verbose {
		return
	}
	s.write(workerIdx, structuredRecord{
		Record: "trace", WorkerIdx: workerIdx, Message: message,
		File: info.File, Function: info.Function, Line: info.Line,
	})
}

func (s *StructuredEmitter) OnUnaryAssertFailure(workerIdx uint32, info event.SrcInfo, kind event.AssertKind, varName string) {
	s.write(workerIdx, structuredRecord{
		Record: "assert_failure", WorkerIdx: workerIdx, VarName: varName,
		File: info.File, Function: info.Function, Line: info.Line,
	})
}

func (s *StructuredEmitter) OnBinaryAssertFailure(workerIdx uint32, info event.SrcInfo, kind event.AssertKind, aName, bName string) {
	s.write(workerIdx, structuredRecord{
		Record: "assert_failure", WorkerIdx: workerIdx, VarAName: aName, VarBName: bName,
		File: info.File, Function: info.Function, Line: info.Line,
	})
}

func (s *StructuredEmitter) OnRuntimeError(workerIdx uint32, kind event.FaultKind, detail string) {
	s.write(workerIdx, structuredRecord{
		Record: "runtime_error", WorkerIdx: workerIdx, Fault: kind.String(), Detail: detail,
	})
}
