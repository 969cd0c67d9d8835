// Package registry implements auto-registration and discovery of test
// suites and cases. Registration happens from package init() functions,
// the Go analogue of the static-construction-order registrars the original
// design is built on; the registry itself is a process-wide lazy singleton
// built with sync.Once, per the "OnceCell/sync.Once/LazyLock behind a
// getter" guidance this module follows.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// CaseDescriptor names one registered test case and the function that runs
// it against a suite instance.
type CaseDescriptor struct {
	Name string
	Run  func(instance any) bool
}

// SuiteDescriptor names one registered suite: its constructor, optional
// destructor hook, and its ordered cases.
type SuiteDescriptor struct {
	Name    string
	New     func() any
	Destroy func(instance any)
	Cases   []CaseDescriptor
}

type registry struct {
	mu     sync.Mutex
	suites []*SuiteDescriptor
	byName map[string]*SuiteDescriptor
}

var (
	instance     *registry
	instanceOnce sync.Once
)

func get() *registry {
	instanceOnce.Do(func() {
		instance = &registry{byName: make(map[string]*SuiteDescriptor)}
	})
	return instance
}

// Suite registers a suite type S under name, with newFn constructing a
// fresh *S and destroyFn (optional, may be nil) releasing it. A duplicate
// name is a programming error in the registering code and panics
// immediately rather than silently shadowing the earlier registration,
// since registration always runs before any suite executes.
func Suite[S any](name string, newFn func() *S, destroyFn func(*S)) *SuiteDescriptor {
	r := get()
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		panic(fmt.Sprintf("registry: suite %q already registered", name))
	}

	desc := &SuiteDescriptor{
		Name: name,
		New: func() any {
			return newFn()
		},
	}
	if destroyFn != nil {
		desc.Destroy = func(instance any) {
			destroyFn(instance.(*S))
		}
	}

	r.suites = append(r.suites, desc)
	r.byName[name] = desc
	return desc
}

// Case registers a case named name on the suite built by desc, running
// method against a *S instance. method is normally a Go method-value
// expression, e.g. (*MySuite).TestSomething — the direct analogue of a
// C++ pointer-to-member-function.
func Case[S any](desc *SuiteDescriptor, name string, method func(*S) bool) {
	get().mu.Lock()
	defer get().mu.Unlock()

	desc.Cases = append(desc.Cases, CaseDescriptor{
		Name: name,
		Run: func(instance any) bool {
			return method(instance.(*S))
		},
	})
}

// All returns every registered suite, in registration order, optionally
// filtered to suites whose name matches one of the given case-insensitive
// filters. An empty filter list returns every suite; with filters, the
// matched suites come back in the order the filters are given. If any filter name
// matches no registered suite, All returns the names that did not match
// alongside whatever did, so the caller can report an "unknown suite"
// error instead of silently running a subset.
func All(filters ...string) ([]*SuiteDescriptor, []string) {
	r := get()
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(filters) == 0 {
		out := make([]*SuiteDescriptor, len(r.suites))
		copy(out, r.suites)
		return out, nil
	}

	byLower := make(map[string]*SuiteDescriptor, len(r.suites))
	for _, s := range r.suites {
		byLower[lower(s.Name)] = s
	}

	var out []*SuiteDescriptor
	var unknown []string
	for _, f := range filters {
		if s, ok := byLower[lower(f)]; ok {
			out = append(out, s)
		} else {
			unknown = append(unknown, f)
		}
	}
	return out, unknown
}

// Names returns the registered suite names, sorted, for listing.
func Names() []string {
	r := get()
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.suites))
	for _, s := range r.suites {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// reset clears the registry; only used by tests in this package to get a
// clean slate between cases.
func reset() {
	r := get()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suites = nil
	r.byName = make(map[string]*SuiteDescriptor)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
