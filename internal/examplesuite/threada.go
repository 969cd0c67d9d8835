package examplesuite

import (
	"github.com/faultsafe/gosuite/internal/registry"
	"github.com/faultsafe/gosuite/internal/suite"
)

// threadA exercises the Fixture hooks and demonstrates a case the sandbox
// recovers from, the Go analogue of original_source/test/ThreadA.cpp's
// per-suite-field persistence and deliberate-fault demonstrations.
type threadA struct {
	suite.Base

	counter int
	values  []int
}

func newThreadA() *threadA {
	return &threadA{}
}

func (s *threadA) SetupFixture() bool {
	s.values = []int{10, 20, 30}
	return true
}

func (s *threadA) TeardownFixture() {
	s.values = nil
}

func (s *threadA) TestCounterPersists() bool {
	s.counter++
	return suite.True(&s.Base, s.counter >= 1, "counter >= 1")
}

func (s *threadA) TestFixtureValues() bool {
	return suite.Equal(&s.Base, len(s.values), 3, "len(values)", "3")
}

func (s *threadA) TestOutOfBoundsIsRecovered() bool {
	idx := len(s.values) + 5
	return suite.Equal(&s.Base, s.values[idx], 0, "values[idx]", "0")
}

func init() {
	desc := registry.Suite("ThreadA", newThreadA, nil)
	registry.Case(desc, "TestCounterPersists", (*threadA).TestCounterPersists)
	registry.Case(desc, "TestFixtureValues", (*threadA).TestFixtureValues)
	registry.Case(desc, "TestOutOfBoundsIsRecovered", (*threadA).TestOutOfBoundsIsRecovered)
}
