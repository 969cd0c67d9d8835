// Package examplesuite registers a couple of demo suites exercising the
// assertion helpers end to end, the Go analogue of
// original_source/test/DataCompare.cpp and ThreadA.cpp. Importing this
// package for its side effects (init) is enough to give gosuite something
// to run out of the box.
package examplesuite

import (
	"github.com/faultsafe/gosuite/internal/registry"
	"github.com/faultsafe/gosuite/internal/suite"
)

type dataCompare struct {
	suite.Base

	asciiA, asciiB, asciiC string
	bufferA, bufferB       []byte
	bufferC                []byte
}

func newDataCompare() *dataCompare {
	return &dataCompare{
		asciiA:  "az",
		asciiB:  "az",
		asciiC:  "ab",
		bufferA: []byte{0xff, 0xfe, 0xfd},
		bufferB: []byte{0xff, 0xfe, 0xfc},
		bufferC: []byte{0xff, 0xfe, 0xfd},
	}
}

func (s *dataCompare) TestStringsEqual() bool {
	ok := suite.StringEqual(&s.Base, s.asciiA, s.asciiB, "asciiA", "asciiB")
	ok = suite.True(&s.Base, !suite.AreStringEqual(s.asciiA, s.asciiC), "!AreStringEqual(asciiA, asciiC)") && ok
	return ok
}

func (s *dataCompare) TestStringsDifferent() bool {
	ok := suite.StringDifferent(&s.Base, s.asciiA, s.asciiC, "asciiA", "asciiC")
	ok = suite.True(&s.Base, !suite.AreStringDifferent(s.asciiA, s.asciiB), "!AreStringDifferent(asciiA, asciiB)") && ok
	return ok
}

func (s *dataCompare) TestSameData() bool {
	return suite.SameData(&s.Base, s.bufferA, s.bufferC, "bufferA", "bufferC")
}

func (s *dataCompare) TestDifferentData() bool {
	return suite.DifferentData(&s.Base, s.bufferA, s.bufferB, "bufferA", "bufferB")
}

func init() {
	desc := registry.Suite("DataCompare", newDataCompare, nil)
	registry.Case(desc, "TestStringsEqual", (*dataCompare).TestStringsEqual)
	registry.Case(desc, "TestStringsDifferent", (*dataCompare).TestStringsDifferent)
	registry.Case(desc, "TestSameData", (*dataCompare).TestSameData)
	registry.Case(desc, "TestDifferentData", (*dataCompare).TestDifferentData)
}
