// Command gosuite runs registered unit test suites with fault-isolated,
// parallel execution. Suites register themselves via init() in whatever
// packages are linked into the binary; see internal/registry.
package main

import (
	"fmt"
	"os"

	"github.com/faultsafe/gosuite/internal/cmd"
	_ "github.com/faultsafe/gosuite/internal/examplesuite"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
