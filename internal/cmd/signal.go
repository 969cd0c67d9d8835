package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/faultsafe/gosuite/internal/runner"
)

// installSignalHandler calls r.Stop on SIGHUP/SIGINT/SIGQUIT/SIGTERM, the
// signal set named in the external-interfaces design. Registration lives
// at the CLI layer rather than inside Runner itself so a Runner embedded
// as a library never installs global signal handling on its caller's
// behalf.
func installSignalHandler(r *runner.Runner) (cancel func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			r.Stop()
		case <-done:
		}
	}()

	return func() {
		close(done)
		signal.Stop(ch)
	}
}
