package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/faultsafe/gosuite/internal/event"
	"github.com/faultsafe/gosuite/internal/registry"
	"github.com/faultsafe/gosuite/internal/reporter"
	"github.com/faultsafe/gosuite/internal/runner"
)

func init() {
	rootCmd.Flags().BoolP("list", "l", false, "list registered suites and exit")
	rootCmd.Flags().BoolP("stats", "s", false, "include timing statistics in the output")
	rootCmd.Flags().StringP("nthreads", "n", "1", `number of worker threads ("max" uses all CPUs, "0" runs inline)`)
	rootCmd.Flags().StringP("out", "o", "-", `output file ("-" for stdout)`)
	rootCmd.Flags().StringP("type", "t", "log", "output format: log, js, or tap")
}

func runSuites(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	if list {
		for _, name := range registry.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	workers, err := resolveWorkers(cmd)
	if err != nil {
		return fmt.Errorf("invalid --nthreads: %w", err)
	}

	out, closeOut, err := resolveOutput(cmd)
	if err != nil {
		return fmt.Errorf("invalid --out: %w", err)
	}
	defer closeOut()

	stats, _ := cmd.Flags().GetBool("stats")
	format, _ := cmd.Flags().GetString("type")

	sink, err := buildSink(format, out, verbose, stats)
	if err != nil {
		return err
	}

	suites, unknown := registry.All(args...)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown suite(s): %s", strings.Join(unknown, ", "))
	}
	if len(suites) == 0 {
		return fmt.Errorf("no suites registered")
	}

	slog.Info("starting run", "suites", len(suites), "workers", workers, "format", format)

	r := runner.New(sink, runner.Options{Workers: workers})
	if !r.Start(suites) {
		return fmt.Errorf("failed to start run")
	}

	stopCh := installSignalHandler(r)
	defer stopCh()

	failed := r.WaitTermination()
	if failed > 0 {
		if failed > 255 {
			failed = 255
		}
		cmd.SilenceErrors = true
		os.Exit(failed)
	}
	return nil
}

func resolveWorkers(cmd *cobra.Command) (int, error) {
	raw, _ := cmd.Flags().GetString("nthreads")
	if raw == "" {
		raw = viper.GetString("nthreads")
	}
	switch raw {
	case "max":
		return runtime.NumCPU(), nil
	case "":
		return 1, nil
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, fmt.Errorf("must be >= 0, \"0\", or \"max\"")
		}
		return n, nil
	}
}

func resolveOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func buildSink(format string, out io.Writer, verbose, stats bool) (event.Sink, error) {
	switch format {
	case "log", "":
		return reporter.NewLogEmitter(out, verbose, stats), nil
	case "js":
		return reporter.NewStructuredEmitter(out, verbose), nil
	case "tap":
		return reporter.NewTAPEmitter(out, verbose, stats), nil
	default:
		return nil, fmt.Errorf("unknown --type %q: want log, js, or tap", format)
	}
}
