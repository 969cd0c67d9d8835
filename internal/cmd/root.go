package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
)

// rootCmd is also the run command: gosuite is invoked directly against
// whatever suites have registered themselves via init(), the same way
// the original binary's test executable ran its own compiled-in suites.
var rootCmd = &cobra.Command{
	Use:   "gosuite [suite-name ...]",
	Short: "Runs registered unit test suites with fault-isolated parallel execution",
	Long: `gosuite discovers test suites registered via init() and runs them across a
worker pool, isolating each case so that a runtime fault in one test can't
take down the rest of the run.

Positional arguments filter which suites run, by name, case-insensitively.
With no arguments every registered suite runs.`,
	Version:      "0.1.0",
	RunE:         runSuites,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./gosuite.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print traces (and, for tap, assertion and fault detail)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("gosuite")
	}

	viper.SetEnvPrefix("GOSUITE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
		}
	}
}

// initLogger sets up the global operator-facing logger. This is separate
// from the event.Sink stream: slog reports on the CLI's own operation
// (config load, flag problems), never on test outcomes themselves.
func initLogger() {
	level := slog.LevelInfo
	if verbose || viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
