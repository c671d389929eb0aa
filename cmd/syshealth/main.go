package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rawwerks/syshealth/internal/config"
	"github.com/rawwerks/syshealth/internal/sampler"
	"github.com/rawwerks/syshealth/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		noColor  bool
		verbose  bool
		interval time.Duration
	)

	root := &cobra.Command{
		Use:   "syshealth",
		Short: "One-shot host health summary",
		Long: "syshealth samples CPU, memory, root-disk usage, uptime and load\n" +
			"averages once, classifies each against warning/critical thresholds\n" +
			"and prints an aligned summary. A metric whose sources cannot be\n" +
			"read shows N/A; it never fails the run.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			rep := sampler.New(logger).Sample(cmd.Context())
			out := ui.RenderReport(rep, config.DefaultThresholds(), useColor(noColor))
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable severity coloring")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	explain := &cobra.Command{
		Use:   "explain",
		Short: "Describe each metric and its thresholds",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), ui.ExplainText())
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Re-sample and redraw the summary until quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			opts := config.DefaultOptions()
			opts.Color = useColor(noColor)
			opts.Verbose = verbose
			if interval > 0 {
				opts.Interval = interval
			}
			return ui.RunWatch(logger, config.DefaultThresholds(), opts)
		},
	}
	watch.Flags().DurationVarP(&interval, "interval", "i", 2*time.Second, "refresh interval")

	root.AddCommand(explain, watch)
	return root
}

// buildLogger writes structured logs to stderr only, keeping stdout
// clean for the report itself.
func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// useColor decorates only when stdout is an interactive terminal and
// the user has not opted out.
func useColor(noColor bool) bool {
	if noColor {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
