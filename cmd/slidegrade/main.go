// Command slidegrade scores PowerPoint submissions against a sample.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/slidegrade"
	"github.com/tsawler/slidegrade/config"
)

// app holds state shared by all commands of one invocation.
type app struct {
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// exitCode asks main to exit with a specific status without printing an
// error.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "slidegrade",
		Short: "Score how closely a presentation reproduces a sample",
		Long: `slidegrade compares PowerPoint (.pptx) submissions with a sample deck.

Slides are paired by position and so are the geometric shapes on each
slide. Every pair earns points for a matching shape type, fill, outline
and position. Text, pictures and surplus slides or shapes are not scored.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "Configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		a.compareCmd(),
		a.batchCmd(),
		a.watchCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Logging, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if strings.EqualFold(lc.Format, "console") {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zc.Build()
}

// scoreFlags override the scoring section of the configuration.
type scoreFlags struct {
	angle   float64
	offset  float64
	legacy  bool
	workers int
}

func (f *scoreFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.angle, "angle-tolerance", 0, "Gradient angle tolerance in degrees (default from config)")
	cmd.Flags().Float64Var(&f.offset, "offset-tolerance", 0, "Position tolerance in points (default from config)")
	cmd.Flags().BoolVar(&f.legacy, "legacy-back-color", false, "Compare sample back colors with submission fore colors")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Slide pairs scored concurrently (default from config)")
}

// grader returns a Grader for sample configured from the file, then from
// any flags set on cmd.
func (a *app) grader(cmd *cobra.Command, sample string, f *scoreFlags) *slidegrade.Grader {
	g := slidegrade.Open(sample).Config(a.cfg).Logger(a.logger)
	if cmd.Flags().Changed("angle-tolerance") {
		g = g.AngleTolerance(f.angle)
	}
	if cmd.Flags().Changed("offset-tolerance") {
		g = g.OffsetTolerance(f.offset)
	}
	if f.legacy {
		g = g.LegacyBackColor()
	}
	if cmd.Flags().Changed("workers") {
		g = g.Workers(f.workers)
	}
	return g
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
