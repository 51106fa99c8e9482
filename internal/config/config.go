// Package config parses and validates the numtheory command-line configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/agbru/numtheory/internal/errors"
	"github.com/agbru/numtheory/internal/numtheory"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "NUMTHEORY_"

const (
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 5 * time.Minute
	// DefaultTest runs every primality test.
	DefaultTest = "all"
	// DefaultLogLevel is the zerolog level used when none is given.
	DefaultLogLevel = "info"
)

// AppConfig aggregates the application's configuration.
type AppConfig struct {
	// Test selects the primality tests to run: all, fermat or miller-rabin.
	Test string `validate:"required,oneof=all fermat miller-rabin"`
	// Iterations is the number of random witnesses per primality test.
	Iterations int `validate:"gte=1,lte=1000"`
	// Seed seeds the witness sampler; equal seeds give equal verdicts for any
	// worker count.
	Seed int64
	// Timeout bounds the whole run.
	Timeout time.Duration `validate:"gt=0"`
	// Workers caps concurrent classifications; 0 selects a value from the CPU count.
	Workers int `validate:"gte=0,lte=1024"`
	// LogLevel is the zerolog level name.
	LogLevel string `validate:"required,oneof=trace debug info warn error"`
	// Strict makes tester disagreement a failure instead of a report.
	Strict bool
	// Quiet prints verdicts only.
	Quiet bool
	// Metrics dumps collected metrics in Prometheus text format at exit.
	Metrics bool
	// Candidates are the positional arguments: decimal integers to classify.
	// With none, the built-in demonstration runs.
	Candidates []string
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment overrides for flags not given explicitly, and validates the result.
// Priority: CLI flags > environment variables > defaults.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The arguments without the program name.
//   - errorWriter: Receives usage and validation messages.
//
// Returns:
//   - AppConfig: The validated configuration.
//   - error: flag.ErrHelp, a flag parsing error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Test, "test", DefaultTest, "Primality tests to run: all, fermat, miller-rabin.")
	fs.IntVar(&cfg.Iterations, "iterations", numtheory.DefaultIterations, "Random witnesses per primality test.")
	fs.IntVar(&cfg.Iterations, "k", numtheory.DefaultIterations, "Random witnesses per primality test (shorthand).")
	fs.Int64Var(&cfg.Seed, "seed", numtheory.DefaultSeed, "Seed for the witness sampler.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.IntVar(&cfg.Workers, "workers", 0, "Concurrent classifications (0 = from CPU count).")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: trace, debug, info, warn, error.")
	fs.BoolVar(&cfg.Strict, "strict", false, "Fail when primality tests disagree on a candidate.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print verdicts only.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print verdicts only (shorthand).")
	fs.BoolVar(&cfg.Metrics, "metrics", false, "Print Prometheus metrics at exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg, fs)
	cfg.Candidates = fs.Args()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports the first violation as a
// ConfigError.
func (c AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.NewConfigError("invalid value %v for %s (%s=%s)", fe.Value(), fe.Field(), fe.Tag(), fe.Param())
		}
		return apperrors.NewConfigError("invalid configuration: %v", err)
	}
	return nil
}

// EffectiveWorkers returns Workers, or an estimate from the CPU count when
// Workers is zero.
func (c AppConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return EstimateOptimalWorkers()
}
