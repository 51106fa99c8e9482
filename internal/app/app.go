package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	"github.com/agbru/numtheory/internal/config"
	apperrors "github.com/agbru/numtheory/internal/errors"
	"github.com/agbru/numtheory/internal/logging"
	"github.com/agbru/numtheory/internal/metrics"
	"github.com/agbru/numtheory/internal/numtheory"
)

var tracer = otel.Tracer("github.com/agbru/numtheory/internal/app")

// Application represents the numtheory application instance.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	Sampler   numtheory.Sampler
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithSampler replaces the witness sampler otherwise seeded from the
// configuration.
func WithSampler(s numtheory.Sampler) AppOption {
	return func(a *Application) { a.Sampler = s }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The full argument list; args[0] is the program name.
//   - errWriter: Receives usage, errors and log output.
//   - opts: Optional overrides for the logger and sampler.
//
// Returns:
//   - *Application: The configured application.
//   - error: flag.ErrHelp when help was requested, a ConfigError otherwise.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "numtheory"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		var cfgErr apperrors.ConfigError
		if IsHelpError(err) || errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, apperrors.NewConfigError("%v", err)
	}

	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "numtheory")
	}
	if app.Sampler == nil {
		app.Sampler = numtheory.NewSampler(cfg.Seed)
	}
	return app, nil
}

// Run executes the demonstration when no candidates were given, and
// classifies the candidates otherwise. It returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if err := logging.SetLevel(a.Config.LogLevel); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	recorder := metrics.NewRecorder()

	mode := "classify"
	if len(a.Config.Candidates) == 0 {
		mode = "demo"
	}
	a.Logger.Info("run started",
		logging.String("mode", mode),
		logging.String("version", Version),
		logging.String("test", a.Config.Test),
		logging.Int("iterations", a.Config.Iterations),
		logging.Int64("seed", a.Config.Seed),
		logging.Int("workers", a.Config.EffectiveWorkers()))

	var code int
	if mode == "demo" {
		code = a.runDemo(ctx, out, recorder)
	} else {
		code = a.runClassify(ctx, out, recorder)
	}

	if a.Config.Metrics {
		if err := recorder.WriteText(out); err != nil {
			a.Logger.Error("writing metrics", err)
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}
	return code
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
