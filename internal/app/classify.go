package app

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/agbru/numtheory/internal/cli"
	apperrors "github.com/agbru/numtheory/internal/errors"
	"github.com/agbru/numtheory/internal/logging"
	"github.com/agbru/numtheory/internal/metrics"
	"github.com/agbru/numtheory/internal/orchestration"
)

// ParseCandidates parses decimal integers.
//
// Parameters:
//   - args: The positional command-line arguments.
//
// Returns:
//   - []*big.Int: The parsed candidates, in argument order.
//   - error: A ValidationError naming the position of the first malformed value.
func ParseCandidates(args []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(args))
	for i, s := range args {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, apperrors.ValidationError{
				Field:   fmt.Sprintf("candidate[%d]", i),
				Message: fmt.Sprintf("%q is not a decimal integer", s),
			}
		}
		out[i] = n
	}
	return out, nil
}

func (a *Application) runClassify(ctx context.Context, out io.Writer, recorder *metrics.Recorder) int {
	candidates, err := ParseCandidates(a.Config.Candidates)
	if err != nil {
		return a.fail(apperrors.WrapError(err, "parse candidates"))
	}
	testers, err := orchestration.GetTestersToRun(a.Config.Test, a.Config.Iterations)
	if err != nil {
		return a.fail(apperrors.WrapError(err, "select primality tests"))
	}
	testers = recorder.Instrument(testers)

	var spin cli.Spinner
	if !a.Config.Quiet {
		spin = cli.StartSpinner(out, fmt.Sprintf("classifying %d candidates", len(candidates)))
	}
	opts := orchestration.Options{Workers: a.Config.EffectiveWorkers(), Timeout: a.Config.Timeout}
	results, err := orchestration.ClassifyAll(ctx, candidates, testers, a.Sampler, opts, a.Logger)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return a.fail(apperrors.WrapError(err, "classify candidates"))
	}

	presenter := cli.CLIResultPresenter{Quiet: a.Config.Quiet}
	code := orchestration.AnalyzeClassifications(results, a.Config.Strict, presenter, out)

	summary := orchestration.Summarize(results)
	a.Logger.Info("batch classified",
		logging.Int("candidates", len(results)),
		logging.Int("primes", summary.Primes),
		logging.Int("composites", summary.Composites),
		logging.Int("disagreements", len(summary.Disagreements)),
		logging.Int("failed", len(summary.Failed)),
		logging.Int("exit_code", code))
	return code
}

// fail reports err on the error writer and returns its exit code.
func (a *Application) fail(err error) int {
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitCodeFor(err)
}
