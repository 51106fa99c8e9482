package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/numtheory/internal/errors"
	"github.com/agbru/numtheory/internal/logging"
	"github.com/agbru/numtheory/internal/numtheory"
)

var tracer = otel.Tracer("github.com/agbru/numtheory/internal/orchestration")

// Options tunes ClassifyAll.
type Options struct {
	// Workers caps the candidates classified concurrently; <= 0 means unbounded.
	Workers int
	// Timeout is the run's time limit. It is only reported: a candidate cut
	// off by a deadline carries a TimeoutError with this limit.
	Timeout time.Duration
}

// ClassifyAll runs every tester on every candidate concurrently.
//
// When sampler is a numtheory.Splitter, each candidate gets its own child
// sampler, split off in candidate order before any work starts, so verdicts
// for a given seed do not depend on scheduling or on the worker count.
// Any other sampler is shared by all candidates and must be safe for
// concurrent use. Cancellation is checked before each tester runs; an
// interrupted candidate keeps the verdicts gathered so far and carries a
// CalculationError.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - candidates: The integers to classify.
//   - testers: The primality tests to run on each candidate, in order.
//   - sampler: The witness source.
//   - opts: Worker limit and the time limit to report on deadlines.
//   - logger: Receives one entry per candidate.
//
// Returns:
//   - []Classification: The results, in candidate order.
//   - error: The first error returned by a worker goroutine.
func ClassifyAll(ctx context.Context, candidates []*big.Int, testers []numtheory.Tester, sampler numtheory.Sampler, opts Options, logger logging.Logger) ([]Classification, error) {
	samplers := make([]numtheory.Sampler, len(candidates))
	splitter, canSplit := sampler.(numtheory.Splitter)
	for i := range samplers {
		if canSplit {
			samplers[i] = splitter.Split()
		} else {
			samplers[i] = sampler
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	results := make([]Classification, len(candidates))

	for i, candidate := range candidates {
		idx, n := i, candidate
		g.Go(func() error {
			results[idx] = classify(ctx, n, testers, samplers[idx], opts.Timeout)
			switch err := results[idx].Err; {
			case err == nil:
				logger.Debug("classified",
					logging.BigInt("candidate", n),
					logging.Bool("prime", results[idx].Prime()),
					logging.Float64("seconds", results[idx].Duration.Seconds()))
			case apperrors.IsContextError(err):
				logger.Info("classification interrupted", logging.BigInt("candidate", n), logging.Err(err))
			default:
				logger.Error("classification failed", err, logging.BigInt("candidate", n))
			}
			return nil
		})
	}

	return results, g.Wait()
}

func classify(ctx context.Context, n *big.Int, testers []numtheory.Tester, sampler numtheory.Sampler, timeout time.Duration) Classification {
	ctx, span := tracer.Start(ctx, "classify")
	defer span.End()
	span.SetAttributes(
		attribute.String("numtheory.candidate", n.String()),
		attribute.Int("numtheory.bits", n.BitLen()),
	)

	start := time.Now()
	res := Classification{Candidate: n, Verdicts: make([]Verdict, 0, len(testers))}
	for _, t := range testers {
		if err := ctx.Err(); err != nil {
			op := fmt.Sprintf("classify %s", n)
			cause := err
			if errors.Is(err, context.DeadlineExceeded) {
				cause = apperrors.TimeoutError{Operation: op, Limit: timeout}
			}
			res.Err = apperrors.CalculationError{Operation: op, Cause: cause}
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, "interrupted")
			break
		}
		prime := t.IsPrime(n, sampler)
		res.Verdicts = append(res.Verdicts, Verdict{Tester: t.Name(), Prime: prime})
		span.SetAttributes(attribute.Bool("numtheory.verdict."+t.Name(), prime))
	}
	res.Duration = time.Since(start)
	return res
}

// Summarize counts primes and composites and collects disagreements and
// failures. Failed classifications are not counted as prime or composite.
func Summarize(results []Classification) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed = append(s.Failed, r)
			continue
		case r.Prime():
			s.Primes++
		default:
			s.Composites++
		}
		if !r.Agreed() {
			s.Disagreements = append(s.Disagreements, r)
		}
	}
	return s
}

// AnalyzeClassifications presents each result and the batch summary, and
// returns the exit code for the batch.
//
// A failed classification determines the exit code through
// apperrors.ExitCodeFor. Disagreement between testers is a known property of
// the Fermat test and only fails the batch when strict is set.
//
// Parameters:
//   - results: The classifications returned by ClassifyAll.
//   - strict: Whether a disagreement between testers fails the batch.
//   - presenter: Formats each result and the summary.
//   - out: The destination writer.
//
// Returns:
//   - int: An exit code from the apperrors package.
func AnalyzeClassifications(results []Classification, strict bool, presenter ResultPresenter, out io.Writer) int {
	for _, r := range results {
		presenter.PresentClassification(r, out)
	}
	summary := Summarize(results)
	presenter.PresentSummary(summary, out)

	if len(summary.Failed) > 0 {
		return apperrors.ExitCodeFor(summary.Failed[0].Err)
	}
	if strict && len(summary.Disagreements) > 0 {
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}
