package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/agbru/numtheory/internal/errors"
	"github.com/agbru/numtheory/internal/logging"
	"github.com/agbru/numtheory/internal/metrics"
	"github.com/agbru/numtheory/internal/numtheory"
)

// Karatsuba operands of the demonstration.
const (
	demoLHS = "12345634344789123144"
	demoRHS = "43219876543343442186"
)

type demoStep struct {
	operation string
	run       func() string
}

// demoSteps lists the demonstration, one printed line per step.
func (a *Application) demoSteps() []demoStep {
	iters := a.Config.Iterations
	return []demoStep{
		{"pow", func() string {
			return numtheory.Pow(big.NewInt(234), big.NewInt(6565), big.NewInt(4543)).String()
		}},
		{"fermat", func() string {
			return fmt.Sprint(numtheory.IsFermatPrime(big.NewInt(3253), iters, a.Sampler))
		}},
		{"euclid", func() string {
			r := numtheory.ExtendedEuclid(big.NewInt(435), big.NewInt(150))
			return fmt.Sprintf("divisor: %s, x: %s, y: %s", r.GCD, r.X, r.Y)
		}},
		{"miller-rabin", func() string {
			return fmt.Sprintf("is prime: %t", numtheory.MillerRabin(big.NewInt(3000), iters, a.Sampler))
		}},
		{"karatsuba", func() string {
			lhs, _ := new(big.Int).SetString(demoLHS, 10)
			rhs, _ := new(big.Int).SetString(demoRHS, 10)
			return fmt.Sprintf("%s * %s = %s", lhs, rhs, numtheory.Karatsuba(lhs, rhs))
		}},
	}
}

// runDemo runs each demonstration step in its own span and records its
// duration.
func (a *Application) runDemo(ctx context.Context, out io.Writer, recorder *metrics.Recorder) int {
	for _, step := range a.demoSteps() {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = apperrors.TimeoutError{Operation: "demo " + step.operation, Limit: a.Config.Timeout}
			}
			a.Logger.Info("demonstration interrupted", logging.String("operation", step.operation), logging.Err(err))
			return a.fail(err)
		}

		_, span := tracer.Start(ctx, "demo."+step.operation)
		start := time.Now()
		line := step.run()
		elapsed := time.Since(start)
		span.SetAttributes(attribute.String("numtheory.result", line))
		span.End()

		recorder.ObserveOperation(step.operation, elapsed)
		a.Logger.Debug("demo step", logging.String("operation", step.operation), logging.Float64("seconds", elapsed.Seconds()))
		fmt.Fprintln(out, line)
	}
	return apperrors.ExitSuccess
}
