package metrics

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"

	"github.com/agbru/numtheory/internal/numtheory"
)

const namespace = "numtheory"

// Verdict label values.
const (
	VerdictPrime     = "prime"
	VerdictComposite = "composite"
)

// Recorder owns a Prometheus registry and the collectors registered in it.
// Its methods are safe for concurrent use.
type Recorder struct {
	registry   *prometheus.Registry
	verdicts   *prometheus.CounterVec
	testTime   *prometheus.HistogramVec
	operations *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own registry, including the Go
// runtime collector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "primality_verdicts_total",
			Help:      "Primality test verdicts by tester and outcome.",
		}, []string{"tester", "verdict"}),
		testTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "primality_test_duration_seconds",
			Help:      "Duration of a single primality test.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"tester"}),
		operations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of arithmetic operations (pow, euclid, karatsuba).",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"operation"}),
	}
	r.registry.MustRegister(r.verdicts, r.testTime, r.operations, collectors.NewGoCollector())
	return r
}

// ObserveVerdict records one primality test outcome.
func (r *Recorder) ObserveVerdict(tester string, prime bool, d time.Duration) {
	verdict := VerdictComposite
	if prime {
		verdict = VerdictPrime
	}
	r.verdicts.WithLabelValues(tester, verdict).Inc()
	r.testTime.WithLabelValues(tester).Observe(d.Seconds())
}

// ObserveOperation records the duration of a named arithmetic operation.
func (r *Recorder) ObserveOperation(operation string, d time.Duration) {
	r.operations.WithLabelValues(operation).Observe(d.Seconds())
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Instrument wraps each tester so that its verdicts and durations are
// recorded.
//
// Parameters:
//   - testers: The testers to wrap.
//
// Returns:
//   - []numtheory.Tester: Wrappers with the same names, in the same order.
func (r *Recorder) Instrument(testers []numtheory.Tester) []numtheory.Tester {
	wrapped := make([]numtheory.Tester, len(testers))
	for i, t := range testers {
		wrapped[i] = instrumentedTester{Tester: t, rec: r}
	}
	return wrapped
}

type instrumentedTester struct {
	numtheory.Tester
	rec *Recorder
}

func (t instrumentedTester) IsPrime(n *big.Int, sampler numtheory.Sampler) bool {
	start := time.Now()
	prime := t.Tester.IsPrime(n, sampler)
	t.rec.ObserveVerdict(t.Name(), prime, time.Since(start))
	return prime
}
