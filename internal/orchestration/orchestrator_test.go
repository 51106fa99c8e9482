package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/numtheory/internal/errors"
	"github.com/agbru/numtheory/internal/logging"
	"github.com/agbru/numtheory/internal/numtheory"
)

// MockTester is a mock implementation of numtheory.Tester used for testing
// the orchestration logic without invoking real primality tests.
type MockTester struct {
	NameValue   string
	IsPrimeFunc func(n *big.Int) bool
}

// Name returns the mocked name of the tester.
func (m *MockTester) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "Mock"
}

// IsPrime invokes the mocked IsPrimeFunc.
func (m *MockTester) IsPrime(n *big.Int, _ numtheory.Sampler) bool {
	if m.IsPrimeFunc != nil {
		return m.IsPrimeFunc(n)
	}
	return false
}

// recordingPresenter collects what it is asked to present.
type recordingPresenter struct {
	mu              sync.Mutex
	classifications []Classification
	summary         *Summary
}

func (p *recordingPresenter) PresentClassification(c Classification, _ io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.classifications = append(p.classifications, c)
}

func (p *recordingPresenter) PresentSummary(s Summary, _ io.Writer) {
	p.summary = &s
}

func discardLogger() logging.Logger { return logging.NewLogger(io.Discard, "test") }

func ints(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestClassifyAll_RealTesters(t *testing.T) {
	t.Parallel()

	candidates := ints(2, 3, 4, 97, 561, 1105, 3000, 7919)
	sampler := numtheory.NewSampler(numtheory.DefaultSeed)
	results, err := ClassifyAll(context.Background(), candidates, numtheory.Testers(20), sampler, Options{Workers: 4}, discardLogger())
	if err != nil {
		t.Fatalf("ClassifyAll error: %v", err)
	}

	want := map[int64]bool{2: true, 3: true, 4: false, 97: true, 561: false, 1105: false, 3000: false, 7919: true}
	if len(results) != len(candidates) {
		t.Fatalf("got %d results, want %d", len(results), len(candidates))
	}
	for i, r := range results {
		if r.Candidate.Cmp(candidates[i]) != 0 {
			t.Errorf("result %d is for %s, want %s", i, r.Candidate, candidates[i])
		}
		if r.Err != nil {
			t.Errorf("unexpected error for %s: %v", r.Candidate, r.Err)
		}
		if len(r.Verdicts) != 2 {
			t.Errorf("%s has %d verdicts, want 2", r.Candidate, len(r.Verdicts))
		}
		if got := r.Prime(); got != want[r.Candidate.Int64()] {
			t.Errorf("Prime(%s) = %v, want %v", r.Candidate, got, want[r.Candidate.Int64()])
		}
	}
}

func TestClassifyAll_RespectsWorkerLimit(t *testing.T) {
	t.Parallel()

	var inFlight, peak int32
	slow := &MockTester{IsPrimeFunc: func(*big.Int) bool {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return true
	}}

	candidates := ints(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	if _, err := ClassifyAll(context.Background(), candidates, []numtheory.Tester{slow}, nil, Options{Workers: 3}, discardLogger()); err != nil {
		t.Fatalf("ClassifyAll error: %v", err)
	}

	if p := atomic.LoadInt32(&peak); p > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", p)
	}
}

func TestClassifyAll_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	tester := &MockTester{IsPrimeFunc: func(*big.Int) bool { called = true; return true }}
	results, _ := ClassifyAll(ctx, ints(97), []numtheory.Tester{tester}, nil, Options{Workers: 1}, discardLogger())

	if called {
		t.Error("tester should not run after cancellation")
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Fatalf("Err = %v, want context.Canceled", results[0].Err)
	}
	var calcErr apperrors.CalculationError
	if !errors.As(results[0].Err, &calcErr) || calcErr.Operation != "classify 97" {
		t.Errorf("expected CalculationError for classify 97, got %#v", results[0].Err)
	}
}

func TestClassifyAll_DeadlineReportsTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	tester := &MockTester{IsPrimeFunc: func(*big.Int) bool { return true }}
	results, _ := ClassifyAll(ctx, ints(561), []numtheory.Tester{tester}, nil, Options{Workers: 1, Timeout: 30 * time.Second}, discardLogger())

	var timeoutErr apperrors.TimeoutError
	if !errors.As(results[0].Err, &timeoutErr) {
		t.Fatalf("Err = %v, want a TimeoutError", results[0].Err)
	}
	if timeoutErr.Operation != "classify 561" || timeoutErr.Limit != 30*time.Second {
		t.Errorf("TimeoutError = %+v", timeoutErr)
	}
	if got := apperrors.ExitCodeFor(results[0].Err); got != apperrors.ExitErrorTimeout {
		t.Errorf("ExitCodeFor = %d, want %d", got, apperrors.ExitErrorTimeout)
	}
}

func TestClassifyAll_SeededVerdictsIndependentOfWorkers(t *testing.T) {
	t.Parallel()

	// Single-witness Fermat on Carmichael numbers: the verdict depends on
	// which witness each candidate draws.
	carmichaels := []int64{561, 1105, 1729, 2465, 2821, 6601, 8911}
	var values []int64
	for i := 0; i < 6; i++ {
		values = append(values, carmichaels...)
	}
	candidates := ints(values...)
	testers := []numtheory.Tester{numtheory.FermatTester{Iterations: 1}}

	run := func(workers int) []bool {
		results, err := ClassifyAll(context.Background(), candidates, testers, numtheory.NewSampler(7), Options{Workers: workers}, discardLogger())
		if err != nil {
			t.Fatalf("ClassifyAll error: %v", err)
		}
		verdicts := make([]bool, len(results))
		for i, r := range results {
			verdicts[i] = r.Prime()
		}
		return verdicts
	}

	want := run(1)
	for _, workers := range []int{8, 8, 0} {
		got := run(workers)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("workers=%d: verdict %d for %d = %v, want %v", workers, i, values[i], got[i], want[i])
			}
		}
	}
}

func TestClassification_PrimeAndAgreed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		verdicts []Verdict
		prime    bool
		agreed   bool
	}{
		{"no verdicts", nil, false, true},
		{"all prime", []Verdict{{"Fermat", true}, {"Miller-Rabin", true}}, true, true},
		{"all composite", []Verdict{{"Fermat", false}, {"Miller-Rabin", false}}, false, true},
		{"disagreement", []Verdict{{"Fermat", true}, {"Miller-Rabin", false}}, false, false},
	}

	for _, tt := range tests {
		c := Classification{Verdicts: tt.verdicts}
		if c.Prime() != tt.prime || c.Agreed() != tt.agreed {
			t.Errorf("%s: Prime=%v Agreed=%v, want %v %v", tt.name, c.Prime(), c.Agreed(), tt.prime, tt.agreed)
		}
	}
}

func TestAnalyzeClassifications(t *testing.T) {
	t.Parallel()

	agreePrime := Classification{Candidate: big.NewInt(97), Verdicts: []Verdict{{"Fermat", true}, {"Miller-Rabin", true}}}
	agreeComposite := Classification{Candidate: big.NewInt(91), Verdicts: []Verdict{{"Fermat", false}, {"Miller-Rabin", false}}}
	carmichael := Classification{Candidate: big.NewInt(561), Verdicts: []Verdict{{"Fermat", true}, {"Miller-Rabin", false}}}
	canceled := Classification{Candidate: big.NewInt(7), Err: apperrors.CalculationError{Operation: "classify 7", Cause: context.Canceled}}
	timedOut := Classification{Candidate: big.NewInt(7), Err: apperrors.CalculationError{Operation: "classify 7", Cause: context.DeadlineExceeded}}

	tests := []struct {
		name           string
		results        []Classification
		strict         bool
		wantCode       int
		wantPrimes     int
		wantComposites int
	}{
		{"all agree", []Classification{agreePrime, agreeComposite}, true, apperrors.ExitSuccess, 1, 1},
		{"disagreement reported", []Classification{agreePrime, carmichael}, false, apperrors.ExitSuccess, 1, 1},
		{"disagreement strict", []Classification{agreePrime, carmichael}, true, apperrors.ExitErrorMismatch, 1, 1},
		{"canceled", []Classification{agreePrime, canceled}, false, apperrors.ExitErrorCanceled, 1, 0},
		{"timed out", []Classification{timedOut}, false, apperrors.ExitErrorTimeout, 0, 0},
		{"empty", nil, true, apperrors.ExitSuccess, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			presenter := &recordingPresenter{}
			code := AnalyzeClassifications(tt.results, tt.strict, presenter, &bytes.Buffer{})

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if len(presenter.classifications) != len(tt.results) {
				t.Errorf("presented %d classifications, want %d", len(presenter.classifications), len(tt.results))
			}
			if presenter.summary == nil {
				t.Fatal("summary not presented")
			}
			if presenter.summary.Primes != tt.wantPrimes || presenter.summary.Composites != tt.wantComposites {
				t.Errorf("summary = %+v", *presenter.summary)
			}
		})
	}
}

func TestGetTestersToRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		selection string
		names     []string
		wantErr   bool
	}{
		{SelectAll, []string{"Fermat", "Miller-Rabin"}, false},
		{SelectFermat, []string{"Fermat"}, false},
		{SelectMillerRabin, []string{"Miller-Rabin"}, false},
		{"lucas", nil, true},
	}

	for _, tt := range tests {
		testers, err := GetTestersToRun(tt.selection, 9)
		if (err != nil) != tt.wantErr {
			t.Errorf("GetTestersToRun(%q) error = %v, wantErr %v", tt.selection, err, tt.wantErr)
			continue
		}
		if len(testers) != len(tt.names) {
			t.Errorf("GetTestersToRun(%q) returned %d testers, want %d", tt.selection, len(testers), len(tt.names))
			continue
		}
		for i, name := range tt.names {
			if testers[i].Name() != name {
				t.Errorf("tester %d = %s, want %s", i, testers[i].Name(), name)
			}
		}
	}
}
