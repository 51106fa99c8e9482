package orchestration

import (
	apperrors "github.com/agbru/numtheory/internal/errors"
	"github.com/agbru/numtheory/internal/numtheory"
)

// Tester selection names accepted by GetTestersToRun.
const (
	SelectAll         = "all"
	SelectFermat      = "fermat"
	SelectMillerRabin = "miller-rabin"
)

// GetTestersToRun returns the testers named by selection, each configured
// with iters witnesses. "all" returns every tester in the order of
// numtheory.Testers.
//
// Parameters:
//   - selection: One of SelectAll, SelectFermat or SelectMillerRabin.
//   - iters: The number of random witnesses per test.
//
// Returns:
//   - []numtheory.Tester: The testers to run.
//   - error: A ConfigError for an unknown selection.
func GetTestersToRun(selection string, iters int) ([]numtheory.Tester, error) {
	switch selection {
	case SelectAll:
		return numtheory.Testers(iters), nil
	case SelectFermat:
		return []numtheory.Tester{numtheory.FermatTester{Iterations: iters}}, nil
	case SelectMillerRabin:
		return []numtheory.Tester{numtheory.MillerRabinTester{Iterations: iters}}, nil
	default:
		return nil, apperrors.NewConfigError("unknown primality test %q", selection)
	}
}
