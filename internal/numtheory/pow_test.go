package numtheory

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPow_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		x, degree, mod int64
		want           int64
	}{
		{234, 6565, 4543, 430},
		{3, 4, 5, 1},
		{2, 10, 1000, 24},
		{7, 0, 13, 1},
		{0, 0, 13, 0}, // zero base wins over zero degree
		{0, 5, 13, 0},
		{5, 1, 3, 2},
		{9, 0, 1, 1}, // zero degree is not reduced
		{-2, 3, 5, -3},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("%d^%d_mod_%d", tc.x, tc.degree, tc.mod), func(t *testing.T) {
			t.Parallel()
			got := Pow(big.NewInt(tc.x), big.NewInt(tc.degree), big.NewInt(tc.mod))
			if got.Int64() != tc.want {
				t.Errorf("Pow(%d, %d, %d) = %s, want %d", tc.x, tc.degree, tc.mod, got, tc.want)
			}
		})
	}
}

func TestPow_MatchesExp(t *testing.T) {
	t.Parallel()

	x := big.NewInt(234)
	degree := big.NewInt(6565)
	mod := big.NewInt(4543)

	want := new(big.Int).Exp(x, degree, mod)
	if got := Pow(x, degree, mod); got.Cmp(want) != 0 {
		t.Errorf("Pow = %s, Exp = %s", got, want)
	}

	// large operands
	x, _ = new(big.Int).SetString("98765432109876543210987654321", 10)
	degree, _ = new(big.Int).SetString("123456789012345678901234567890", 10)
	mod, _ = new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	want = new(big.Int).Exp(x, degree, mod)
	if got := Pow(x, degree, mod); got.Cmp(want) != 0 {
		t.Errorf("Pow = %s, Exp = %s", got, want)
	}
}

func TestPow_DoesNotMutateArguments(t *testing.T) {
	t.Parallel()

	x, degree, mod := big.NewInt(12), big.NewInt(77), big.NewInt(101)
	_ = Pow(x, degree, mod)

	if x.Int64() != 12 || degree.Int64() != 77 || mod.Int64() != 101 {
		t.Errorf("arguments mutated: x=%s degree=%s mod=%s", x, degree, mod)
	}
}

// TestPow_PropertyBased cross-checks Pow against repeated direct
// multiplication for small degrees.
func TestPow_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Pow(x, d, m) equals naive x^d mod m", prop.ForAll(
		func(x int64, d int, m int64) bool {
			bx, bm := big.NewInt(x), big.NewInt(m)

			naive := big.NewInt(1)
			for i := 0; i < d; i++ {
				naive.Mul(naive, bx)
				naive.Rem(naive, bm)
			}
			naive.Rem(naive, bm)

			return Pow(bx, big.NewInt(int64(d)), bm).Cmp(naive) == 0
		},
		gen.Int64Range(1, 1_000_000),
		gen.IntRange(0, 64),
		gen.Int64Range(2, 1_000_000),
	))

	properties.TestingRun(t)
}
