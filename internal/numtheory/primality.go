package numtheory

import "math/big"

// IsFermatPrime reports whether x is probably prime according to the Fermat
// test with iters random witnesses drawn from [2, x-2].
//
// Values below 4 are answered exactly. A false result is always correct; a
// true result may be wrong for Carmichael numbers and other Fermat
// pseudoprimes.
func IsFermatPrime(x *big.Int, iters int, sampler Sampler) bool {
	if x.Cmp(four) < 0 {
		return x.Cmp(two) == 0 || x.Cmp(three) == 0
	}

	xMinusOne := new(big.Int).Sub(x, one)
	xMinusTwo := new(big.Int).Sub(x, two)
	for i := 0; i < iters; i++ {
		a := sampler.Between(two, xMinusTwo)
		if Pow(a, xMinusOne, x).Cmp(one) != 0 {
			return false
		}
	}
	return true
}

// MillerRabin reports whether n is probably prime according to the
// Miller-Rabin test with iters random witnesses drawn from [2, n-2].
// For a composite n the probability of a true result is at most 4^-iters.
func MillerRabin(n *big.Int, iters int, sampler Sampler) bool {
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true
	}
	if n.Cmp(two) < 0 || n.Bit(0) == 0 {
		return false
	}

	nMinusOne := new(big.Int).Sub(n, one)
	nMinusTwo := new(big.Int).Sub(n, two)

	// n-1 = 2^s * t with t odd
	t := new(big.Int).Set(nMinusOne)
	s := 0
	for t.Bit(0) == 0 {
		t.Rsh(t, 1)
		s++
	}

	for i := 0; i < iters; i++ {
		a := sampler.Between(two, nMinusTwo)
		if !millerRabinRound(n, nMinusOne, a, t, s) {
			return false
		}
	}
	return true
}

// millerRabinRound reports whether witness a fails to prove n composite.
func millerRabinRound(n, nMinusOne, a, t *big.Int, s int) bool {
	x := Pow(a, t, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
		return true
	}
	for j := 1; j < s; j++ {
		x.Mul(x, x)
		x.Rem(x, n)
		if x.Cmp(one) == 0 {
			// nontrivial square root of unity
			return false
		}
		if x.Cmp(nMinusOne) == 0 {
			return true
		}
	}
	return false
}

// Tester is a probabilistic primality test bound to its witness count.
type Tester interface {
	// Name identifies the test in reports and metrics.
	Name() string
	// IsPrime classifies n, drawing witnesses from sampler.
	IsPrime(n *big.Int, sampler Sampler) bool
}

// FermatTester runs IsFermatPrime with a fixed number of iterations.
type FermatTester struct {
	Iterations int
}

// Name returns "Fermat".
func (FermatTester) Name() string { return "Fermat" }

// IsPrime implements Tester.
func (f FermatTester) IsPrime(n *big.Int, sampler Sampler) bool {
	return IsFermatPrime(n, f.Iterations, sampler)
}

// MillerRabinTester runs MillerRabin with a fixed number of iterations.
type MillerRabinTester struct {
	Iterations int
}

// Name returns "Miller-Rabin".
func (MillerRabinTester) Name() string { return "Miller-Rabin" }

// IsPrime implements Tester.
func (m MillerRabinTester) IsPrime(n *big.Int, sampler Sampler) bool {
	return MillerRabin(n, m.Iterations, sampler)
}

// Testers returns both primality tests configured with iters witnesses,
// Fermat first.
func Testers(iters int) []Tester {
	return []Tester{
		FermatTester{Iterations: iters},
		MillerRabinTester{Iterations: iters},
	}
}
