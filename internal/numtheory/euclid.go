package numtheory

import "math/big"

// EuclidResult holds gcd(a, b) together with Bézout coefficients X and Y
// such that a*X + b*Y == GCD.
type EuclidResult struct {
	GCD *big.Int
	X   *big.Int
	Y   *big.Int
}

// ExtendedEuclid computes gcd(a, b) and a pair of Bézout coefficients.
//
// Quotients and remainders are truncated toward zero, so the identity holds
// for any combination of signs. The returned GCD is never negative: when the
// recursion ends on a negative value the whole triple is negated.
// ExtendedEuclid(0, 0) yields (0, 0, 1).
func ExtendedEuclid(a, b *big.Int) EuclidResult {
	res := extendedEuclid(a, b)
	if res.GCD.Sign() < 0 {
		res.GCD.Neg(res.GCD)
		res.X.Neg(res.X)
		res.Y.Neg(res.Y)
	}
	return res
}

func extendedEuclid(a, b *big.Int) EuclidResult {
	if a.Sign() == 0 {
		return EuclidResult{
			GCD: new(big.Int).Set(b),
			X:   new(big.Int),
			Y:   big.NewInt(1),
		}
	}

	q, r := new(big.Int).QuoRem(b, a, new(big.Int))
	next := extendedEuclid(r, a)

	// x = y1 - (b/a)*x1, y = x1
	x := new(big.Int).Mul(q, next.X)
	x.Sub(next.Y, x)
	return EuclidResult{GCD: next.GCD, X: x, Y: next.X}
}

// ModInverse returns the inverse of a modulo m in [0, m) and true, or
// nil and false when gcd(a, m) != 1. m must be positive.
func ModInverse(a, m *big.Int) (*big.Int, bool) {
	reduced := new(big.Int).Mod(a, m)
	res := ExtendedEuclid(reduced, m)
	if res.GCD.Cmp(one) != 0 {
		return nil, false
	}
	return res.X.Mod(res.X, m), true
}
