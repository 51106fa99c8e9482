package numtheory

import "math/big"

// Pow returns x^degree mod mod using recursive exponentiation by squaring.
//
// Reduction uses truncated remainder, so a negative x may produce a negative
// result. A zero base short-circuits to 0 before the degree is inspected, and
// a zero degree returns 1 without reducing it. degree must be non-negative and
// mod must be non-zero; neither is checked.
func Pow(x, degree, mod *big.Int) *big.Int {
	if x.Sign() == 0 {
		return new(big.Int)
	}
	if degree.Sign() == 0 {
		return big.NewInt(1)
	}

	half := Pow(x, new(big.Int).Quo(degree, two), mod)
	result := new(big.Int).Mul(half, half)
	result.Rem(result, mod)

	if degree.Bit(0) == 1 {
		result.Mul(result, x)
		result.Rem(result, mod)
	}
	return result
}
