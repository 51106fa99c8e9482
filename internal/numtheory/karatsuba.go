package numtheory

import (
	"math"
	"math/big"
)

// Karatsuba returns lhs*rhs using three-multiplication Karatsuba recursion
// over decimal digit splits.
//
// Operands shorter than KaratsubaThreshold decimal digits are multiplied
// directly. Otherwise both are split at half = N/2 digits, where N is the
// longer operand's DecimalLength, into high and low parts with truncated
// division by 10^half. Truncation keeps both parts on the operand's sign, so
// negative operands recombine exactly.
//
// This is not faster than big.Int.Mul, which already switches to Karatsuba
// on machine words.
func Karatsuba(lhs, rhs *big.Int) *big.Int {
	n := max(DecimalLength(lhs), DecimalLength(rhs))
	if n < KaratsubaThreshold {
		return new(big.Int).Mul(lhs, rhs)
	}

	half := n / 2
	base := new(big.Int).Exp(ten, big.NewInt(int64(half)), nil)

	lhsHigh, lhsLow := new(big.Int).QuoRem(lhs, base, new(big.Int))
	rhsHigh, rhsLow := new(big.Int).QuoRem(rhs, base, new(big.Int))

	high := Karatsuba(lhsHigh, rhsHigh)
	low := Karatsuba(lhsLow, rhsLow)
	cross := Karatsuba(
		new(big.Int).Add(lhsHigh, lhsLow),
		new(big.Int).Add(rhsHigh, rhsLow),
	)

	// high*10^(2*half) + (cross-high-low)*10^half + low
	cross.Sub(cross, high)
	cross.Sub(cross, low)
	cross.Mul(cross, base)

	result := new(big.Int).Mul(base, base)
	result.Mul(result, high)
	result.Add(result, cross)
	return result.Add(result, low)
}

// log10Of2 converts a bit length into a decimal digit estimate.
var log10Of2 = math.Log10(2)

// DecimalLength returns len(x.String()): the number of decimal digits of x,
// plus one for the sign when x is negative. It works from the bit length and
// corrects the estimate with one power-of-ten comparison instead of
// formatting x.
func DecimalLength(x *big.Int) int {
	if x.Sign() == 0 {
		return 1
	}
	abs := new(big.Int).Abs(x)

	// 2^(b-1) <= |x| < 2^b, so the digit count is one of two neighbours.
	digits := int(float64(abs.BitLen()-1)*log10Of2) + 1
	bound := new(big.Int).Exp(ten, big.NewInt(int64(digits)), nil)
	if abs.Cmp(bound) >= 0 {
		digits++
	} else if digits > 1 && abs.Cmp(bound.Quo(bound, ten)) < 0 {
		digits--
	}

	if x.Sign() < 0 {
		digits++
	}
	return digits
}
