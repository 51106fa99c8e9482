package numtheory

import "math/big"

const (
	// DefaultIterations is the number of random witnesses drawn by the
	// primality tests when the caller has no stronger requirement.
	// Miller-Rabin bounds the false-positive probability by 4^-iters.
	DefaultIterations = 5

	// KaratsubaThreshold is the decimal digit count below which Karatsuba
	// falls back to direct multiplication. Changing it changes the recursion
	// structure, so it is fixed.
	KaratsubaThreshold = 10

	// DefaultSeed seeds samplers that need a reproducible witness stream.
	DefaultSeed int64 = 5489
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
	ten   = big.NewInt(10)
)
