// Package numtheory implements arbitrary-precision number-theoretic primitives
// over math/big: modular exponentiation, the extended Euclidean algorithm,
// Fermat and Miller-Rabin probabilistic primality tests, and decimal
// Karatsuba multiplication.
//
// Every function treats its *big.Int arguments as read-only values and
// returns freshly allocated results. The only stateful object is a Sampler,
// which the primality tests receive explicitly.
package numtheory
