// Package ring implements the modular arithmetic over Z_q used by the LWE scheme.
// All functions expect operands already reduced in [0, q-1] and return results in [0, q-1].
package ring

import (
	"math/bits"
)

// MaxModulus is the largest supported modulus.
// The sum of two residues never overflows a uint64 below this value.
const MaxModulus = uint64(1) << 62

// CRed reduce returns a mod q where a is between 0 and 2*q-1.
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// Reduce returns a mod q for any a.
func Reduce(a, q uint64) uint64 {
	return a % q
}

// ReduceSigned returns a mod q in [0, q-1] for a signed integer a.
func ReduceSigned(a int64, q uint64) uint64 {
	if a >= 0 {
		return uint64(a) % q
	}
	// -a computed on the unsigned value handles math.MinInt64.
	r := (-uint64(a)) % q
	if r == 0 {
		return 0
	}
	return q - r
}

// Center returns the representative of a in [-q/2, q/2), a being in [0, q-1].
func Center(a, q uint64) int64 {
	if a >= (q+1)>>1 {
		return -int64(q - a)
	}
	return int64(a)
}

// Neg returns -a mod q.
func Neg(a, q uint64) uint64 {
	if a == 0 {
		return 0
	}
	return q - a
}

// Add returns a + b mod q.
func Add(a, b, q uint64) uint64 {
	return CRed(a+b, q)
}

// Sub returns a - b mod q.
func Sub(a, b, q uint64) uint64 {
	return CRed(a+q-b, q)
}

// MulMod returns a * b mod q.
// The product is computed on 128 bits before the reduction.
func MulMod(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, q)
}

// CircularDistance returns the distance between a and b on Z_q, that is
// min(|a-b|, q-|a-b|).
func CircularDistance(a, b, q uint64) uint64 {
	d := Sub(a, b, q)
	if q-d < d {
		return q - d
	}
	return d
}
