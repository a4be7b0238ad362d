package lwe

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/montanaflynn/stats"

	"github.com/lwecrypt/lwecrypt/ring"
)

// failureBoundPrec is the precision of the big.Float returned by FailureBound.
const failureBoundPrec = 128

// NoiseEstimate gathers statistics on the error e = b - A*s of a public key.
type NoiseEstimate struct {
	Samples int
	Mean    float64
	StdDev  float64
	MaxAbs  float64
}

// String returns a compact representation of the estimate.
func (ne NoiseEstimate) String() string {
	return fmt.Sprintf("samples=%d mean=%.4f std=%.4f max=%.0f", ne.Samples, ne.Mean, ne.StdDev, ne.MaxAbs)
}

// MeasureNoise recovers the error e = b - A*s mod q of a key pair, centered in
// [-q/2, q/2), and returns its empirical mean, standard deviation and largest
// absolute value. For a matching key pair these are close to 0, sigma and at
// most params.NoiseBound().
func MeasureNoise(params Parameters, pk *PublicKey, sk *SecretKey) (est NoiseEstimate, err error) {

	if err = checkPublicKey(params, pk); err != nil {
		return est, fmt.Errorf("cannot MeasureNoise: %w", err)
	}

	if sk == nil || sk.N() != params.N() {
		return est, fmt.Errorf("cannot MeasureNoise: %w: secret key dimension does not match n=%d", ErrContractViolation, params.N())
	}

	q := params.Q()

	as := make([]uint64, params.M())
	ring.MulMatVecMod(pk.A, sk.Value, as, q)

	e := make([]uint64, params.M())
	ring.SubVec(pk.B, as, e, q)

	values := make([]float64, len(e))
	magnitudes := make([]float64, len(e))
	for i := range e {
		values[i] = float64(ring.Center(e[i], q))
		magnitudes[i] = math.Abs(values[i])
	}

	est.Samples = len(values)

	if est.Mean, err = stats.Mean(values); err != nil {
		return est, fmt.Errorf("cannot MeasureNoise: %w", err)
	}

	if est.StdDev, err = stats.StandardDeviation(values); err != nil {
		return est, fmt.Errorf("cannot MeasureNoise: %w", err)
	}

	if est.MaxAbs, err = stats.Max(magnitudes); err != nil {
		return est, fmt.Errorf("cannot MeasureNoise: %w", err)
	}

	return
}

// FailureBound returns an upper bound on the probability that a single bit
// decrypts to the wrong value.
//
// The phase of a ciphertext is bit*floor(q/2) + <e, r> where <e, r> sums about
// m/2 = n independent errors of variance sigma^2. Decoding fails when this sum
// exceeds q/4 in absolute value, which the Gaussian tail bound caps at
// 2*exp(-(q/4)^2 / (2*n*sigma^2)).
// The bound is returned as a big.Float because it underflows float64 for
// realistic parameters.
func (p Parameters) FailureBound() (bound *big.Float) {

	one := new(big.Float).SetPrec(failureBoundPrec).SetInt64(1)

	if p.sigma == 0 {
		return new(big.Float).SetPrec(failureBoundPrec)
	}

	t := float64(p.q) / 4
	variance := float64(p.n) * p.sigma * p.sigma
	x := -t * t / (2 * variance)

	// exp(x) is below the smallest non-zero big.Float.
	if x < -1e9 {
		return new(big.Float).SetPrec(failureBoundPrec)
	}

	bound = bigfloat.Exp(new(big.Float).SetPrec(failureBoundPrec).SetFloat64(x))
	bound.Mul(bound, new(big.Float).SetPrec(failureBoundPrec).SetInt64(2))

	if bound.Cmp(one) > 0 {
		return one
	}

	return bound
}
