package sampling

import (
	"fmt"
	"math"
	"math/bits"
)

// DefaultNoiseBound is the default bound, in number of standard deviations,
// beyond which Gaussian samples are rejected.
const DefaultNoiseBound = 6.0

// UniformSampler samples integers uniformly in [0, q-1].
// It is not safe for concurrent use.
type UniformSampler struct {
	*randomBuffer
	q    uint64
	mask uint64
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG and a modulus q > 0.
func NewUniformSampler(prng PRNG, q uint64) *UniformSampler {
	if q == 0 {
		panic(fmt.Errorf("cannot NewUniformSampler: q must be greater than zero"))
	}
	return &UniformSampler{
		randomBuffer: newRandomBuffer(prng),
		q:            q,
		mask:         (1 << bits.Len64(q-1)) - 1,
	}
}

// Modulus returns the upper bound (excluded) of the sampled values.
func (u *UniformSampler) Modulus() uint64 {
	return u.q
}

// Sample returns an integer uniformly distributed in [0, q-1].
// Values are drawn in [0, mask] and rejected until they fall below q.
func (u *UniformSampler) Sample() (randomInt uint64) {
	if u.q == 1 {
		return 0
	}
	for {
		if randomInt = u.nextUint64() & u.mask; randomInt < u.q {
			return
		}
	}
}

// Read populates coeffs with uniform samples in [0, q-1].
func (u *UniformSampler) Read(coeffs []uint64) {
	for i := range coeffs {
		coeffs[i] = u.Sample()
	}
}

// ReadNew returns a new vector of n uniform samples in [0, q-1].
func (u *UniformSampler) ReadNew(n int) (coeffs []uint64) {
	coeffs = make([]uint64, n)
	u.Read(coeffs)
	return
}

// GaussianSampler samples integers following a rounded normal distribution of
// mean zero and standard deviation Sigma, truncated to [-Bound, Bound].
// Continuous samples are produced with the Box-Muller transform and rounded to
// the nearest integer, half away from zero.
// It is not safe for concurrent use.
type GaussianSampler struct {
	*randomBuffer
	sigma float64
	bound int64

	spare    float64
	hasSpare bool
}

// NewGaussianSampler creates a new instance of GaussianSampler with standard deviation sigma >= 0.
// The samples are bounded by ceil(DefaultNoiseBound * sigma).
func NewGaussianSampler(prng PRNG, sigma float64) *GaussianSampler {
	return NewGaussianSamplerWithBound(prng, sigma, int64(math.Ceil(DefaultNoiseBound*sigma)))
}

// NewGaussianSamplerWithBound creates a new instance of GaussianSampler with standard deviation sigma >= 0
// and an explicit bound >= 0 on the absolute value of the samples.
func NewGaussianSamplerWithBound(prng PRNG, sigma float64, bound int64) *GaussianSampler {
	if sigma < 0 || math.IsNaN(sigma) {
		panic(fmt.Errorf("cannot NewGaussianSampler: sigma must be non-negative but is %f", sigma))
	}
	if bound < 0 {
		panic(fmt.Errorf("cannot NewGaussianSampler: bound must be non-negative but is %d", bound))
	}
	return &GaussianSampler{
		randomBuffer: newRandomBuffer(prng),
		sigma:        sigma,
		bound:        bound,
	}
}

// Sigma returns the standard deviation of the sampler.
func (g *GaussianSampler) Sigma() float64 {
	return g.sigma
}

// Bound returns the maximum absolute value of the samples.
func (g *GaussianSampler) Bound() int64 {
	return g.bound
}

// Sample returns a rounded Gaussian integer in [-Bound, Bound].
func (g *GaussianSampler) Sample() int64 {
	if g.sigma == 0 {
		return 0
	}
	for {
		x := math.Round(g.normFloat64() * g.sigma)
		if math.Abs(x) <= float64(g.bound) {
			return int64(x)
		}
	}
}

// Read populates e with rounded Gaussian samples.
func (g *GaussianSampler) Read(e []int64) {
	for i := range e {
		e[i] = g.Sample()
	}
}

// ReadNew returns a new vector of n rounded Gaussian samples.
func (g *GaussianSampler) ReadNew(n int) (e []int64) {
	e = make([]int64, n)
	g.Read(e)
	return
}

// normFloat64 returns a standard normal sample.
// Box-Muller yields two independent samples per draw, the second is kept for the next call.
func (g *GaussianSampler) normFloat64() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}

	// u1 in (0, 1], u2 in [0, 1)
	u1 := (float64(g.nextUint64()>>11) + 1) / (1 << 53)
	u2 := float64(g.nextUint64()>>11) / (1 << 53)

	r := math.Sqrt(-2 * math.Log(u1))
	sin, cos := math.Sincos(2 * math.Pi * u2)

	g.spare = r * sin
	g.hasSpare = true

	return r * cos
}

// BinarySampler samples independent uniform bits.
// It is not safe for concurrent use.
type BinarySampler struct {
	*randomBuffer
	word byte
	left int
}

// NewBinarySampler creates a new instance of BinarySampler from a PRNG.
func NewBinarySampler(prng PRNG) *BinarySampler {
	return &BinarySampler{
		randomBuffer: newRandomBuffer(prng),
	}
}

// Sample returns 0 or 1 with probability 1/2.
func (b *BinarySampler) Sample() uint64 {
	if b.left == 0 {
		b.word = b.nextByte()
		b.left = 8
	}
	bit := uint64(b.word & 1)
	b.word >>= 1
	b.left--
	return bit
}

// Read populates r with independent uniform bits.
func (b *BinarySampler) Read(r []uint64) {
	for i := range r {
		r[i] = b.Sample()
	}
}

// ReadNew returns a new vector of n independent uniform bits.
func (b *BinarySampler) ReadNew(n int) (r []uint64) {
	r = make([]uint64, n)
	b.Read(r)
	return
}
