package sampling_test

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/lwecrypt/lwecrypt/utils/sampling"
)

var testKey = []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
	0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

func Test_PRNG(t *testing.T) {

	t.Run("KeyedPRNG/Reset", func(t *testing.T) {

		Ha, err := sampling.NewKeyedPRNG(testKey)
		require.NoError(t, err)
		Hb, err := sampling.NewKeyedPRNG(testKey)
		require.NoError(t, err)

		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		for i := 0; i < 128; i++ {
			Hb.Read(sum1)
		}

		Hb.Reset()

		Ha.Read(sum0)
		Hb.Read(sum1)

		require.Equal(t, sum0, sum1)
		require.Equal(t, testKey, Ha.Key())
	})

	t.Run("KeyedPRNG/KeyTooLong", func(t *testing.T) {
		_, err := sampling.NewKeyedPRNG(make([]byte, 65))
		require.Error(t, err)
	})

	t.Run("SeedKey", func(t *testing.T) {
		k0 := sampling.SeedKey("lwe")
		k1 := sampling.SeedKey("lwe")
		k2 := sampling.SeedKey("lwf")
		require.Len(t, k0, sampling.KeySize)
		require.Equal(t, k0, k1)
		require.NotEqual(t, k0, k2)

		Ha, err := sampling.NewSeededPRNG("lwe")
		require.NoError(t, err)
		require.Equal(t, k0, Ha.Key())
	})

	t.Run("ThreadSafePRNG", func(t *testing.T) {
		prng, err := sampling.NewPRNG()
		require.NoError(t, err)
		sum0 := make([]byte, 64)
		sum1 := make([]byte, 64)
		prng.Read(sum0)
		prng.Read(sum1)
		require.NotEqual(t, sum0, sum1)
	})
}

func TestUniformSampler(t *testing.T) {

	for _, q := range []uint64{1, 2, 3, 2048, 3329, 1<<62 - 57} {
		prng, err := sampling.NewKeyedPRNG(testKey)
		require.NoError(t, err)

		sampler := sampling.NewUniformSampler(prng, q)
		require.Equal(t, q, sampler.Modulus())

		for _, c := range sampler.ReadNew(4096) {
			require.Less(t, c, q)
		}
	}

	t.Run("Mean", func(t *testing.T) {
		prng, err := sampling.NewKeyedPRNG(testKey)
		require.NoError(t, err)

		q := uint64(2048)
		coeffs := sampling.NewUniformSampler(prng, q).ReadNew(1 << 14)

		values := make([]float64, len(coeffs))
		for i := range coeffs {
			values[i] = float64(coeffs[i])
		}

		mean, err := stats.Mean(values)
		require.NoError(t, err)
		require.InDelta(t, float64(q-1)/2, mean, 25)
	})

	require.Panics(t, func() { sampling.NewUniformSampler(nil, 0) })
}

func TestGaussianSampler(t *testing.T) {

	t.Run("Moments", func(t *testing.T) {
		prng, err := sampling.NewKeyedPRNG(testKey)
		require.NoError(t, err)

		sigma := 3.2
		sampler := sampling.NewGaussianSampler(prng, sigma)
		require.Equal(t, sigma, sampler.Sigma())
		require.Equal(t, int64(20), sampler.Bound())

		e := sampler.ReadNew(1 << 15)

		values := make([]float64, len(e))
		for i := range e {
			require.LessOrEqual(t, e[i], sampler.Bound())
			require.GreaterOrEqual(t, e[i], -sampler.Bound())
			values[i] = float64(e[i])
		}

		mean, err := stats.Mean(values)
		require.NoError(t, err)
		stddev, err := stats.StandardDeviation(values)
		require.NoError(t, err)

		require.InDelta(t, 0, mean, 0.1)
		// Rounding adds a variance of about 1/12.
		require.InDelta(t, math.Sqrt(sigma*sigma+1.0/12), stddev, 0.1)
	})

	t.Run("Bound", func(t *testing.T) {
		prng, err := sampling.NewKeyedPRNG(testKey)
		require.NoError(t, err)

		sampler := sampling.NewGaussianSamplerWithBound(prng, 10, 1)
		for _, ei := range sampler.ReadNew(1024) {
			require.True(t, ei >= -1 && ei <= 1)
		}
	})

	t.Run("ZeroSigma", func(t *testing.T) {
		sampler := sampling.NewGaussianSampler(nil, 0)
		require.Equal(t, make([]int64, 32), sampler.ReadNew(32))
	})

	t.Run("Deterministic", func(t *testing.T) {
		Ha, _ := sampling.NewKeyedPRNG(testKey)
		Hb, _ := sampling.NewKeyedPRNG(testKey)
		require.Equal(t, sampling.NewGaussianSampler(Ha, 2).ReadNew(256), sampling.NewGaussianSampler(Hb, 2).ReadNew(256))
	})

	require.Panics(t, func() { sampling.NewGaussianSampler(nil, -1) })
	require.Panics(t, func() { sampling.NewGaussianSamplerWithBound(nil, 1, -1) })
}

func TestBinarySampler(t *testing.T) {
	prng, err := sampling.NewKeyedPRNG(testKey)
	require.NoError(t, err)

	r := sampling.NewBinarySampler(prng).ReadNew(1 << 14)

	var ones int
	for _, ri := range r {
		require.True(t, ri == 0 || ri == 1)
		ones += int(ri)
	}

	require.InDelta(t, len(r)/2, ones, 400)
}
