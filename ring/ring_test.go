package ring

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModularReduction(t *testing.T) {

	t.Run("ReduceSigned", func(t *testing.T) {
		q := uint64(2048)
		require.Equal(t, uint64(0), ReduceSigned(0, q))
		require.Equal(t, uint64(5), ReduceSigned(5, q))
		require.Equal(t, uint64(2043), ReduceSigned(-5, q))
		require.Equal(t, uint64(0), ReduceSigned(-2048, q))
		require.Equal(t, uint64(2047), ReduceSigned(-4097, q))

		want := new(big.Int).Mod(big.NewInt(math.MinInt64), new(big.Int).SetUint64(q)).Uint64()
		require.Equal(t, want, ReduceSigned(math.MinInt64, q))
	})

	t.Run("Center", func(t *testing.T) {
		require.Equal(t, int64(0), Center(0, 2048))
		require.Equal(t, int64(1023), Center(1023, 2048))
		require.Equal(t, int64(-1024), Center(1024, 2048))
		require.Equal(t, int64(-1), Center(2047, 2048))
		require.Equal(t, int64(-1), Center(6, 7))
		require.Equal(t, int64(3), Center(3, 7))
		require.Equal(t, int64(-3), Center(4, 7))
	})

	t.Run("AddSubNeg", func(t *testing.T) {
		q := uint64(17)
		for a := uint64(0); a < q; a++ {
			for b := uint64(0); b < q; b++ {
				require.Equal(t, (a+b)%q, Add(a, b, q))
				require.Equal(t, (a+q-b)%q, Sub(a, b, q))
			}
			require.Equal(t, uint64(0), Add(a, Neg(a, q), q))
		}
	})

	t.Run("MulMod", func(t *testing.T) {
		q := MaxModulus - 57
		a, b := q-1, q-2

		want := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
		want.Mod(want, new(big.Int).SetUint64(q))

		require.Equal(t, want.Uint64(), MulMod(a, b, q))
		require.Equal(t, uint64(6), MulMod(2, 3, 2048))
	})

	t.Run("CircularDistance", func(t *testing.T) {
		q := uint64(2048)
		require.Equal(t, uint64(0), CircularDistance(0, 0, q))
		require.Equal(t, uint64(1), CircularDistance(2047, 0, q))
		require.Equal(t, uint64(1024), CircularDistance(1024, 0, q))
		require.Equal(t, uint64(512), CircularDistance(1536, 0, q))
		require.Equal(t, uint64(10), CircularDistance(1014, 1024, q))
	})
}

func TestVecOps(t *testing.T) {

	q := uint64(97)

	A := [][]uint64{
		{1, 2, 3},
		{4, 5, 6},
		{90, 91, 92},
	}

	t.Run("MulMatVecMod", func(t *testing.T) {
		out := make([]uint64, 3)
		MulMatVecMod(A, []uint64{1, 1, 1}, out, q)
		require.Equal(t, []uint64{6, 15, 273 % 97}, out)
	})

	t.Run("MulMatTransposeVecMod/Binary", func(t *testing.T) {
		out := []uint64{42, 42, 42}
		MulMatTransposeVecMod(A, []uint64{1, 0, 1}, out, q)
		require.Equal(t, []uint64{91, 93 % 97, 95 % 97}, out)
	})

	t.Run("MulMatTransposeVecMod/Scalar", func(t *testing.T) {
		out := make([]uint64, 3)
		MulMatTransposeVecMod(A, []uint64{2, 0, 0}, out, q)
		require.Equal(t, []uint64{2, 4, 6}, out)
	})

	t.Run("AddSignedVec", func(t *testing.T) {
		out := make([]uint64, 3)
		AddSignedVec([]uint64{0, 5, 96}, []int64{-1, 3, 2}, out, q)
		require.Equal(t, []uint64{96, 8, 1}, out)
	})

	t.Run("SubVec", func(t *testing.T) {
		out := make([]uint64, 3)
		SubVec([]uint64{0, 5, 96}, []uint64{1, 3, 96}, out, q)
		require.Equal(t, []uint64{96, 2, 0}, out)
	})

	t.Run("DotMod/Length", func(t *testing.T) {
		require.Panics(t, func() { DotMod([]uint64{1}, []uint64{1, 2}, q) })
	})
}
