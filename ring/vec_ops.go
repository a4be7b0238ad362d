package ring

import (
	"fmt"
)

// AddVec evaluates p3 = p1 + p2 (mod q).
func AddVec(p1, p2, p3 []uint64, q uint64) {
	N := len(p1)
	for j := 0; j < N; j++ {
		p3[j] = CRed(p1[j]+p2[j], q)
	}
}

// AddSignedVec evaluates p3 = p1 + e (mod q) where e is a vector of small signed integers.
func AddSignedVec(p1 []uint64, e []int64, p3 []uint64, q uint64) {
	N := len(p1)
	for j := 0; j < N; j++ {
		p3[j] = CRed(p1[j]+ReduceSigned(e[j], q), q)
	}
}

// SubVec evaluates p3 = p1 - p2 (mod q).
func SubVec(p1, p2, p3 []uint64, q uint64) {
	N := len(p1)
	for j := 0; j < N; j++ {
		p3[j] = CRed(p1[j]+q-p2[j], q)
	}
}

// DotMod returns <p1, p2> mod q.
func DotMod(p1, p2 []uint64, q uint64) (acc uint64) {
	if len(p1) != len(p2) {
		panic(fmt.Errorf("cannot DotMod: len(p1)=%d != len(p2)=%d", len(p1), len(p2)))
	}
	for j := range p1 {
		acc = CRed(acc+MulMod(p1[j], p2[j], q), q)
	}
	return
}

// MulMatVecMod evaluates out = A * s (mod q) for a matrix A of len(out) rows.
func MulMatVecMod(A [][]uint64, s, out []uint64, q uint64) {
	if len(A) != len(out) {
		panic(fmt.Errorf("cannot MulMatVecMod: #rows(A)=%d != len(out)=%d", len(A), len(out)))
	}
	for i := range A {
		out[i] = DotMod(A[i], s, q)
	}
}

// MulMatTransposeVecMod evaluates out = A^T * r (mod q), that is the linear
// combination of the rows of A weighted by r.
// Rows with a zero weight are skipped and rows with a unit weight are added
// directly, so a binary r amounts to a subset sum of the rows of A.
func MulMatTransposeVecMod(A [][]uint64, r, out []uint64, q uint64) {
	if len(A) != len(r) {
		panic(fmt.Errorf("cannot MulMatTransposeVecMod: #rows(A)=%d != len(r)=%d", len(A), len(r)))
	}

	for j := range out {
		out[j] = 0
	}

	for i, ri := range r {
		switch ri {
		case 0:
			continue
		case 1:
			AddVec(out, A[i], out, q)
		default:
			row := A[i]
			for j := range out {
				out[j] = CRed(out[j]+MulMod(row[j], ri, q), q)
			}
		}
	}
}
