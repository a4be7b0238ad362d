package lwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/slices"

	"github.com/lwecrypt/lwecrypt/utils/buffer"
)

// SecretKey is a type for LWE secret keys: a vector s in Z_q^n.
type SecretKey struct {
	Value []uint64
}

// NewSecretKey generates a new zero SecretKey.
func NewSecretKey(params Parameters) *SecretKey {
	return &SecretKey{Value: make([]uint64, params.N())}
}

// N returns the dimension of the secret key.
func (sk SecretKey) N() int {
	return len(sk.Value)
}

// CopyNew returns a deep copy of the object.
func (sk SecretKey) CopyNew() *SecretKey {
	return &SecretKey{Value: slices.Clone(sk.Value)}
}

// Equal performs a deep equal.
func (sk SecretKey) Equal(other *SecretKey) bool {
	return other != nil && cmp.Equal(sk.Value, other.Value)
}

// BinarySize returns the serialized size of the object in bytes.
func (sk SecretKey) BinarySize() int {
	return 8 + 8*len(sk.Value)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (sk SecretKey) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		if n, err = writeVector(w, sk.Value); err != nil {
			return
		}
		return n, w.Flush()
	default:
		return sk.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
func (sk *SecretKey) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		return readVector(r, &sk.Value)
	default:
		return sk.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (sk SecretKey) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(sk.BinarySize())
	_, err = sk.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (sk *SecretKey) UnmarshalBinary(p []byte) (err error) {
	_, err = sk.ReadFrom(buffer.NewBuffer(p))
	return
}

// PublicKey is a type for LWE public keys: a matrix A in Z_q^{m x n}
// and a vector B = A*s + e in Z_q^m.
type PublicKey struct {
	A [][]uint64
	B []uint64
}

// NewPublicKey returns a new zero PublicKey.
func NewPublicKey(params Parameters) *PublicKey {
	m, n := params.M(), params.N()

	A := make([][]uint64, m)
	for i := range A {
		A[i] = make([]uint64, n)
	}

	return &PublicKey{
		A: A,
		B: make([]uint64, m),
	}
}

// M returns the number of LWE samples of the public key.
func (pk PublicKey) M() int {
	return len(pk.B)
}

// N returns the dimension of the public key.
func (pk PublicKey) N() int {
	if len(pk.A) == 0 {
		return 0
	}
	return len(pk.A[0])
}

// CopyNew returns a deep copy of the object.
func (pk PublicKey) CopyNew() *PublicKey {
	A := make([][]uint64, len(pk.A))
	for i := range pk.A {
		A[i] = slices.Clone(pk.A[i])
	}
	return &PublicKey{A: A, B: slices.Clone(pk.B)}
}

// Equal performs a deep equal.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return other != nil && cmp.Equal(pk.A, other.A) && cmp.Equal(pk.B, other.B)
}

// BinarySize returns the serialized size of the object in bytes.
func (pk PublicKey) BinarySize() (size int) {
	size = 8
	for i := range pk.A {
		size += 8 + 8*len(pk.A[i])
	}
	return size + 8 + 8*len(pk.B)
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
// The matrix A is written row by row, each row being length-prefixed.
func (pk PublicKey) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteUint64(w, uint64(len(pk.A))); err != nil {
			return n + inc, err
		}
		n += inc

		for i := range pk.A {
			if inc, err = writeVector(w, pk.A[i]); err != nil {
				return n + inc, fmt.Errorf("row %d: %w", i, err)
			}
			n += inc
		}

		if inc, err = writeVector(w, pk.B); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		return pk.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
func (pk *PublicKey) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64
		var rows uint64
		if inc, err = buffer.ReadUint64(r, &rows); err != nil {
			return n + inc, err
		}
		n += inc

		if rows > maxSerializedLen {
			return n, fmt.Errorf("cannot ReadFrom: #rows %d exceeds %d", rows, maxSerializedLen)
		}

		A := make([][]uint64, rows)
		for i := range A {
			if inc, err = readVector(r, &A[i]); err != nil {
				return n + inc, fmt.Errorf("row %d: %w", i, err)
			}
			n += inc
		}

		var B []uint64
		if inc, err = readVector(r, &B); err != nil {
			return n + inc, err
		}
		n += inc

		pk.A, pk.B = A, B

		return n, nil

	default:
		return pk.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (pk PublicKey) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(pk.BinarySize())
	_, err = pk.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (pk *PublicKey) UnmarshalBinary(p []byte) (err error) {
	_, err = pk.ReadFrom(buffer.NewBuffer(p))
	return
}

// writeVector writes the length of v followed by its elements.
func writeVector(w buffer.Writer, v []uint64) (n int64, err error) {
	var inc int64
	if inc, err = buffer.WriteUint64(w, uint64(len(v))); err != nil {
		return inc, err
	}
	n += inc
	inc, err = buffer.WriteUint64Slice(w, v)
	return n + inc, err
}

// readVector reads a length-prefixed vector into v, reallocating it if needed.
func readVector(r buffer.Reader, v *[]uint64) (n int64, err error) {
	var inc int64
	var size uint64
	if inc, err = buffer.ReadUint64(r, &size); err != nil {
		return inc, err
	}
	n += inc

	if size > maxSerializedLen {
		return n, fmt.Errorf("cannot ReadFrom: vector size %d exceeds %d", size, maxSerializedLen)
	}

	if uint64(cap(*v)) < size {
		*v = make([]uint64, size)
	}
	*v = (*v)[:size]

	inc, err = buffer.ReadUint64Slice(r, *v)
	return n + inc, err
}
