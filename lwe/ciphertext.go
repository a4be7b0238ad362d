package lwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/slices"

	"github.com/lwecrypt/lwecrypt/utils/buffer"
)

// maxSerializedLen bounds the length prefixes accepted by ReadFrom, so that
// a corrupted stream cannot trigger arbitrarily large allocations.
const maxSerializedLen = 1 << 26

// Ciphertext is the encryption of a single bit: a vector U of size n and a scalar V,
// both in Z_q.
type Ciphertext struct {
	U []uint64
	V uint64
}

// NewCiphertext returns a new zero Ciphertext of dimension params.N().
func NewCiphertext(params Parameters) *Ciphertext {
	return &Ciphertext{U: make([]uint64, params.N())}
}

// N returns the dimension of the ciphertext.
func (ct Ciphertext) N() int {
	return len(ct.U)
}

// CopyNew returns a deep copy of the object.
func (ct Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{U: slices.Clone(ct.U), V: ct.V}
}

// Equal performs a deep equal.
func (ct Ciphertext) Equal(other *Ciphertext) bool {
	return other != nil && ct.V == other.V && cmp.Equal(ct.U, other.U)
}

// BinarySize returns the serialized size of the object in bytes.
func (ct Ciphertext) BinarySize() int {
	return 8 + 8*len(ct.U) + 8
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface (see lwecrypt/utils/buffer/buffer.go),
// it will be wrapped into a bufio.Writer.
func (ct Ciphertext) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = writeVector(w, ct.U); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteUint64(w, ct.V); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		return ct.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface (see lwecrypt/utils/buffer/buffer.go),
// it will be wrapped into a bufio.Reader.
func (ct *Ciphertext) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64
		if inc, err = readVector(r, &ct.U); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.ReadUint64(r, &ct.V); err != nil {
			return n + inc, err
		}

		return n + inc, nil

	default:
		return ct.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct Ciphertext) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(ct.BinarySize())
	_, err = ct.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *Ciphertext) UnmarshalBinary(p []byte) (err error) {
	_, err = ct.ReadFrom(buffer.NewBuffer(p))
	return
}

// CiphertextBatch is an ordered sequence of bit-ciphertexts, typically the
// encryption of a message.
type CiphertextBatch []*Ciphertext

// Len returns the number of ciphertexts in the batch.
func (b CiphertextBatch) Len() int {
	return len(b)
}

// Equal performs a deep equal.
func (b CiphertextBatch) Equal(other CiphertextBatch) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] == nil || !b[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// BinarySize returns the serialized size of the object in bytes.
func (b CiphertextBatch) BinarySize() (size int) {
	size = 8
	for _, ct := range b {
		if ct != nil {
			size += ct.BinarySize()
		}
	}
	return
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (b CiphertextBatch) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteUint64(w, uint64(len(b))); err != nil {
			return n + inc, err
		}
		n += inc

		for i, ct := range b {
			if ct == nil {
				return n, fmt.Errorf("cannot WriteTo: ciphertext %d is nil", i)
			}
			if inc, err = ct.WriteTo(w); err != nil {
				return n + inc, fmt.Errorf("ciphertext %d: %w", i, err)
			}
			n += inc
		}

		return n, w.Flush()

	default:
		return b.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
func (b *CiphertextBatch) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64
		var size uint64
		if inc, err = buffer.ReadUint64(r, &size); err != nil {
			return n + inc, err
		}
		n += inc

		if size > maxSerializedLen {
			return n, fmt.Errorf("cannot ReadFrom: batch size %d exceeds %d", size, maxSerializedLen)
		}

		batch := make(CiphertextBatch, size)
		for i := range batch {
			batch[i] = new(Ciphertext)
			if inc, err = batch[i].ReadFrom(r); err != nil {
				return n + inc, fmt.Errorf("ciphertext %d: %w", i, err)
			}
			n += inc
		}

		*b = batch

		return n, nil

	default:
		return b.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (b CiphertextBatch) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(b.BinarySize())
	_, err = b.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (b *CiphertextBatch) UnmarshalBinary(p []byte) (err error) {
	_, err = b.ReadFrom(buffer.NewBuffer(p))
	return
}
