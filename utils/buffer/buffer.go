// Package buffer implements the binary codec of the serializable objects:
// little-endian uint64 words and vectors of words, written to and read from
// streams that expose their internal buffers (see codec.go).
package buffer

import (
	"fmt"
	"io"
)

// Writer is the sink of WriteUint64 and WriteUint64Slice. Words are appended
// to AvailableBuffer and the writer is flushed when fewer than 8 bytes are left.
// It is implemented by *bufio.Writer and *Buffer.
type Writer interface {
	io.Writer
	Flush() (err error)
	AvailableBuffer() []byte
	Available() int
}

// Reader is the source of ReadUint64 and ReadUint64Slice. Vectors are decoded
// in place from Peek and consumed with Discard, up to Size bytes at a time.
// It is implemented by *bufio.Reader and *Buffer.
type Reader interface {
	io.Reader
	Size() int
	Peek(n int) ([]byte, error)
	Discard(n int) (discarded int, err error)
}

// Buffer is a fixed-size Writer and Reader over a byte slice, used by
// MarshalBinary (sized with BinarySize) and UnmarshalBinary. It never grows:
// writes and reads past the end of the slice fail.
type Buffer struct {
	buf []byte
	n   int
	off int
}

// NewBuffer returns a Buffer reading from buff, typically the input of
// UnmarshalBinary. Writes start at buff[0] and overwrite it.
func NewBuffer(buff []byte) *Buffer {
	return &Buffer{buf: buff}
}

// NewBufferSize returns an empty Buffer of exactly size bytes, typically
// the BinarySize of the object being marshalled.
func NewBufferSize(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

// Write appends p to the written bytes, or fails without writing
// anything if p does not fit.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p)+b.n > len(b.buf) {
		return 0, fmt.Errorf("cannot Write: buffer too small")
	}
	n = copy(b.buf[b.n:], p)
	b.n += n
	return n, nil
}

// Flush is a no-op, the bytes are already in the backing slice.
func (b *Buffer) Flush() (err error) {
	return nil
}

// AvailableBuffer returns the unwritten tail of the backing slice with length
// zero. Appending words to it and passing it to Write copies them in place.
func (b *Buffer) AvailableBuffer() []byte {
	return b.buf[b.n:][:0]
}

// Available returns the number of bytes available for writes on the buffer.
func (b *Buffer) Available() int {
	return len(b.buf) - b.n
}

// Bytes returns the whole backing slice, written or not.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Reset re-initializes the read and write offsets of b.
func (b *Buffer) Reset() {
	b.n = 0
	b.off = 0
}

// Read copies the next bytes into p and returns io.EOF if fewer than
// len(p) bytes were left.
func (b *Buffer) Read(p []byte) (n int, err error) {
	n = copy(p, b.buf[b.off:])
	b.off += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the number of bytes left to read.
func (b *Buffer) Size() int {
	return len(b.buf) - b.off
}

// Peek returns a view on the next n bytes without consuming them, or on
// what is left together with io.EOF.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if b.off+n > len(b.buf) {
		return b.buf[b.off:], io.EOF
	}
	return b.buf[b.off : b.off+n], nil
}

// Discard consumes the next n bytes, or what is left together with io.EOF.
func (b *Buffer) Discard(n int) (discarded int, err error) {
	remain := len(b.buf) - b.off
	if n > remain {
		b.off = len(b.buf)
		return remain, io.EOF
	}
	b.off += n
	return n, nil
}
