package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteUint64 writes c to w in little-endian byte order.
func WriteUint64(w Writer, c uint64) (n int64, err error) {

	if w.Available() < 8 {
		if err = w.Flush(); err != nil {
			return
		}

		if w.Available() < 8 {
			return 0, fmt.Errorf("cannot WriteUint64: available buffer is smaller than 8 bytes even after flush")
		}
	}

	buf := binary.LittleEndian.AppendUint64(w.AvailableBuffer(), c)

	nint, err := w.Write(buf)

	return int64(nint), err
}

// WriteUint64Slice writes a slice of uint64 into w, without length prefix.
// Words are packed into the available buffer of w, which is flushed when full.
func WriteUint64Slice(w Writer, c []uint64) (n int64, err error) {

	for len(c) > 0 {

		available := w.Available() >> 3

		if available == 0 {
			if err = w.Flush(); err != nil {
				return
			}

			if available = w.Available() >> 3; available == 0 {
				return n, fmt.Errorf("cannot WriteUint64Slice: available buffer/8 is zero even after flush")
			}
		}

		if available > len(c) {
			available = len(c)
		}

		buf := w.AvailableBuffer()
		for _, ci := range c[:available] {
			buf = binary.LittleEndian.AppendUint64(buf, ci)
		}

		var inc int
		if inc, err = w.Write(buf); err != nil {
			return n + int64(inc), err
		}

		n += int64(inc)
		c = c[available:]
	}

	return
}

// ReadUint64 reads a little-endian uint64 from r into c.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}

	var bb = [8]byte{}

	var nint int
	if nint, err = io.ReadFull(r, bb[:]); err != nil {
		return int64(nint), fmt.Errorf("cannot ReadUint64: %w", err)
	}

	*c = binary.LittleEndian.Uint64(bb[:])

	return int64(nint), nil
}

// ReadUint64Slice reads len(c) little-endian uint64 from r into c.
func ReadUint64Slice(r Reader, c []uint64) (n int64, err error) {

	for len(c) > 0 {

		size := r.Size()
		if size>>3 == 0 {
			// Less than one word is buffered, fall back on a blocking read.
			var inc int64
			if inc, err = ReadUint64(r, &c[0]); err != nil {
				return n + inc, fmt.Errorf("cannot ReadUint64Slice: %w", err)
			}
			n += inc
			c = c[1:]
			continue
		}

		words := size >> 3
		if words > len(c) {
			words = len(c)
		}

		var slice []byte
		if slice, err = r.Peek(words << 3); err != nil && len(slice) < words<<3 {
			return n, fmt.Errorf("cannot ReadUint64Slice: %w", err)
		}

		for i, j := 0, 0; i < words; i, j = i+1, j+8 {
			c[i] = binary.LittleEndian.Uint64(slice[j:])
		}

		var inc int
		if inc, err = r.Discard(words << 3); err != nil {
			return n + int64(inc), fmt.Errorf("cannot ReadUint64Slice: %w", err)
		}

		n += int64(inc)
		c = c[words:]
	}

	return n, nil
}
