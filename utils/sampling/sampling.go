// Package sampling implements secure sampling of bytes and integers.
package sampling

import (
	"encoding/binary"
)

// randomBuffer is a pre-fetched block of PRNG output consumed by the samplers.
type randomBuffer struct {
	prng PRNG
	buff []byte
	ptr  int
}

func newRandomBuffer(prng PRNG) *randomBuffer {
	b := &randomBuffer{
		prng: prng,
		buff: make([]byte, 1024),
	}
	b.ptr = len(b.buff)
	return b
}

func (b *randomBuffer) refill() {
	if _, err := b.prng.Read(b.buff); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}
	b.ptr = 0
}

// nextUint64 returns the next 8 bytes of the buffer as a big-endian uint64.
func (b *randomBuffer) nextUint64() uint64 {
	if b.ptr+8 > len(b.buff) {
		b.refill()
	}
	v := binary.BigEndian.Uint64(b.buff[b.ptr : b.ptr+8])
	b.ptr += 8
	return v
}

// nextByte returns the next byte of the buffer.
func (b *randomBuffer) nextByte() byte {
	if b.ptr == len(b.buff) {
		b.refill()
	}
	v := b.buff[b.ptr]
	b.ptr++
	return v
}
