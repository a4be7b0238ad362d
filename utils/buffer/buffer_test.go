package buffer

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	assert.Equal(t, []byte(nil), NewBuffer(nil).Bytes())
	assert.Equal(t, []byte{}, NewBuffer([]byte{}).Bytes())
	assert.Equal(t, []byte{1, 2, 3}, NewBuffer([]byte{1, 2, 3}).Bytes())
	assert.Equal(t, 16, NewBufferSize(16).Available())
}

func TestBuffer_FixedSize(t *testing.T) {
	b := NewBuffer([]byte{1, 2, 3})

	p, err := b.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, p)
	assert.Equal(t, 3, b.Size())

	p, err = b.Peek(4)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []byte{1, 2, 3}, p)

	n, err := b.Discard(4)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, b.Size())

	_, err = b.Write([]byte{4, 5, 6, 7})
	require.Error(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes())

	b.Reset()
	_, err = b.Write([]byte{9})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Available())
	assert.Equal(t, []byte{9, 2, 3}, b.Bytes())
}

func TestBuffer_WriteReadUint64(t *testing.T) {
	b := NewBufferSize(8)

	n, err := WriteUint64(b, 0x1122334455667788)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, b.Bytes())

	var c uint64
	n, err = ReadUint64(b, &c)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, uint64(0x1122334455667788), c)

	_, err = WriteUint64(b, 1)
	require.Error(t, err)

	_, err = ReadUint64(b, &c)
	require.Error(t, err)

	_, err = ReadUint64(b, nil)
	require.Error(t, err)
}

func TestBuffer_WriteReadUint64Slice(t *testing.T) {

	values := make([]uint64, 1000)
	for i := range values {
		values[i] = uint64(i) * 0x0101010101
	}

	t.Run("Buffer", func(t *testing.T) {
		b := NewBufferSize(len(values) << 3)

		n, err := WriteUint64Slice(b, values)
		require.NoError(t, err)
		assert.Equal(t, int64(len(values)<<3), n)

		got := make([]uint64, len(values))
		n, err = ReadUint64Slice(b, got)
		require.NoError(t, err)
		assert.Equal(t, int64(len(values)<<3), n)
		assert.Equal(t, values, got)
	})

	t.Run("Bufio", func(t *testing.T) {
		// Buffers smaller than the payload force intermediate flushes and peeks.
		var bb bytes.Buffer
		w := bufio.NewWriterSize(&bb, 64)

		_, err := WriteUint64Slice(w, values)
		require.NoError(t, err)
		require.NoError(t, w.Flush())
		assert.Equal(t, len(values)<<3, bb.Len())

		r := bufio.NewReaderSize(&bb, 64)
		got := make([]uint64, len(values))
		_, err = ReadUint64Slice(r, got)
		require.NoError(t, err)
		assert.Equal(t, values, got)
	})

	t.Run("ShortRead", func(t *testing.T) {
		b := NewBuffer(make([]byte, 12))
		_, err := ReadUint64Slice(b, make([]uint64, 2))
		require.Error(t, err)
	})
}
