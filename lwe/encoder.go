package lwe

import (
	"fmt"
	"strings"
)

// BitsPerCharacter is the number of bits used to encode a character or a byte.
const BitsPerCharacter = 8

// EncodeBytes maps each byte of p to its 8 bits, most significant bit first,
// and concatenates them in order.
func EncodeBytes(p []byte) (bits []uint64) {
	bits = make([]uint64, 0, len(p)*BitsPerCharacter)
	for _, c := range p {
		for j := BitsPerCharacter - 1; j >= 0; j-- {
			bits = append(bits, uint64(c>>j)&1)
		}
	}
	return
}

// DecodeBytes regroups bits by 8, most significant bit first, into bytes.
// It returns an error wrapping ErrContractViolation if the number of bits is
// not a multiple of 8 or if a value is neither 0 nor 1.
func DecodeBytes(bits []uint64) (p []byte, err error) {

	if len(bits)%BitsPerCharacter != 0 {
		return nil, fmt.Errorf("cannot DecodeBytes: %w: number of bits %d is not a multiple of %d", ErrContractViolation, len(bits), BitsPerCharacter)
	}

	p = make([]byte, len(bits)/BitsPerCharacter)
	for i := range p {
		var c byte
		for _, bit := range bits[i*BitsPerCharacter : (i+1)*BitsPerCharacter] {
			if bit > 1 {
				return nil, fmt.Errorf("cannot DecodeBytes: %w: bit must be 0 or 1 but is %d", ErrContractViolation, bit)
			}
			c = c<<1 | byte(bit)
		}
		p[i] = c
	}

	return
}

// EncodeString maps each character of text to the 8 bits of its code point,
// most significant bit first, and concatenates them in order.
// It returns an error wrapping ErrContractViolation if a code point does not fit
// on 8 bits. Invalid UTF-8 sequences decode to U+FFFD and are rejected as well.
func EncodeString(text string) (bits []uint64, err error) {
	latin := make([]byte, 0, len(text))
	for i, c := range text {
		if c > 0xFF {
			return nil, fmt.Errorf("cannot EncodeString: %w: character %q at byte offset %d has code point %d > 255", ErrContractViolation, c, i, c)
		}
		latin = append(latin, byte(c))
	}
	return EncodeBytes(latin), nil
}

// DecodeString regroups bits by 8 into code points and returns the
// corresponding string. It is the inverse of EncodeString.
func DecodeString(bits []uint64) (text string, err error) {
	var p []byte
	if p, err = DecodeBytes(bits); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(p))
	for _, c := range p {
		sb.WriteRune(rune(c))
	}

	return sb.String(), nil
}
