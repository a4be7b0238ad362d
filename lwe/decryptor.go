package lwe

import (
	"fmt"

	"github.com/lwecrypt/lwecrypt/ring"
)

// Decryptor decrypts bit-ciphertexts with a SecretKey.
// It holds no mutable state and can be used concurrently.
type Decryptor struct {
	params Parameters
	sk     *SecretKey
}

// NewDecryptor instantiates a new Decryptor.
// It returns an error if the dimension of the secret key does not match the parameters.
func NewDecryptor(params Parameters, sk *SecretKey) (*Decryptor, error) {

	if sk == nil {
		return nil, fmt.Errorf("cannot NewDecryptor: %w: secret key is nil", ErrContractViolation)
	}

	if sk.N() != params.N() {
		return nil, fmt.Errorf("cannot NewDecryptor: %w: secret key dimension %d != n=%d", ErrContractViolation, sk.N(), params.N())
	}

	return &Decryptor{
		params: params,
		sk:     sk,
	}, nil
}

// Phase returns v - <s, u> mod q, that is bit * floor(q/2) + <e, r> mod q
// when ct was encrypted under the public key matching the secret key.
func (dec Decryptor) Phase(ct *Ciphertext) (phase uint64, err error) {

	if ct == nil || len(ct.U) != dec.params.N() {
		return 0, fmt.Errorf("cannot Phase: %w: ciphertext dimension does not match n=%d", ErrContractViolation, dec.params.N())
	}

	q := dec.params.Q()

	return ring.Sub(ring.Reduce(ct.V, q), ring.DotMod(ct.U, dec.sk.Value, q), q), nil
}

// DecryptNew decrypts ct and returns the bit it encrypts.
// The returned value is always 0 or 1. A wrong bit is returned, without error,
// if the noise accumulated during the encryption exceeds the decoding threshold.
func (dec Decryptor) DecryptNew(ct *Ciphertext) (bit uint64, err error) {
	var phase uint64
	if phase, err = dec.Phase(ct); err != nil {
		return
	}
	return DecodePhase(phase, dec.params.Q()), nil
}

// DecryptBitsNew decrypts each ciphertext of cts and returns the bits, in order.
func (dec Decryptor) DecryptBitsNew(cts CiphertextBatch) (bits []uint64, err error) {
	bits = make([]uint64, len(cts))
	for i, ct := range cts {
		if bits[i], err = dec.DecryptNew(ct); err != nil {
			return nil, fmt.Errorf("ciphertext %d: %w", i, err)
		}
	}
	return
}

// DecodePhase maps a phase in [0, q-1] to the closest of 0 and floor(q/2).
// It returns 0 if the phase is strictly closer to 0 (on Z_q) than to floor(q/2),
// and 1 otherwise: ties resolve to 1.
func DecodePhase(phase, q uint64) uint64 {

	half := q >> 1

	dist0 := ring.CircularDistance(phase, 0, q)

	var distHalf uint64
	if phase >= half {
		distHalf = phase - half
	} else {
		distHalf = half - phase
	}

	if dist0 < distHalf {
		return 0
	}

	return 1
}
