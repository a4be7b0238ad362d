package lwe

import (
	"fmt"

	"github.com/lwecrypt/lwecrypt/ring"
	"github.com/lwecrypt/lwecrypt/utils/sampling"
)

// Encryptor encrypts bits under a PublicKey.
// It is not safe for concurrent use, see ShallowCopy.
type Encryptor struct {
	params        Parameters
	pk            *PublicKey
	prng          sampling.PRNG
	binarySampler *sampling.BinarySampler
	r             []uint64
}

// NewEncryptor creates a new Encryptor drawing its randomness from crypto/rand.
// It returns an error if the dimensions of the public key do not match the parameters.
func NewEncryptor(params Parameters, pk *PublicKey) (*Encryptor, error) {
	prng, err := sampling.NewPRNG()
	if err != nil {
		return nil, err
	}
	return NewEncryptorWithPRNG(params, pk, prng)
}

// NewEncryptorWithPRNG creates a new Encryptor drawing its randomness from the given PRNG.
func NewEncryptorWithPRNG(params Parameters, pk *PublicKey, prng sampling.PRNG) (*Encryptor, error) {

	if err := checkPublicKey(params, pk); err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}

	return &Encryptor{
		params:        params,
		pk:            pk,
		prng:          prng,
		binarySampler: sampling.NewBinarySampler(prng),
		r:             make([]uint64, params.M()),
	}, nil
}

// ShallowCopy creates a shallow copy of the Encryptor in which the parameters and the
// public key are shared with the receiver and the sampler and buffers are reallocated.
// The receiver and the returned Encryptor can be used concurrently.
func (enc Encryptor) ShallowCopy() *Encryptor {
	return &Encryptor{
		params:        enc.params,
		pk:            enc.pk,
		prng:          enc.prng,
		binarySampler: sampling.NewBinarySampler(enc.prng),
		r:             make([]uint64, enc.params.M()),
	}
}

// EncryptNew encrypts a bit on a newly allocated Ciphertext.
func (enc *Encryptor) EncryptNew(bit uint64) (ct *Ciphertext, err error) {
	ct = NewCiphertext(enc.params)
	return ct, enc.Encrypt(bit, ct)
}

// Encrypt encrypts a bit on ct:
//
//	r <- {0, 1}^m
//	u = A^T * r mod q
//	v = <b, r> + bit * floor(q/2) mod q
//
// A fresh r is sampled at each call. It returns an error wrapping
// ErrContractViolation if the bit is neither 0 nor 1.
func (enc *Encryptor) Encrypt(bit uint64, ct *Ciphertext) (err error) {

	if bit > 1 {
		return fmt.Errorf("cannot Encrypt: %w: bit must be 0 or 1 but is %d", ErrContractViolation, bit)
	}

	if len(ct.U) != enc.params.N() {
		ct.U = make([]uint64, enc.params.N())
	}

	q := enc.params.Q()
	pk := enc.pk
	r := enc.r

	enc.binarySampler.Read(r)

	ring.MulMatTransposeVecMod(pk.A, r, ct.U, q)

	var v uint64
	for i, ri := range r {
		if ri == 1 {
			v = ring.CRed(v+pk.B[i], q)
		}
	}

	ct.V = ring.CRed(v+bit*enc.params.Delta(), q)

	return
}

// EncryptBitsNew encrypts each bit of bits on a newly allocated CiphertextBatch, in order.
func (enc *Encryptor) EncryptBitsNew(bits []uint64) (cts CiphertextBatch, err error) {
	cts = make(CiphertextBatch, len(bits))
	for i, bit := range bits {
		if cts[i], err = enc.EncryptNew(bit); err != nil {
			return nil, fmt.Errorf("bit %d: %w", i, err)
		}
	}
	return
}

// checkPublicKey checks that pk has the dimensions of params and that all its
// entries are reduced modulo q.
func checkPublicKey(params Parameters, pk *PublicKey) error {
	if pk == nil {
		return fmt.Errorf("%w: public key is nil", ErrContractViolation)
	}

	if len(pk.A) != params.M() || len(pk.B) != params.M() {
		return fmt.Errorf("%w: public key has %d rows and %d samples but m=%d", ErrContractViolation, len(pk.A), len(pk.B), params.M())
	}

	q := params.Q()

	for i := range pk.A {
		if len(pk.A[i]) != params.N() {
			return fmt.Errorf("%w: public key row %d has dimension %d but n=%d", ErrContractViolation, i, len(pk.A[i]), params.N())
		}

		for j, aij := range pk.A[i] {
			if aij >= q {
				return fmt.Errorf("%w: public key entry A[%d][%d]=%d is not reduced modulo q=%d", ErrContractViolation, i, j, aij, q)
			}
		}

		if pk.B[i] >= q {
			return fmt.Errorf("%w: public key entry B[%d]=%d is not reduced modulo q=%d", ErrContractViolation, i, pk.B[i], q)
		}
	}

	return nil
}
