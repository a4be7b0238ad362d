package lwe

import (
	"fmt"

	"github.com/lwecrypt/lwecrypt/ring"
	"github.com/lwecrypt/lwecrypt/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to create new keys.
// It is not safe for concurrent use, see ShallowCopy.
type KeyGenerator struct {
	params          Parameters
	prng            sampling.PRNG
	uniformSampler  *sampling.UniformSampler
	gaussianSampler *sampling.GaussianSampler
}

// NewKeyGenerator creates a new KeyGenerator drawing its randomness from crypto/rand.
func NewKeyGenerator(params Parameters) *KeyGenerator {
	prng, err := sampling.NewPRNG()
	if err != nil {
		panic(err)
	}
	return NewKeyGeneratorWithPRNG(params, prng)
}

// NewKeyGeneratorWithPRNG creates a new KeyGenerator drawing its randomness from the given PRNG.
// A sampling.KeyedPRNG makes the generated keys reproducible.
func NewKeyGeneratorWithPRNG(params Parameters, prng sampling.PRNG) *KeyGenerator {
	return &KeyGenerator{
		params:          params,
		prng:            prng,
		uniformSampler:  sampling.NewUniformSampler(prng, params.Q()),
		gaussianSampler: sampling.NewGaussianSamplerWithBound(prng, params.Sigma(), params.NoiseBound()),
	}
}

// ShallowCopy creates a shallow copy of the KeyGenerator in which all the read-only data-structures are
// shared with the receiver and the samplers are reallocated. The receiver and the returned
// KeyGenerator can be used concurrently.
func (kgen KeyGenerator) ShallowCopy() *KeyGenerator {
	return NewKeyGeneratorWithPRNG(kgen.params, kgen.prng)
}

// GenSecretKeyNew generates a new SecretKey with coefficients uniformly distributed in [0, q-1].
func (kgen *KeyGenerator) GenSecretKeyNew() (sk *SecretKey) {
	sk = NewSecretKey(kgen.params)
	kgen.GenSecretKey(sk)
	return
}

// GenSecretKey generates a SecretKey with coefficients uniformly distributed in [0, q-1] on sk.
func (kgen *KeyGenerator) GenSecretKey(sk *SecretKey) {
	if len(sk.Value) != kgen.params.N() {
		sk.Value = make([]uint64, kgen.params.N())
	}
	kgen.uniformSampler.Read(sk.Value)
}

// GenPublicKeyNew generates a new PublicKey from the provided SecretKey.
func (kgen *KeyGenerator) GenPublicKeyNew(sk *SecretKey) (pk *PublicKey, err error) {
	pk = NewPublicKey(kgen.params)
	return pk, kgen.GenPublicKey(sk, pk)
}

// GenPublicKey generates a PublicKey from the provided SecretKey on pk:
// A is sampled uniformly in Z_q^{m x n}, e is sampled from the rounded Gaussian
// distribution and B = A*s + e mod q.
func (kgen *KeyGenerator) GenPublicKey(sk *SecretKey, pk *PublicKey) (err error) {

	params := kgen.params

	if sk.N() != params.N() {
		return fmt.Errorf("cannot GenPublicKey: %w: secret key dimension %d != n=%d", ErrContractViolation, sk.N(), params.N())
	}

	if pk.M() != params.M() || pk.N() != params.N() || len(pk.A) != params.M() {
		*pk = *NewPublicKey(params)
	}

	q := params.Q()

	for i := range pk.A {
		kgen.uniformSampler.Read(pk.A[i])
	}

	e := kgen.gaussianSampler.ReadNew(params.M())

	ring.MulMatVecMod(pk.A, sk.Value, pk.B, q)
	ring.AddSignedVec(pk.B, e, pk.B, q)

	return
}

// GenKeyPairNew generates a new SecretKey and a corresponding PublicKey.
func (kgen *KeyGenerator) GenKeyPairNew() (pk *PublicKey, sk *SecretKey) {
	sk = kgen.GenSecretKeyNew()
	var err error
	if pk, err = kgen.GenPublicKeyNew(sk); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}
	return
}
