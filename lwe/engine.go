package lwe

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lwecrypt/lwecrypt/utils/sampling"
)

// chunkSize is the number of bits encrypted by a single task of EncryptMessageParallel.
const chunkSize = 64

// Engine bundles a parameter set with a source of randomness and exposes the
// key generation, bit encryption and decryption and message encryption and
// decryption operations of the scheme.
//
// The Engine holds no key: keys are returned to the caller by GenerateKeys and
// passed explicitly to every operation (see Session for a convenience wrapper).
// Each call allocates its own samplers, so an Engine can be shared among
// goroutines as long as its PRNG is safe for concurrent use, which is the case
// for both sampling.ThreadSafePRNG and sampling.KeyedPRNG.
type Engine struct {
	params Parameters
	prng   sampling.PRNG
	logger *zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPRNG sets the source of randomness of the Engine.
// A sampling.KeyedPRNG makes key generation and sequential encryption reproducible.
func WithPRNG(prng sampling.PRNG) Option {
	return func(e *Engine) {
		e.prng = prng
	}
}

// WithLogger sets the logger of the Engine. By default the Engine does not log.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New returns an Engine for the parameters (n, q, sigma), see NewParameters.
func New(n int, q uint64, sigma float64, opts ...Option) (*Engine, error) {
	params, err := NewParameters(n, q, sigma)
	if err != nil {
		return nil, err
	}
	return NewEngine(params, opts...), nil
}

// NewDefault returns an Engine for the default parameters (n=128, q=2048, sigma=2.0).
func NewDefault(opts ...Option) *Engine {
	return NewEngine(NewDefaultParameters(), opts...)
}

// NewEngine returns an Engine for the given parameters.
func NewEngine(params Parameters, opts ...Option) *Engine {

	nop := zerolog.Nop()

	e := &Engine{
		params: params,
		logger: &nop,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.prng == nil {
		prng, err := sampling.NewPRNG()
		if err != nil {
			panic(err)
		}
		e.prng = prng
	}

	return e
}

// Parameters returns the parameters of the Engine.
func (e *Engine) Parameters() Parameters {
	return e.params
}

// GenerateKeys samples a new secret key s and the matching public key (A, b = A*s + e).
func (e *Engine) GenerateKeys() (pk *PublicKey, sk *SecretKey) {
	pk, sk = NewKeyGeneratorWithPRNG(e.params, e.prng).GenKeyPairNew()
	e.logger.Debug().
		Int("n", e.params.N()).
		Int("m", e.params.M()).
		Uint64("q", e.params.Q()).
		Int("publicKeyBytes", pk.BinarySize()).
		Msg("Generated LWE key pair")
	return
}

// EncryptBit encrypts a bit, 0 or 1, under pk.
func (e *Engine) EncryptBit(bit uint64, pk *PublicKey) (ct *Ciphertext, err error) {
	var enc *Encryptor
	if enc, err = NewEncryptorWithPRNG(e.params, pk, e.prng); err != nil {
		return
	}
	return enc.EncryptNew(bit)
}

// DecryptBit decrypts ct with sk and returns a bit, 0 or 1.
func (e *Engine) DecryptBit(ct *Ciphertext, sk *SecretKey) (bit uint64, err error) {
	var dec *Decryptor
	if dec, err = NewDecryptor(e.params, sk); err != nil {
		return
	}
	return dec.DecryptNew(ct)
}

// EncryptMessage encrypts text bit by bit under pk, see EncodeString.
// It returns one ciphertext per bit, 8 per character, in order.
func (e *Engine) EncryptMessage(text string, pk *PublicKey) (cts CiphertextBatch, err error) {
	var bits []uint64
	if bits, err = EncodeString(text); err != nil {
		return
	}
	return e.encryptBits(bits, pk)
}

// DecryptMessage decrypts cts with sk and decodes the bits into a string, see DecodeString.
// It returns an error if len(cts) is not a multiple of 8.
func (e *Engine) DecryptMessage(cts CiphertextBatch, sk *SecretKey) (text string, err error) {
	var bits []uint64
	if bits, err = e.decryptBits(cts, sk); err != nil {
		return
	}
	return DecodeString(bits)
}

// EncryptBytes encrypts p bit by bit under pk, see EncodeBytes.
func (e *Engine) EncryptBytes(p []byte, pk *PublicKey) (cts CiphertextBatch, err error) {
	return e.encryptBits(EncodeBytes(p), pk)
}

// DecryptBytes decrypts cts with sk and decodes the bits into bytes, see DecodeBytes.
func (e *Engine) DecryptBytes(cts CiphertextBatch, sk *SecretKey) (p []byte, err error) {
	var bits []uint64
	if bits, err = e.decryptBits(cts, sk); err != nil {
		return
	}
	return DecodeBytes(bits)
}

// EncryptMessageParallel is identical to EncryptMessage, except that the bits are
// encrypted by up to workers goroutines. If workers <= 0, runtime.GOMAXPROCS(0)
// is used. The order of the ciphertexts is preserved, but the output is not
// reproducible even with a keyed PRNG, since the workers consume it concurrently.
func (e *Engine) EncryptMessageParallel(ctx context.Context, text string, pk *PublicKey, workers int) (cts CiphertextBatch, err error) {

	var bits []uint64
	if bits, err = EncodeString(text); err != nil {
		return
	}

	var enc *Encryptor
	if enc, err = NewEncryptorWithPRNG(e.params, pk, e.prng); err != nil {
		return
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	cts = make(CiphertextBatch, len(bits))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(bits); start += chunkSize {

		end := start + chunkSize
		if end > len(bits) {
			end = len(bits)
		}

		start := start
		g.Go(func() error {

			if err := ctx.Err(); err != nil {
				return err
			}

			enc := enc.ShallowCopy()
			for i := start; i < end; i++ {
				ct, err := enc.EncryptNew(bits[i])
				if err != nil {
					return fmt.Errorf("bit %d: %w", i, err)
				}
				cts[i] = ct
			}

			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug().Int("bits", len(bits)).Int("workers", workers).Msg("Encrypted message")

	return cts, nil
}

// NewSession generates a fresh key pair and returns a Session bound to it.
func (e *Engine) NewSession() *Session {
	pk, sk := e.GenerateKeys()
	return NewSession(e, pk, sk)
}

func (e *Engine) encryptBits(bits []uint64, pk *PublicKey) (cts CiphertextBatch, err error) {
	var enc *Encryptor
	if enc, err = NewEncryptorWithPRNG(e.params, pk, e.prng); err != nil {
		return
	}

	if cts, err = enc.EncryptBitsNew(bits); err != nil {
		return
	}

	e.logger.Debug().Int("bits", len(bits)).Msg("Encrypted message")

	return
}

func (e *Engine) decryptBits(cts CiphertextBatch, sk *SecretKey) (bits []uint64, err error) {

	if len(cts)%BitsPerCharacter != 0 {
		return nil, fmt.Errorf("cannot decrypt: %w: number of ciphertexts %d is not a multiple of %d", ErrContractViolation, len(cts), BitsPerCharacter)
	}

	var dec *Decryptor
	if dec, err = NewDecryptor(e.params, sk); err != nil {
		return
	}

	return dec.DecryptBitsNew(cts)
}
