package lwe

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"

	"github.com/lwecrypt/lwecrypt/ring"
	"github.com/lwecrypt/lwecrypt/utils/sampling"
)

const (
	// DefaultN is the default lattice dimension.
	DefaultN = 128
	// DefaultQ is the default modulus.
	DefaultQ = 2048
	// DefaultSigma is the default standard deviation of the error.
	DefaultSigma = 2.0
)

// DefaultParametersLiteral is the default parameter set (n=128, q=2048, sigma=2.0).
var DefaultParametersLiteral = ParametersLiteral{
	N:     DefaultN,
	Q:     DefaultQ,
	Sigma: DefaultSigma,
}

// ParametersLiteral is a literal representation of LWE parameters. It has public
// fields and is used to express unchecked user-defined parameters literally into
// Go programs or configuration files. The NewParametersFromLiteral function is
// used to generate the actual checked parameters from the literal representation.
type ParametersLiteral struct {
	N     int     `json:"n" yaml:"n"`
	Q     uint64  `json:"q" yaml:"q"`
	Sigma float64 `json:"sigma" yaml:"sigma"`
}

// Parameters represents a set of LWE parameters. Its fields are private and
// immutable. See ParametersLiteral for user-specified parameters.
type Parameters struct {
	n     int
	q     uint64
	sigma float64
}

// NewParameters returns a new set of LWE parameters from the lattice dimension n,
// the modulus q and the standard deviation sigma of the error distribution.
// It returns the empty parameters Parameters{} and an error wrapping
// ErrInvalidParameters if n <= 0, q <= 1, q > ring.MaxModulus or if sigma is
// negative, not finite or larger than q.
func NewParameters(n int, q uint64, sigma float64) (params Parameters, err error) {

	switch {
	case n <= 0:
		return Parameters{}, fmt.Errorf("%w: n must be positive but is %d", ErrInvalidParameters, n)
	case q <= 1:
		return Parameters{}, fmt.Errorf("%w: q must be greater than 1 but is %d", ErrInvalidParameters, q)
	case q > ring.MaxModulus:
		return Parameters{}, fmt.Errorf("%w: q must be at most 2^62 but is %d", ErrInvalidParameters, q)
	case math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0:
		return Parameters{}, fmt.Errorf("%w: sigma must be a non-negative real but is %f", ErrInvalidParameters, sigma)
	case sigma > float64(q):
		return Parameters{}, fmt.Errorf("%w: sigma must be at most q=%d but is %g", ErrInvalidParameters, q, sigma)
	}

	return Parameters{
		n:     n,
		q:     q,
		sigma: sigma,
	}, nil
}

// NewParametersFromLiteral instantiate a set of LWE parameters from a ParametersLiteral specification.
// It returns the empty parameters Parameters{} and a non-nil error if the specified parameters are invalid.
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {
	return NewParameters(paramDef.N, paramDef.Q, paramDef.Sigma)
}

// NewDefaultParameters returns the parameters of DefaultParametersLiteral.
func NewDefaultParameters() Parameters {
	params, err := NewParametersFromLiteral(DefaultParametersLiteral)
	if err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}
	return params
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		N:     p.n,
		Q:     p.q,
		Sigma: p.sigma,
	}
}

// N returns the lattice dimension, i.e. the size of the secret key.
func (p Parameters) N() int {
	return p.n
}

// M returns the number of LWE samples of the public key, i.e. 2n.
func (p Parameters) M() int {
	return 2 * p.n
}

// Q returns the modulus.
func (p Parameters) Q() uint64 {
	return p.q
}

// Sigma returns the standard deviation of the error distribution.
func (p Parameters) Sigma() float64 {
	return p.sigma
}

// NoiseBound returns the largest absolute value taken by the error,
// min(ceil(6*sigma), q).
func (p Parameters) NoiseBound() int64 {
	bound := math.Ceil(sampling.DefaultNoiseBound * p.sigma)
	if bound >= float64(p.q) {
		return int64(p.q)
	}
	return int64(bound)
}

// Delta returns the encoding of the bit 1, floor(q/2).
func (p Parameters) Delta() uint64 {
	return p.q >> 1
}

// LogQ returns the size of the modulus in bits.
func (p Parameters) LogQ() float64 {
	return math.Log2(float64(p.q))
}

// Equal checks two Parameter structs for equality.
func (p Parameters) Equal(other Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// String returns a compact representation of the parameters.
func (p Parameters) String() string {
	return fmt.Sprintf("n=%d/m=%d/q=%d/sigma=%g", p.N(), p.M(), p.Q(), p.Sigma())
}

// MarshalJSON returns a JSON representation of this parameter set. See `Marshal` from the `encoding/json` package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See `Unmarshal` from the `encoding/json` package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
