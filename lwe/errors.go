package lwe

import (
	"errors"
)

var (
	// ErrInvalidParameters is returned when a parameter set is invalid.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrContractViolation is returned when an operation is called with an
	// argument outside of its domain, for example a bit that is neither 0 nor 1,
	// a character that does not fit on 8 bits or keys and ciphertexts whose
	// dimensions do not match the parameters.
	ErrContractViolation = errors.New("contract violation")
)
