// Package lwe implements a public-key bit-encryption scheme based on the
// Learning With Errors (LWE) problem, in its simplified Regev form:
//
//   - the secret key is a vector s in Z_q^n,
//   - the public key is a pair (A, b = A*s + e) with A in Z_q^{m x n}, m = 2n,
//     and e a small rounded Gaussian error,
//   - a bit is encrypted as (u = A^T*r, v = <b, r> + bit*floor(q/2)) for a fresh
//     binary subset selector r in {0, 1}^m,
//   - a ciphertext is decrypted by rounding v - <s, u> to either 0 or floor(q/2).
//
// On top of the bit primitives, the package maps text and byte strings to
// sequences of bit-ciphertexts (8 bits per character, most significant bit first).
//
// The scheme is meant for teaching and experimentation: the parameters are toy
// parameters, ciphertexts are malleable and decryption fails silently with a
// small probability. It must not be used to protect real data.
package lwe
