/*
Package lwecrypt is a pure Go implementation of a toy public-key bit-encryption scheme based on the
Learning With Errors (LWE) problem. The scheme itself lives in the lwe package; the ring and utils packages
provide the modular arithmetic, the randomness and the serialization it is built on, and cmd/lwe is a
command line demonstration of a full encryption round trip.
*/
package lwecrypt
