// Package ecc provides the fixed-width digest functions and ECDSA signature
// verifier that the script interpreter and coins codec build on. Nothing in
// this package is consensus logic in its own right; it's the concrete
// hash160/hash256/ec_verify primitives the rest of the module calls.
package ecc

import (
	"crypto/sha1" // #nosec G505 -- consensus opcode OP_SHA1, not used for security here
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Sha256 returns the SHA-256 digest of b.
func Sha256(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// Sha1 returns the SHA-1 digest of b.
func Sha1(b []byte) []byte {
	sum := sha1.Sum(b)
	return sum[:]
}

// Ripemd160 returns the RIPEMD-160 digest of b.
func Ripemd160(b []byte) []byte {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)
}

// Hash160 returns RIPEMD160(SHA256(b)).
func Hash160(b []byte) []byte {
	return Ripemd160(Sha256(b))
}

// Hash256 returns SHA256(SHA256(b)).
func Hash256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}
