// Package wire defines the consensus wire types consumed by the script
// interpreter, block validator, and coins codec: hashes, transactions,
// blocks, and their serialization. Trimmed to what Bitcoin's consensus
// core needs (no network messages, no protocol version negotiation).
package wire

import (
	"encoding/hex"
	"errors"

	"github.com/massconsensus/btccore/ecc"
)

// HashSize is the number of bytes in a double-SHA256 hash.
const HashSize = 32

// Hash is a double-SHA256 digest, stored internally in the same
// internal/little-endian-on-the-wire byte order bitcoind uses.
type Hash [HashSize]byte

// String returns the hash as a reversed (big-endian, for display) hex string.
func (h Hash) String() string {
	var reversed Hash
	for i := 0; i < HashSize/2; i++ {
		reversed[i], reversed[HashSize-1-i] = h[HashSize-1-i], h[i]
	}
	return hex.EncodeToString(reversed[:])
}

// IsEqual reports whether h and other represent the same hash.
func (h *Hash) IsEqual(other *Hash) bool {
	if h == nil || other == nil {
		return h == other
	}
	return *h == *other
}

// NewHashFromStr parses a reversed hex string into a Hash.
func NewHashFromStr(s string) (*Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != HashSize {
		return nil, errors.New("wire: invalid hash string length")
	}
	var h Hash
	for i := 0; i < HashSize; i++ {
		h[i] = b[HashSize-1-i]
	}
	return &h, nil
}

// DoubleHashB returns hash256(b) = SHA256(SHA256(b)) as a raw byte slice.
func DoubleHashB(b []byte) []byte {
	return ecc.Hash256(b)
}

// DoubleHashH returns hash256(b) as a Hash.
func DoubleHashH(b []byte) Hash {
	var h Hash
	copy(h[:], ecc.Hash256(b))
	return h
}
