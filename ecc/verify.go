package ecc

import (
	"github.com/btcsuite/btcd/btcec"
)

// Verify parses a DER signature and a (compressed or uncompressed) public
// key and checks the ECDSA signature over msgHash. Malformed input is a
// verification failure, not an error: a script either produces a true
// top-of-stack or it does not.
func Verify(msgHash [32]byte, derSig, pubKey []byte) bool {
	sig, err := btcec.ParseDERSignature(derSig, btcec.S256())
	if err != nil {
		return false
	}
	key, err := btcec.ParsePubKey(pubKey, btcec.S256())
	if err != nil {
		return false
	}
	return sig.Verify(msgHash[:], key)
}
