package blockvalidate

import (
	"bytes"

	"github.com/massconsensus/btccore/wire"
)

// witnessCommitmentHeader is the fixed prefix (OP_RETURN, push-36,
// commitment-header) that marks a coinbase output as carrying the witness
// commitment (BIP141).
var witnessCommitmentHeader = []byte{0x6a, 0x24, 0xaa, 0x21, 0xa9, 0xed}

// findWitnessCommitment returns the 32-byte commitment carried by the last
// coinbase output whose script begins with witnessCommitmentHeader, and
// whether one was found.
func findWitnessCommitment(coinbase *wire.MsgTx) (commitment wire.Hash, found bool) {
	for i := len(coinbase.TxOut) - 1; i >= 0; i-- {
		script := coinbase.TxOut[i].PkScript
		if len(script) >= 38 && bytes.HasPrefix(script, witnessCommitmentHeader) {
			copy(commitment[:], script[6:38])
			return commitment, true
		}
	}
	return wire.Hash{}, false
}

// VerifyWitnessCommitment checks that the coinbase's witness commitment, if
// present, matches hash256(witnessMerkleRoot || witnessNonce), where
// witnessNonce is the coinbase's sole 32-byte witness item. A block with no
// segwit transactions and no commitment output is not required to carry
// one.
func VerifyWitnessCommitment(coinbase *wire.MsgTx, witnessMerkleRoot wire.Hash) bool {
	commitment, found := findWitnessCommitment(coinbase)
	if !found {
		return true
	}

	var nonce wire.Hash
	if len(coinbase.TxIn) == 1 && len(coinbase.TxIn[0].Witness) == 1 &&
		len(coinbase.TxIn[0].Witness[0]) == wire.HashSize {
		copy(nonce[:], coinbase.TxIn[0].Witness[0])
	}

	buf := make([]byte, 0, 64)
	buf = append(buf, witnessMerkleRoot[:]...)
	buf = append(buf, nonce[:]...)
	expected := wire.DoubleHashH(buf)
	return expected == commitment
}
