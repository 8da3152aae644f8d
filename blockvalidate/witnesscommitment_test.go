package blockvalidate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/massconsensus/btccore/wire"
)

func commitmentScript(commitment wire.Hash) []byte {
	script := append([]byte{}, witnessCommitmentHeader...)
	return append(script, commitment[:]...)
}

func TestVerifyWitnessCommitmentNoCommitmentOutput(t *testing.T) {
	cb := coinbaseTx(1)
	require.True(t, VerifyWitnessCommitment(cb, wire.Hash{}), "a coinbase with no commitment output is always accepted")
}

func TestVerifyWitnessCommitmentValid(t *testing.T) {
	cb := coinbaseTx(1)
	nonce := wire.Hash{0x11}
	witnessMerkleRoot := wire.Hash{0x22}

	buf := make([]byte, 0, 64)
	buf = append(buf, witnessMerkleRoot[:]...)
	buf = append(buf, nonce[:]...)
	commitment := wire.DoubleHashH(buf)

	cb.AddTxOut(wire.NewTxOut(0, commitmentScript(commitment)))
	cb.TxIn[0].Witness = wire.TxWitness{nonce[:]}

	require.True(t, VerifyWitnessCommitment(cb, witnessMerkleRoot))
}

func TestVerifyWitnessCommitmentMismatch(t *testing.T) {
	cb := coinbaseTx(1)
	cb.AddTxOut(wire.NewTxOut(0, commitmentScript(wire.Hash{0xaa})))
	cb.TxIn[0].Witness = wire.TxWitness{make([]byte, 32)}

	require.False(t, VerifyWitnessCommitment(cb, wire.Hash{0xbb}))
}

func TestFindWitnessCommitmentUsesLastMatch(t *testing.T) {
	cb := coinbaseTx(1)
	first := wire.Hash{0x01}
	second := wire.Hash{0x02}
	cb.AddTxOut(wire.NewTxOut(0, commitmentScript(first)))
	cb.AddTxOut(wire.NewTxOut(0, commitmentScript(second)))

	got, found := findWitnessCommitment(cb)
	require.True(t, found)
	require.Equal(t, second[:], got[:], "expected the last matching output to win")
}
