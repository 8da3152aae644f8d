package blockvalidate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/massconsensus/btccore/wire"
)

func acceptHeader(*wire.BlockHeader) (string, bool) { return "", true }

func buildBlock(t *testing.T, txs []*wire.MsgTx) *wire.MsgBlock {
	t.Helper()
	leaves := make([]wire.Hash, len(txs))
	for i, tx := range txs {
		leaves[i] = tx.TxHash()
	}
	root, ok := MerkleRoot(leaves)
	require.True(t, ok, "test fixture produced a detectably-malleated merkle tree")
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			MerkleRoot: root,
			Timestamp:  time.Unix(1231006505, 0),
			Bits:       0x1d00ffff,
		},
		Transactions: txs,
	}
}

func TestVerifyNonContextualValidBlock(t *testing.T) {
	cb := coinbaseTx(1)
	tx := simpleTx(wire.Hash{0x01}, 1000)
	block := buildBlock(t, []*wire.MsgTx{cb, tx})

	result := VerifyNonContextual(block, acceptHeader)
	require.True(t, result.Valid, "expected a valid block, got reason %q", result.Reason)
}

func TestVerifyNonContextualMissingCoinbase(t *testing.T) {
	tx1 := simpleTx(wire.Hash{0x01}, 1000)
	tx2 := simpleTx(wire.Hash{0x02}, 1000)
	block := buildBlock(t, []*wire.MsgTx{tx1, tx2})

	result := VerifyNonContextual(block, acceptHeader)
	require.False(t, result.Valid)
	require.Equal(t, ReasonBadCoinbaseMissing, result.Reason)
}

func TestVerifyNonContextualMultipleCoinbase(t *testing.T) {
	cb1 := coinbaseTx(1)
	cb2 := coinbaseTx(1)
	block := buildBlock(t, []*wire.MsgTx{cb1, cb2})

	result := VerifyNonContextual(block, acceptHeader)
	require.False(t, result.Valid)
	require.Equal(t, ReasonBadCoinbaseMultiple, result.Reason)
}

func TestVerifyNonContextualHeaderRejected(t *testing.T) {
	cb := coinbaseTx(1)
	tx := simpleTx(wire.Hash{0x01}, 1000)
	block := buildBlock(t, []*wire.MsgTx{cb, tx})

	rejectHeader := func(*wire.BlockHeader) (string, bool) { return ReasonBadHeader, false }
	result := VerifyNonContextual(block, rejectHeader)
	require.False(t, result.Valid)
	require.Equal(t, ReasonBadHeader, result.Reason)
	require.Equal(t, 100, result.Score)
}

func TestVerifyNonContextualBadMerkleRoot(t *testing.T) {
	cb := coinbaseTx(1)
	tx := simpleTx(wire.Hash{0x01}, 1000)
	block := buildBlock(t, []*wire.MsgTx{cb, tx})
	block.Header.MerkleRoot[0] ^= 0xff

	result := VerifyNonContextual(block, acceptHeader)
	require.False(t, result.Valid)
	require.Equal(t, ReasonBadTxnMerkleRoot, result.Reason)
}

func TestVerifyNonContextualDuplicateTransactions(t *testing.T) {
	// Repeating a transaction gives the three-leaf level an adjacent
	// duplicate right where the odd-length padding step would otherwise
	// duplicate the last leaf anyway -- exactly the CVE-2012-2459 shape.
	// The header commits to the four-leaf root (cb, tx, tx, tx), which a
	// naive three-leaf computation that pads by duplication also produces.
	cb := coinbaseTx(1)
	tx := simpleTx(wire.Hash{0x01}, 1000)
	block := buildBlock(t, []*wire.MsgTx{cb, tx, tx, tx})
	block.Transactions = block.Transactions[:3]

	result := VerifyNonContextual(block, acceptHeader)
	require.False(t, result.Valid, "expected a duplicate-transaction block to be rejected")
	require.True(t, result.Reason == ReasonBadTxnsDuplicate || result.Reason == "bad-txns-inputs-duplicate",
		"expected a duplicate-transaction rejection, got %q", result.Reason)
}
