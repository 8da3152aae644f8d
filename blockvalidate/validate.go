package blockvalidate

import (
	"github.com/massconsensus/btccore/logging"
	"github.com/massconsensus/btccore/txscript"
	"github.com/massconsensus/btccore/wire"
)

// HeaderVerifier checks a block header's proof-of-work and timestamp
// sanity; it is a named external collaborator, not something this package
// computes itself, since those checks depend on chain parameters this
// function doesn't otherwise need.
type HeaderVerifier func(header *wire.BlockHeader) (reason string, ok bool)

// VerifyNonContextual runs every check a block must pass on its own,
// without reference to the chain it would extend: header validity, size
// and coinbase-position rules, per-transaction sanity, the sigops weight
// ceiling, and the Merkle root. It stops at the first failure and reports
// it as a Result.
func VerifyNonContextual(block *wire.MsgBlock, verifyHeader HeaderVerifier) Result {
	if reason, ok := verifyHeader(&block.Header); !ok {
		logging.CPrint(logging.WARN, "block header failed verification",
			logging.LogFormat{"reason": reason})
		return fail(reason, 100)
	}

	if len(block.Transactions) == 0 || len(block.Transactions) > MaxBlockSize ||
		block.BaseSize() > MaxBlockSize {
		return fail(ReasonBadBlockLength, 100)
	}

	if !block.Transactions[0].IsCoinBase() {
		return fail(ReasonBadCoinbaseMissing, 100)
	}
	for _, tx := range block.Transactions[1:] {
		if tx.IsCoinBase() {
			return fail(ReasonBadCoinbaseMultiple, 100)
		}
	}

	for _, tx := range block.Transactions {
		if reason, ok := CheckTransactionSanity(tx); !ok {
			return fail(reason, 100)
		}
	}

	sigops := 0
	for _, tx := range block.Transactions {
		for _, in := range tx.TxIn {
			sigops += txscript.GetSigOpCount(in.SignatureScript)
		}
		for _, out := range tx.TxOut {
			sigops += txscript.GetSigOpCount(out.PkScript)
		}
	}
	if sigops*WitnessScaleFactor > MaxSigopsWeight {
		return fail(ReasonBadBlockSigops, 100)
	}

	leaves := make([]wire.Hash, len(block.Transactions))
	for i, tx := range block.Transactions {
		leaves[i] = tx.TxHash()
	}
	root, valid := MerkleRoot(leaves)
	if !valid {
		return fail(ReasonBadTxnsDuplicate, 100)
	}
	if root != block.Header.MerkleRoot {
		return fail(ReasonBadTxnMerkleRoot, 100)
	}

	return ok()
}
