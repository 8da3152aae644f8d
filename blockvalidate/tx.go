package blockvalidate

import (
	"github.com/massconsensus/btccore/wire"
)

// CheckTransactionSanity performs the structural checks a transaction must
// pass independent of the chain it's being considered for: it has at least
// one input and one output, its serialized base size doesn't exceed the
// block size ceiling, every output value is in range, no input refers to
// the null outpoint unless the transaction is a coinbase (and a coinbase
// refers to nothing else), and no two inputs spend the same outpoint.
func CheckTransactionSanity(tx *wire.MsgTx) (string, bool) {
	if len(tx.TxIn) == 0 {
		return "bad-txns-vin-empty", false
	}
	if len(tx.TxOut) == 0 {
		return "bad-txns-vout-empty", false
	}
	if tx.BaseSize() > MaxBlockSize {
		return "bad-txns-oversize", false
	}

	var total int64
	for _, out := range tx.TxOut {
		if out.Value < 0 || out.Value > MaxMoney {
			return "bad-txns-vout-negative", false
		}
		total += out.Value
		if total > MaxMoney {
			return "bad-txns-txouttotal-toolarge", false
		}
	}

	isCoinBase := tx.IsCoinBase()
	seen := make(map[wire.OutPoint]struct{}, len(tx.TxIn))
	for _, in := range tx.TxIn {
		if _, dup := seen[in.PreviousOutPoint]; dup {
			return "bad-txns-inputs-duplicate", false
		}
		seen[in.PreviousOutPoint] = struct{}{}

		null := in.PreviousOutPoint.Index == 0xffffffff && in.PreviousOutPoint.Hash == (wire.Hash{})
		if null && !isCoinBase {
			return "bad-txns-prevout-null", false
		}
	}

	if isCoinBase {
		l := len(tx.TxIn[0].SignatureScript)
		if l < 2 || l > 100 {
			return "bad-cb-length", false
		}
	} else {
		for _, in := range tx.TxIn {
			if in.PreviousOutPoint.Index == 0xffffffff && in.PreviousOutPoint.Hash == (wire.Hash{}) {
				return "bad-txns-prevout-null", false
			}
		}
	}

	return "", true
}
