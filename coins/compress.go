package coins

import (
	"bytes"
	"io"

	"github.com/massconsensus/btccore/txscript"
	"github.com/massconsensus/btccore/wire"
)

// Script-compression prefix bytes: a pkScript shaped like one
// of the three common output types is stored as a fixed-width hash or key
// instead of its full opcode encoding.
const (
	scriptRaw             = 0x00
	scriptPubKeyHash       = 0x01
	scriptScriptHash       = 0x02
	scriptCompressedPubKey = 0x03
)

// compressScript returns the wire-format prefix byte and payload for
// pkScript, recognizing the three standard shapes the codec special-cases
// and falling back to a length-prefixed verbatim copy for anything else.
func compressScript(pkScript []byte) (prefix byte, payload []byte) {
	if h := txscript.ExtractPubKeyHash(pkScript); h != nil {
		return scriptPubKeyHash, h
	}
	if h := txscript.ExtractScriptHash(pkScript); h != nil {
		return scriptScriptHash, h
	}
	if k := txscript.ExtractCompressedPubKey(pkScript); k != nil {
		return scriptCompressedPubKey, k
	}

	var buf bytes.Buffer
	wire.WriteVarInt(&buf, uint64(len(pkScript)))
	buf.Write(pkScript)
	return scriptRaw, buf.Bytes()
}

// decompressScript reconstructs a pkScript given its compression prefix and
// the payload that follows it in r.
func decompressScript(prefix byte, r *bytes.Reader) ([]byte, error) {
	switch prefix {
	case scriptRaw:
		n, err := wire.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf, nil

	case scriptPubKeyHash:
		hash := make([]byte, 20)
		if _, err := io.ReadFull(r, hash); err != nil {
			return nil, err
		}
		b, err := txscript.NewScriptBuilder().
			AddOp(txscript.OP_DUP).
			AddOp(txscript.OP_HASH160).
			AddData(hash).
			AddOp(txscript.OP_EQUALVERIFY).
			AddOp(txscript.OP_CHECKSIG).
			Script()
		return b, err

	case scriptScriptHash:
		hash := make([]byte, 20)
		if _, err := io.ReadFull(r, hash); err != nil {
			return nil, err
		}
		b, err := txscript.NewScriptBuilder().
			AddOp(txscript.OP_HASH160).
			AddData(hash).
			AddOp(txscript.OP_EQUAL).
			Script()
		return b, err

	case scriptCompressedPubKey:
		key := make([]byte, 33)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, err
		}
		b, err := txscript.NewScriptBuilder().
			AddData(key).
			AddOp(txscript.OP_CHECKSIG).
			Script()
		return b, err
	}

	return nil, errInvalidCompressionPrefix
}
