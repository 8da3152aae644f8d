package coins

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/massconsensus/btccore/wire"
)

// ParseOutput is the query-by-index fast path: it scans buf's spent field
// and skips over the outputs before index using only their encoded length
// (never decoding them), then decodes and returns index's output. It
// returns ok=false, with no error, when index is spent or beyond the
// entry's recorded range -- the caller's ordinary "no such unspent output"
// case, distinct from a malformed buffer.
//
// txid identifies the outpoint's transaction the same way it does for
// Decode, kept as a parameter for interface symmetry with it even though an
// Output itself carries no txid -- only its containing Coins does.
//
// This exists so a storage layer can answer "is this outpoint unspent, and
// if so what's its script and value" without the Decode path's full
// per-output entry slice that a full Decode would otherwise allocate.
func ParseOutput(buf []byte, txid wire.Hash, index int) (*Output, bool, error) {
	_ = txid
	if len(buf) == 0 || index < 0 {
		return nil, false, nil
	}

	r := bytes.NewReader(buf)
	if _, err := wire.ReadVarInt(r); err != nil {
		return nil, false, errors.Wrap(err, "coins: reading version")
	}

	var b4 [4]byte
	if _, err := io.ReadFull(r, b4[:]); err != nil {
		return nil, false, errors.Wrap(err, "coins: reading bits")
	}

	flen, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, false, errors.Wrap(err, "coins: reading spent-field length")
	}
	if index >= int(flen)*8 {
		return nil, false, nil
	}
	spent := make([]byte, flen)
	if flen > 0 {
		if _, err := io.ReadFull(r, spent); err != nil {
			return nil, false, errors.Wrap(err, "coins: reading spent field")
		}
	}
	if spent[index/8]&(1<<uint(7-index%8)) != 0 {
		return nil, false, nil
	}

	rest := buf[len(buf)-r.Len():]
	for i := 0; i < index; i++ {
		if spent[i/8]&(1<<uint(7-i%8)) != 0 {
			continue
		}
		n, err := outputEncodedLen(rest)
		if err != nil {
			return nil, false, errors.Wrapf(err, "coins: skipping output %d", i)
		}
		rest = rest[n:]
	}

	n, err := outputEncodedLen(rest)
	if err != nil {
		return nil, false, errors.Wrapf(err, "coins: reading output %d", index)
	}
	out, err := decodeOutput(rest[:n])
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
