package coins

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/massconsensus/btccore/wire"
)

// unconfirmedHeight is the sentinel stored in place of an actual height to
// mean "this transaction's containing block is not yet known" (height -1).
const unconfirmedHeight uint32 = 0x7fffffff

func encodeBits(height int64, isCoinBase bool) uint32 {
	h := unconfirmedHeight
	if height >= 0 {
		h = uint32(height)
	}
	bits := h << 1
	if isCoinBase {
		bits |= 1
	}
	return bits
}

func decodeBits(bits uint32) (height int64, isCoinBase bool) {
	isCoinBase = bits&1 != 0
	h := bits >> 1
	if h == unconfirmedHeight {
		return -1, isCoinBase
	}
	return int64(h), isCoinBase
}

// Encode serializes c to its on-disk wire form. A fully-spent Coins value
// (or one built from no unspent outputs at all) encodes as nil, per §4.6's
// contract that the caller deletes rather than stores such an entry.
func (c *Coins) Encode() ([]byte, error) {
	if len(c.entries) == 0 || c.IsFullySpent() {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := wire.WriteVarInt(&buf, c.Version); err != nil {
		return nil, err
	}

	var b4 [4]byte
	binary.LittleEndian.PutUint32(b4[:], encodeBits(c.Height, c.IsCoinBase))
	buf.Write(b4[:])

	if err := wire.WriteVarInt(&buf, uint64(len(c.spent))); err != nil {
		return nil, err
	}
	buf.Write(c.spent)

	for i, e := range c.entries {
		if e == nil {
			continue
		}
		if e.raw != nil && e.decoded == nil {
			buf.Write(e.raw)
			continue
		}
		if err := encodeOutput(&buf, e.decoded); err != nil {
			return nil, errors.Wrapf(err, "coins: encoding output %d", i)
		}
	}
	return buf.Bytes(), nil
}

func encodeOutput(buf *bytes.Buffer, out *Output) error {
	prefix, payload := compressScript(out.PkScript)
	buf.WriteByte(prefix)
	buf.Write(payload)
	return wire.WriteVarInt(buf, uint64(out.Value))
}

// decodeOutput reads one compressed output (prefix, script payload, varint
// value) from raw, the exact byte span Decode recorded for it.
func decodeOutput(raw []byte) (*Output, error) {
	r := bytes.NewReader(raw)
	prefix, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	pkScript, err := decompressScript(prefix, r)
	if err != nil {
		return nil, err
	}
	value, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	return &Output{Value: int64(value), PkScript: pkScript}, nil
}

// outputEncodedLen returns the number of bytes the compressed output
// starting at buf[0:] occupies, without fully decoding it, so Decode can
// slice out each entry's raw span and parse_coin can skip past outputs it
// isn't looking for.
func outputEncodedLen(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, errors.New("coins: truncated output entry")
	}
	prefix := buf[0]
	off := 1
	switch prefix {
	case scriptRaw:
		r := bytes.NewReader(buf[off:])
		n, err := wire.ReadVarInt(r)
		if err != nil {
			return 0, err
		}
		off += varIntLen(buf[off:]) + int(n)
	case scriptPubKeyHash, scriptScriptHash:
		off += 20
	case scriptCompressedPubKey:
		off += 33
	default:
		return 0, errInvalidCompressionPrefix
	}
	if off > len(buf) {
		return 0, errors.New("coins: truncated output entry")
	}
	r := bytes.NewReader(buf[off:])
	if _, err := wire.ReadVarInt(r); err != nil {
		return 0, err
	}
	return off + varIntLen(buf[off:]), nil
}

// varIntLen returns the number of bytes the CompactSize integer at the
// front of buf occupies.
func varIntLen(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	switch buf[0] {
	case 0xff:
		return 9
	case 0xfe:
		return 5
	case 0xfd:
		return 3
	default:
		return 1
	}
}

// Decode parses the wire encoding produced by Encode, stamping the result
// with txid (txid is never itself part of the encoded bytes -- the caller
// already knows it, the same way it looks it up as a storage key). Each
// unspent output's body is recorded as a (offset, length) span into buf
// rather than eagerly decoded; Output materializes one on first access.
func Decode(buf []byte, txid wire.Hash) (*Coins, error) {
	if len(buf) == 0 {
		return nil, ErrFullySpent
	}

	r := bytes.NewReader(buf)
	version, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, errors.Wrap(err, "coins: reading version")
	}

	var b4 [4]byte
	if _, err := io.ReadFull(r, b4[:]); err != nil {
		return nil, errors.Wrap(err, "coins: reading bits")
	}
	height, isCoinBase := decodeBits(binary.LittleEndian.Uint32(b4[:]))

	flen, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, errors.Wrap(err, "coins: reading spent-field length")
	}
	spent := make([]byte, flen)
	if flen > 0 {
		if _, err := io.ReadFull(r, spent); err != nil {
			return nil, errors.Wrap(err, "coins: reading spent field")
		}
	}

	c := &Coins{Version: version, Txid: txid, Height: height, IsCoinBase: isCoinBase, spent: spent}
	numSlots := int(flen) * 8
	c.entries = make([]*entry, numSlots)

	rest := buf[len(buf)-r.Len():]
	last := -1
	for i := 0; i < numSlots; i++ {
		if c.IsSpent(i) {
			continue
		}
		n, err := outputEncodedLen(rest)
		if err != nil {
			return nil, errors.Wrapf(err, "coins: reading output %d", i)
		}
		c.entries[i] = &entry{raw: rest[:n]}
		rest = rest[n:]
		last = i
	}
	c.entries = c.entries[:last+1]
	return c, nil
}
