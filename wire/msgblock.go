package wire

import (
	"bytes"
	"encoding/binary"
	"time"
)

// BlockHeader is the 80-byte header committing to a block's transactions.
type BlockHeader struct {
	Version    int32
	PrevBlock  Hash
	MerkleRoot Hash
	Timestamp  time.Time
	Bits       uint32
	Nonce      uint32
}

// Serialize writes the fixed 80-byte header encoding.
func (h *BlockHeader) Serialize(w *bytes.Buffer) {
	var b4 [4]byte
	binary.LittleEndian.PutUint32(b4[:], uint32(h.Version))
	w.Write(b4[:])
	w.Write(h.PrevBlock[:])
	w.Write(h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(b4[:], uint32(h.Timestamp.Unix()))
	w.Write(b4[:])
	binary.LittleEndian.PutUint32(b4[:], h.Bits)
	w.Write(b4[:])
	binary.LittleEndian.PutUint32(b4[:], h.Nonce)
	w.Write(b4[:])
}

// BlockHash returns the double-SHA256 of the serialized header.
func (h *BlockHeader) BlockHash() Hash {
	var buf bytes.Buffer
	h.Serialize(&buf)
	return DoubleHashH(buf.Bytes())
}

// MsgBlock is a block: a header plus its ordered transactions.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// AddTransaction appends tx to the block.
func (m *MsgBlock) AddTransaction(tx *MsgTx) {
	m.Transactions = append(m.Transactions, tx)
}

// BlockHash returns the header's double-SHA256 hash.
func (m *MsgBlock) BlockHash() Hash {
	return m.Header.BlockHash()
}

// SerializeSize returns the length of the full (witness-inclusive)
// serialized block, summing the header and each transaction's encoding.
func (m *MsgBlock) SerializeSize() int {
	size := 80 // fixed header size
	size += VarIntSerializeSize(uint64(len(m.Transactions)))
	for _, tx := range m.Transactions {
		size += tx.TotalSize()
	}
	return size
}

// BaseSize returns the length of the block serialized with all witness data
// stripped, as used in the weight calculation (§4.5).
func (m *MsgBlock) BaseSize() int {
	size := 80
	size += VarIntSerializeSize(uint64(len(m.Transactions)))
	for _, tx := range m.Transactions {
		size += tx.BaseSize()
	}
	return size
}
