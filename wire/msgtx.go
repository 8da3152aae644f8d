package wire

import (
	"bytes"
	"encoding/binary"
	"io"
)

// TxVersion is the format version transactions created by this module use.
const TxVersion = 2

const (
	// MaxTxInSequenceNum is the maximum value a sequence number may hold.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// SequenceLockTimeDisabled, when set on a sequence number, disables the
	// relative lock-time interpretation of OP_CHECKSEQUENCEVERIFY.
	SequenceLockTimeDisabled uint32 = 1 << 31

	// SequenceLockTimeIsSeconds marks a relative lock value as units of
	// 512 seconds rather than blocks.
	SequenceLockTimeIsSeconds uint32 = 1 << 22

	// SequenceLockTimeMask masks off the relevant bits of a sequence number
	// used as a relative lock-time.
	SequenceLockTimeMask uint32 = 0x0000ffff

	// LockTimeThreshold is the number below which a transaction's locktime
	// is interpreted as a block height, and at or above which it is a Unix
	// timestamp (BIP113 / legacy nLockTime semantics).
	LockTimeThreshold uint32 = 500000000
)

// OutPoint identifies the output being spent by a TxIn.
type OutPoint struct {
	Hash  Hash
	Index uint32
}

// NewOutPoint returns an OutPoint referring to the given transaction output.
func NewOutPoint(hash *Hash, index uint32) *OutPoint {
	return &OutPoint{Hash: *hash, Index: index}
}

// TxWitness is the witness stack carried alongside a TxIn for segwit inputs.
type TxWitness [][]byte

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          TxWitness
	Sequence         uint32
}

// NewTxIn returns a new TxIn with the provided previous outpoint and
// signature script, with a default maximal sequence number.
func NewTxIn(prevOut *OutPoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// TxOut defines a transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// NewTxOut returns a new TxOut with the provided value and public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{Value: value, PkScript: pkScript}
}

// MsgTx defines a transaction: a version, inputs, outputs, and a locktime.
// Witness data, when present, is attached to each TxIn directly rather than
// a single trailing witness section, simplifying legacy/witness-aware
// iteration at the cost of an unused field on pre-segwit transactions.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns a new, empty transaction with the given version.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{Version: version}
}

// AddTxIn adds ti to msg's list of transaction inputs.
func (msg *MsgTx) AddTxIn(ti *TxIn) { msg.TxIn = append(msg.TxIn, ti) }

// AddTxOut adds to to msg's list of transaction outputs.
func (msg *MsgTx) AddTxOut(to *TxOut) { msg.TxOut = append(msg.TxOut, to) }

// HasWitness reports whether any input carries witness data.
func (msg *MsgTx) HasWitness() bool {
	for _, txIn := range msg.TxIn {
		if len(txIn.Witness) != 0 {
			return true
		}
	}
	return false
}

// IsCoinBase reports whether msg is a coinbase transaction: exactly one
// input referring to the null outpoint.
func (msg *MsgTx) IsCoinBase() bool {
	if len(msg.TxIn) != 1 {
		return false
	}
	prevOut := &msg.TxIn[0].PreviousOutPoint
	return prevOut.Index == 0xffffffff && prevOut.Hash == (Hash{})
}

// Copy returns a deep copy of msg so that callers may mutate the copy
// (e.g. for sighash subscript construction) without aliasing msg.
func (msg *MsgTx) Copy() *MsgTx {
	newTx := &MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}
	for _, oldTxIn := range msg.TxIn {
		newTxIn := &TxIn{
			PreviousOutPoint: oldTxIn.PreviousOutPoint,
			Sequence:         oldTxIn.Sequence,
		}
		if oldTxIn.SignatureScript != nil {
			newTxIn.SignatureScript = append([]byte(nil), oldTxIn.SignatureScript...)
		}
		if len(oldTxIn.Witness) != 0 {
			newTxIn.Witness = make(TxWitness, len(oldTxIn.Witness))
			for i, w := range oldTxIn.Witness {
				newTxIn.Witness[i] = append([]byte(nil), w...)
			}
		}
		newTx.TxIn = append(newTx.TxIn, newTxIn)
	}
	for _, oldTxOut := range msg.TxOut {
		newTx.TxOut = append(newTx.TxOut, &TxOut{
			Value:    oldTxOut.Value,
			PkScript: append([]byte(nil), oldTxOut.PkScript...),
		})
	}
	return newTx
}

// serializeNoWitness writes the legacy (pre-BIP144) encoding of msg.
func (msg *MsgTx) serializeNoWitness(w io.Writer) error {
	var b4 [4]byte
	binary.LittleEndian.PutUint32(b4[:], uint32(msg.Version))
	if _, err := w.Write(b4[:]); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if _, err := w.Write(ti.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		var b4 [4]byte
		binary.LittleEndian.PutUint32(b4[:], ti.PreviousOutPoint.Index)
		if _, err := w.Write(b4[:]); err != nil {
			return err
		}
		if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(b4[:], ti.Sequence)
		if _, err := w.Write(b4[:]); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		var b8 [8]byte
		binary.LittleEndian.PutUint64(b8[:], uint64(to.Value))
		if _, err := w.Write(b8[:]); err != nil {
			return err
		}
		if err := WriteVarBytes(w, to.PkScript); err != nil {
			return err
		}
	}
	binary.LittleEndian.PutUint32(b4[:], msg.LockTime)
	_, err := w.Write(b4[:])
	return err
}

// segwitMarker and segwitFlag are the BIP144 marker/flag bytes that signal a
// witness-carrying serialization.
const segwitMarker, segwitFlag = 0x00, 0x01

// Serialize writes the full (witness-inclusive when present) wire encoding
// of msg to w.
func (msg *MsgTx) Serialize(w io.Writer) error {
	if !msg.HasWitness() {
		return msg.serializeNoWitness(w)
	}

	var b4 [4]byte
	binary.LittleEndian.PutUint32(b4[:], uint32(msg.Version))
	if _, err := w.Write(b4[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{segwitMarker, segwitFlag}); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if _, err := w.Write(ti.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(b4[:], ti.PreviousOutPoint.Index)
		if _, err := w.Write(b4[:]); err != nil {
			return err
		}
		if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(b4[:], ti.Sequence)
		if _, err := w.Write(b4[:]); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		var b8 [8]byte
		binary.LittleEndian.PutUint64(b8[:], uint64(to.Value))
		if _, err := w.Write(b8[:]); err != nil {
			return err
		}
		if err := WriteVarBytes(w, to.PkScript); err != nil {
			return err
		}
	}
	for _, ti := range msg.TxIn {
		if err := WriteVarInt(w, uint64(len(ti.Witness))); err != nil {
			return err
		}
		for _, item := range ti.Witness {
			if err := WriteVarBytes(w, item); err != nil {
				return err
			}
		}
	}
	binary.LittleEndian.PutUint32(b4[:], msg.LockTime)
	_, err := w.Write(b4[:])
	return err
}

// SerializeNoWitness writes the legacy encoding of msg, stripping witness
// data. This is the form hashed for txid (as opposed to wtxid).
func (msg *MsgTx) SerializeNoWitness(w io.Writer) error {
	return msg.serializeNoWitness(w)
}

// Bytes returns the full wire encoding of msg.
func (msg *MsgTx) Bytes() []byte {
	var buf bytes.Buffer
	_ = msg.Serialize(&buf)
	return buf.Bytes()
}

// BaseSize returns the length of the legacy (witness-stripped) serialization.
func (msg *MsgTx) BaseSize() int {
	var buf bytes.Buffer
	_ = msg.serializeNoWitness(&buf)
	return buf.Len()
}

// TotalSize returns the length of the full (witness-inclusive) serialization.
func (msg *MsgTx) TotalSize() int {
	return len(msg.Bytes())
}

// TxHash returns the double-SHA256 of the witness-stripped serialization
// (the txid).
func (msg *MsgTx) TxHash() Hash {
	var buf bytes.Buffer
	_ = msg.serializeNoWitness(&buf)
	return DoubleHashH(buf.Bytes())
}

// WitnessHash returns the double-SHA256 of the full serialization (the
// wtxid). For a transaction with no witness data this equals TxHash.
func (msg *MsgTx) WitnessHash() Hash {
	return DoubleHashH(msg.Bytes())
}

// Deserialize reads a transaction from r into msg, detecting the BIP144
// marker/flag to decide whether witness data follows.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	var b4 [4]byte
	if _, err := io.ReadFull(r, b4[:]); err != nil {
		return err
	}
	msg.Version = int32(binary.LittleEndian.Uint32(b4[:]))

	var peek [1]byte
	hasWitness := false
	if _, err := io.ReadFull(r, peek[:]); err != nil {
		return err
	}
	var txInCount uint64
	if peek[0] == segwitMarker {
		var flag [1]byte
		if _, err := io.ReadFull(r, flag[:]); err != nil {
			return err
		}
		if flag[0] != segwitFlag {
			return errInvalidWitnessFlag
		}
		hasWitness = true
		count, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		txInCount = count
	} else {
		count, err := readVarIntWithFirstByte(r, peek[0])
		if err != nil {
			return err
		}
		txInCount = count
	}

	msg.TxIn = make([]*TxIn, 0, txInCount)
	for i := uint64(0); i < txInCount; i++ {
		ti := &TxIn{}
		if _, err := io.ReadFull(r, ti.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		var idx [4]byte
		if _, err := io.ReadFull(r, idx[:]); err != nil {
			return err
		}
		ti.PreviousOutPoint.Index = binary.LittleEndian.Uint32(idx[:])
		sigScript, err := ReadVarBytes(r, maxScriptSize, "signatureScript")
		if err != nil {
			return err
		}
		ti.SignatureScript = sigScript
		var seq [4]byte
		if _, err := io.ReadFull(r, seq[:]); err != nil {
			return err
		}
		ti.Sequence = binary.LittleEndian.Uint32(seq[:])
		msg.TxIn = append(msg.TxIn, ti)
	}

	txOutCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	msg.TxOut = make([]*TxOut, 0, txOutCount)
	for i := uint64(0); i < txOutCount; i++ {
		var val [8]byte
		if _, err := io.ReadFull(r, val[:]); err != nil {
			return err
		}
		pkScript, err := ReadVarBytes(r, maxScriptSize, "pkScript")
		if err != nil {
			return err
		}
		msg.TxOut = append(msg.TxOut, &TxOut{
			Value:    int64(binary.LittleEndian.Uint64(val[:])),
			PkScript: pkScript,
		})
	}

	if hasWitness {
		for _, ti := range msg.TxIn {
			itemCount, err := ReadVarInt(r)
			if err != nil {
				return err
			}
			ti.Witness = make(TxWitness, itemCount)
			for i := uint64(0); i < itemCount; i++ {
				item, err := ReadVarBytes(r, maxScriptSize, "witnessItem")
				if err != nil {
					return err
				}
				ti.Witness[i] = item
			}
		}
	}

	var lt [4]byte
	if _, err := io.ReadFull(r, lt[:]); err != nil {
		return err
	}
	msg.LockTime = binary.LittleEndian.Uint32(lt[:])
	return nil
}

// maxScriptSize bounds any single script/witness-item read from the wire;
// it is deliberately generous relative to the consensus 10000-byte script
// limit enforced by the interpreter, since this layer only guards against
// pathological allocation.
const maxScriptSize = 1 << 20

var errInvalidWitnessFlag = ioErrorf("wire: invalid segwit flag byte")

func ioErrorf(msg string) error { return &simpleError{msg} }

type simpleError struct{ s string }

func (e *simpleError) Error() string { return e.s }

// readVarIntWithFirstByte re-derives ReadVarInt's decoding when the first
// byte has already been consumed (used to implement the marker/flag peek).
func readVarIntWithFirstByte(r io.Reader, first byte) (uint64, error) {
	switch first {
	case 0xff:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(buf[:]), nil
	case 0xfe:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(buf[:])), nil
	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(buf[:])), nil
	default:
		return uint64(first), nil
	}
}
