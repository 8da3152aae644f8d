package wire

import (
	"bytes"
	"encoding/binary"
)

// SigHashType represents the bits a signature commits to, as pushed
// alongside a DER signature on the stack.
type SigHashType uint32

const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

// SigVersion distinguishes legacy script hashing from BIP-143 witness
// hashing; opcodes such as OP_CHECKSIG consult it to choose the algorithm
// and to gate witness-only rules (compressed pubkeys, MINIMALIF, ...).
type SigVersion int

const (
	SigVersionBase    SigVersion = 0
	SigVersionWitness SigVersion = 1
)

// TxSigHashes caches the three BIP-143 midstate hashes that are identical
// for every input of a given transaction, so that verifying N inputs costs
// O(N) hashing instead of O(N^2).
type TxSigHashes struct {
	HashPrevOuts Hash
	HashSequence Hash
	HashOutputs  Hash
}

// NewTxSigHashes precomputes the BIP-143 midstate hashes for tx.
func NewTxSigHashes(tx *MsgTx) *TxSigHashes {
	return &TxSigHashes{
		HashPrevOuts: calcHashPrevOuts(tx),
		HashSequence: calcHashSequence(tx),
		HashOutputs:  calcHashOutputs(tx),
	}
}

func calcHashPrevOuts(tx *MsgTx) Hash {
	var b bytes.Buffer
	for _, in := range tx.TxIn {
		b.Write(in.PreviousOutPoint.Hash[:])
		var idx [4]byte
		binary.LittleEndian.PutUint32(idx[:], in.PreviousOutPoint.Index)
		b.Write(idx[:])
	}
	return DoubleHashH(b.Bytes())
}

func calcHashSequence(tx *MsgTx) Hash {
	var b bytes.Buffer
	for _, in := range tx.TxIn {
		var seq [4]byte
		binary.LittleEndian.PutUint32(seq[:], in.Sequence)
		b.Write(seq[:])
	}
	return DoubleHashH(b.Bytes())
}

func calcHashOutputs(tx *MsgTx) Hash {
	var b bytes.Buffer
	for _, out := range tx.TxOut {
		writeTxOut(&b, out)
	}
	return DoubleHashH(b.Bytes())
}

func writeTxOut(b *bytes.Buffer, out *TxOut) {
	var val [8]byte
	binary.LittleEndian.PutUint64(val[:], uint64(out.Value))
	b.Write(val[:])
	_ = WriteVarBytes(b, out.PkScript)
}

// CalcSignatureHash implements the legacy (pre-segwit) signature hash
// algorithm: the transaction is copied, every input's script is blanked
// except idx's (set to subscript), and the SigHashType's masking rules are
// applied to the copy's inputs/outputs before it is serialized and
// double-hashed together with a trailing 4-byte hash type.
func (tx *MsgTx) CalcSignatureHash(subscript []byte, hashType SigHashType, idx int) [32]byte {
	if (hashType&sigHashMask) == SigHashSingle && idx >= len(tx.TxOut) {
		// Consensus returns 1 (as a 32-byte LE value) in this out-of-range
		// case rather than erroring; callers
		// treat the "signature" as simply failing to verify against it.
		var hash [32]byte
		hash[0] = 0x01
		return hash
	}

	txCopy := tx.Copy()
	for i := range txCopy.TxIn {
		if i == idx {
			txCopy.TxIn[i].SignatureScript = subscript
		} else {
			txCopy.TxIn[i].SignatureScript = nil
		}
		txCopy.TxIn[i].Witness = nil
	}

	switch hashType & sigHashMask {
	case SigHashNone:
		txCopy.TxOut = txCopy.TxOut[:0]
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}
	case SigHashSingle:
		txCopy.TxOut = txCopy.TxOut[:idx+1]
		for i := 0; i < idx; i++ {
			txCopy.TxOut[i].Value = -1
			txCopy.TxOut[i].PkScript = nil
		}
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}
	default:
		// SigHashAll: no blanking beyond the input scripts above.
	}

	if hashType&SigHashAnyOneCanPay != 0 {
		txCopy.TxIn = []*TxIn{txCopy.TxIn[idx]}
		idx = 0
	}

	var buf bytes.Buffer
	_ = txCopy.serializeNoWitness(&buf)
	var htBuf [4]byte
	binary.LittleEndian.PutUint32(htBuf[:], uint32(hashType))
	buf.Write(htBuf[:])

	return DoubleHashH(buf.Bytes())
}

// CalcWitnessSignatureHash implements the BIP-143 segregated-witness
// signature hash, using the precomputed TxSigHashes for the midstate
// components that do not vary per input.
func (tx *MsgTx) CalcWitnessSignatureHash(subscript []byte, sigHashes *TxSigHashes, hashType SigHashType, idx int, amount int64) [32]byte {
	in := tx.TxIn[idx]

	var hashPrevOuts, hashSequence, hashOutputs Hash
	if hashType&SigHashAnyOneCanPay == 0 {
		hashPrevOuts = sigHashes.HashPrevOuts
	}
	if hashType&SigHashAnyOneCanPay == 0 &&
		hashType&sigHashMask != SigHashSingle &&
		hashType&sigHashMask != SigHashNone {
		hashSequence = sigHashes.HashSequence
	}

	switch {
	case hashType&sigHashMask != SigHashSingle && hashType&sigHashMask != SigHashNone:
		hashOutputs = sigHashes.HashOutputs
	case hashType&sigHashMask == SigHashSingle && idx < len(tx.TxOut):
		var b bytes.Buffer
		writeTxOut(&b, tx.TxOut[idx])
		hashOutputs = DoubleHashH(b.Bytes())
	}

	var sigHash bytes.Buffer

	var b4 [4]byte
	binary.LittleEndian.PutUint32(b4[:], uint32(tx.Version))
	sigHash.Write(b4[:])

	sigHash.Write(hashPrevOuts[:])
	sigHash.Write(hashSequence[:])

	sigHash.Write(in.PreviousOutPoint.Hash[:])
	binary.LittleEndian.PutUint32(b4[:], in.PreviousOutPoint.Index)
	sigHash.Write(b4[:])

	_ = WriteVarBytes(&sigHash, subscript)

	var b8 [8]byte
	binary.LittleEndian.PutUint64(b8[:], uint64(amount))
	sigHash.Write(b8[:])

	binary.LittleEndian.PutUint32(b4[:], in.Sequence)
	sigHash.Write(b4[:])

	sigHash.Write(hashOutputs[:])

	binary.LittleEndian.PutUint32(b4[:], tx.LockTime)
	sigHash.Write(b4[:])

	binary.LittleEndian.PutUint32(b4[:], uint32(hashType))
	sigHash.Write(b4[:])

	return DoubleHashH(sigHash.Bytes())
}

// SignatureHash dispatches to the legacy or witness signature hash
// algorithm according to sigVersion, implementing the
// tx.signature_hash(index, subscript, sighash_type, sigversion) contract.
func (tx *MsgTx) SignatureHash(idx int, subscript []byte, hashType SigHashType, sigVersion SigVersion, sigHashes *TxSigHashes, amount int64) [32]byte {
	if sigVersion == SigVersionWitness {
		return tx.CalcWitnessSignatureHash(subscript, sigHashes, hashType, idx, amount)
	}
	return tx.CalcSignatureHash(subscript, hashType, idx)
}
