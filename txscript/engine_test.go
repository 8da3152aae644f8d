package txscript

import (
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/require"

	"github.com/massconsensus/btccore/ecc"
	"github.com/massconsensus/btccore/wire"
)

func newTestKey(t *testing.T) (*btcec.PrivateKey, []byte) {
	t.Helper()
	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err, "generating private key")
	return priv, priv.PubKey().SerializeCompressed()
}

func p2pkhScript(pubKeyHash []byte) []byte {
	script, err := NewScriptBuilder().
		AddOp(OP_DUP).AddOp(OP_HASH160).AddData(pubKeyHash).
		AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).Script()
	if err != nil {
		panic(err)
	}
	return script
}

func p2shScript(scriptHash []byte) []byte {
	script, err := NewScriptBuilder().
		AddOp(OP_HASH160).AddData(scriptHash).AddOp(OP_EQUAL).Script()
	if err != nil {
		panic(err)
	}
	return script
}

func p2wpkhProgram(pubKeyHash []byte) []byte {
	script, err := NewScriptBuilder().AddOp(OP_0).AddData(pubKeyHash).Script()
	if err != nil {
		panic(err)
	}
	return script
}

// spendingTx returns a minimal one-input, one-output transaction spending
// inputAmount locked under pkScript, wired up with a single sigScript and
// witness stack for VerifyScript to evaluate.
func spendingTx(pkScript []byte, sigScript []byte, witness wire.TxWitness) (*wire.MsgTx, *wire.TxSigHashes) {
	prevOut := wire.NewOutPoint(&wire.Hash{}, 0)
	tx := wire.NewMsgTx(wire.TxVersion)
	txIn := wire.NewTxIn(prevOut, sigScript)
	txIn.Witness = witness
	tx.AddTxIn(txIn)
	tx.AddTxOut(wire.NewTxOut(50000, []byte{OP_TRUE}))
	_ = pkScript
	return tx, wire.NewTxSigHashes(tx)
}

func signP2PKH(t *testing.T, priv *btcec.PrivateKey, pubKey []byte, tx *wire.MsgTx, pkScript []byte, hashType wire.SigHashType) []byte {
	t.Helper()
	hash := tx.CalcSignatureHash(pkScript, hashType, 0)
	sig, err := priv.Sign(hash[:])
	require.NoError(t, err, "signing")
	sigBytes := append(sig.Serialize(), byte(hashType))
	script, err := NewScriptBuilder().AddData(sigBytes).AddData(pubKey).Script()
	require.NoError(t, err, "building sigScript")
	return script
}

func TestVerifyScriptP2PKH(t *testing.T) {
	priv, pubKey := newTestKey(t)
	pubKeyHash := ecc.Hash160(pubKey)
	pkScript := p2pkhScript(pubKeyHash)

	flags := ScriptVerifyNullFail

	t.Run("valid signature succeeds", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		sigScript := signP2PKH(t, priv, pubKey, tx, pkScript, wire.SigHashAll)
		tx.TxIn[0].SignatureScript = sigScript

		err := VerifyScript(sigScript, nil, pkScript, tx, 0, flags, nil, hashCache, 50000)
		require.NoError(t, err)
	})

	t.Run("flipped signature bit fails with EVAL_FALSE", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		sigScript := signP2PKH(t, priv, pubKey, tx, pkScript, wire.SigHashAll)
		sigScript[10] ^= 0xff
		tx.TxIn[0].SignatureScript = sigScript

		// Without NULLFAIL a failing signature just leaves false on the stack.
		err := VerifyScript(sigScript, nil, pkScript, tx, 0, 0, nil, hashCache, 50000)
		require.Error(t, err)
		require.True(t, IsErrorCode(err, ErrEvalFalse) || IsErrorCode(err, ErrSigDER),
			"expected EVAL_FALSE or SIG_DER, got %v", err)
	})

	t.Run("empty signature under NULLFAIL yields EVAL_FALSE not NULLFAIL", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		sigScript, err := NewScriptBuilder().AddData(nil).AddData(pubKey).Script()
		require.NoError(t, err, "building sigScript")
		tx.TxIn[0].SignatureScript = sigScript

		err = VerifyScript(sigScript, nil, pkScript, tx, 0, flags, nil, hashCache, 50000)
		require.Error(t, err)
		require.True(t, IsErrorCode(err, ErrEvalFalse), "expected EVAL_FALSE, got %v", err)
	})

	t.Run("nonempty failing signature under NULLFAIL yields NULLFAIL", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		sigScript := signP2PKH(t, priv, pubKey, tx, pkScript, wire.SigHashAll)
		sigScript[10] ^= 0xff
		tx.TxIn[0].SignatureScript = sigScript

		err := VerifyScript(sigScript, nil, pkScript, tx, 0, flags, nil, hashCache, 50000)
		require.Error(t, err)
		require.True(t, IsErrorCode(err, ErrNullFail),
			"a corrupted-but-well-formed signature must fail NULLFAIL, not just EVAL_FALSE: %v", err)
	})
}

func TestVerifyScriptP2SHMultisig(t *testing.T) {
	priv1, pub1 := newTestKey(t)
	priv2, pub2 := newTestKey(t)
	_, pub3 := newTestKey(t)

	redeemScript, err := NewScriptBuilder().
		AddOp(OP_2).AddData(pub1).AddData(pub2).AddData(pub3).AddOp(OP_3).AddOp(OP_CHECKMULTISIG).Script()
	require.NoError(t, err, "building redeem script")
	scriptHash := ecc.Hash160(redeemScript)
	pkScript := p2shScript(scriptHash)
	flags := ScriptBip16 | ScriptStrictMultiSig | ScriptVerifyNullFail

	sign := func(priv *btcec.PrivateKey, hash [32]byte) []byte {
		sig, err := priv.Sign(hash[:])
		require.NoError(t, err, "signing")
		return append(sig.Serialize(), byte(wire.SigHashAll))
	}

	t.Run("2-of-3 in key order succeeds", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		hash := tx.CalcSignatureHash(redeemScript, wire.SigHashAll, 0)
		sig1 := sign(priv1, hash)
		sig2 := sign(priv2, hash)
		sigScript, err := NewScriptBuilder().
			AddOp(OP_0).AddData(sig1).AddData(sig2).AddData(redeemScript).Script()
		require.NoError(t, err, "building sigScript")
		tx.TxIn[0].SignatureScript = sigScript

		require.NoError(t, VerifyScript(sigScript, nil, pkScript, tx, 0, flags, nil, hashCache, 50000))
	})

	t.Run("signatures out of key order fail", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		hash := tx.CalcSignatureHash(redeemScript, wire.SigHashAll, 0)
		sig1 := sign(priv1, hash)
		sig2 := sign(priv2, hash)
		sigScript, err := NewScriptBuilder().
			AddOp(OP_0).AddData(sig2).AddData(sig1).AddData(redeemScript).Script()
		require.NoError(t, err, "building sigScript")
		tx.TxIn[0].SignatureScript = sigScript

		err = VerifyScript(sigScript, nil, pkScript, tx, 0, flags, nil, hashCache, 50000)
		require.Error(t, err)
	})

	t.Run("non-empty dummy fails under NULLDUMMY", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		hash := tx.CalcSignatureHash(redeemScript, wire.SigHashAll, 0)
		sig1 := sign(priv1, hash)
		sig2 := sign(priv2, hash)
		sigScript, err := NewScriptBuilder().
			AddData([]byte{0x01}).AddData(sig1).AddData(sig2).AddData(redeemScript).Script()
		require.NoError(t, err, "building sigScript")
		tx.TxIn[0].SignatureScript = sigScript

		err = VerifyScript(sigScript, nil, pkScript, tx, 0, flags, nil, hashCache, 50000)
		require.True(t, IsErrorCode(err, ErrSigNullDummy), "expected SIG_NULLDUMMY, got %v", err)
	})

	t.Run("gratuitous witness on a non-witness P2SH redeem script is unexpected", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		hash := tx.CalcSignatureHash(redeemScript, wire.SigHashAll, 0)
		sig1 := sign(priv1, hash)
		sig2 := sign(priv2, hash)
		sigScript, err := NewScriptBuilder().
			AddOp(OP_0).AddData(sig1).AddData(sig2).AddData(redeemScript).Script()
		require.NoError(t, err, "building sigScript")
		witness := wire.TxWitness{{0x01}}
		tx.TxIn[0].SignatureScript = sigScript
		tx.TxIn[0].Witness = witness

		err = VerifyScript(sigScript, witness, pkScript, tx, 0, flags|ScriptVerifyWitness, nil, hashCache, 50000)
		require.True(t, IsErrorCode(err, ErrWitnessUnexpected), "expected WITNESS_UNEXPECTED, got %v", err)
	})
}

func TestVerifyScriptP2WPKH(t *testing.T) {
	priv, pubKey := newTestKey(t)
	pubKeyHash := ecc.Hash160(pubKey)
	pkScript := p2wpkhProgram(pubKeyHash)
	flags := ScriptBip16 | ScriptVerifyWitness | ScriptVerifyNullFail

	signWitness := func(tx *wire.MsgTx, hashCache *wire.TxSigHashes) wire.TxWitness {
		subscript := p2pkhScript(pubKeyHash)
		hash := tx.CalcWitnessSignatureHash(subscript, hashCache, wire.SigHashAll, 0, 50000)
		sig, err := priv.Sign(hash[:])
		require.NoError(t, err, "signing")
		sigBytes := append(sig.Serialize(), byte(wire.SigHashAll))
		return wire.TxWitness{sigBytes, pubKey}
	}

	t.Run("valid witness succeeds", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		witness := signWitness(tx, hashCache)
		tx.TxIn[0].Witness = witness

		require.NoError(t, VerifyScript(nil, witness, pkScript, tx, 0, flags, nil, hashCache, 50000))
	})

	t.Run("non-empty scriptSig on a native witness program is malleation", func(t *testing.T) {
		tx, hashCache := spendingTx(pkScript, nil, nil)
		witness := signWitness(tx, hashCache)
		sigScript := []byte{OP_TRUE}
		tx.TxIn[0].SignatureScript = sigScript
		tx.TxIn[0].Witness = witness

		err := VerifyScript(sigScript, witness, pkScript, tx, 0, flags, nil, hashCache, 50000)
		require.True(t, IsErrorCode(err, ErrWitnessMalleated), "expected WITNESS_MALLEATED, got %v", err)
	})
}

func TestDisabledOpcodeOnDeadBranchStillFails(t *testing.T) {
	// OP_0 OP_IF OP_CAT OP_ENDIF: the CAT never executes, but a disabled
	// opcode is rejected at parse/step time regardless of which branch is
	// live -- a disabled opcode always fails, even in an unexecuted branch.
	pkScript := []byte{OP_0, OP_IF, OP_CAT, OP_ENDIF}
	tx, hashCache := spendingTx(pkScript, nil, nil)

	err := VerifyScript(nil, nil, pkScript, tx, 0, 0, nil, hashCache, 50000)
	require.True(t, IsErrorCode(err, ErrDisabledOpcode), "expected DISABLED_OPCODE, got %v", err)
}
