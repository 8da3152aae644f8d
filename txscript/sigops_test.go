package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSigOpCountSingleCheckSig(t *testing.T) {
	script := []byte{OP_DUP, OP_HASH160, OP_EQUALVERIFY, OP_CHECKSIG}
	require.Equal(t, 1, GetSigOpCount(script))
}

func TestGetSigOpCountMultiSigFallback(t *testing.T) {
	// The non-precise count always charges CHECKMULTISIG the conservative
	// max.
	script := []byte{OP_CHECKMULTISIG}
	require.Equal(t, MaxPubKeysPerMultiSig, GetSigOpCount(script))
}

func TestGetPreciseSigOpCountMultiSig(t *testing.T) {
	pubKey := make([]byte, 33)
	script, err := NewScriptBuilder().AddOp(OP_2).AddData(pubKey).AddOp(OP_3).AddOp(OP_CHECKMULTISIG).Script()
	require.NoError(t, err, "building script")
	require.Equal(t, 3, GetPreciseSigOpCount(nil, script, false))
}

func TestGetPreciseSigOpCountP2SH(t *testing.T) {
	redeemScript, err := NewScriptBuilder().AddOp(OP_2).AddOp(OP_CHECKMULTISIG).Script()
	require.NoError(t, err, "building redeem script")
	sigScript, err := NewScriptBuilder().AddData(redeemScript).Script()
	require.NoError(t, err, "building sigScript")
	scriptHash := make([]byte, 20)
	pkScript, err := NewScriptBuilder().AddOp(OP_HASH160).AddData(scriptHash).AddOp(OP_EQUAL).Script()
	require.NoError(t, err, "building pkScript")

	require.Equal(t, 2, GetPreciseSigOpCount(sigScript, pkScript, true))
}
