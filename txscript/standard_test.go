package txscript

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetScriptClassPubKeyHash(t *testing.T) {
	script := p2pkhScript(bytes.Repeat([]byte{1}, 20))
	require.Equal(t, PubKeyHashTy, GetScriptClass(script))
}

func TestGetScriptClassScriptHash(t *testing.T) {
	script := p2shScript(bytes.Repeat([]byte{2}, 20))
	require.Equal(t, ScriptHashTy, GetScriptClass(script))
}

func TestGetScriptClassWitnessV0KeyHash(t *testing.T) {
	script := p2wpkhProgram(bytes.Repeat([]byte{3}, 20))
	require.Equal(t, WitnessV0PubKeyHashTy, GetScriptClass(script))
}

func TestGetScriptClassWitnessV0ScriptHash(t *testing.T) {
	script, err := NewScriptBuilder().AddOp(OP_0).AddData(bytes.Repeat([]byte{4}, 32)).Script()
	require.NoError(t, err, "building")
	require.Equal(t, WitnessV0ScriptHashTy, GetScriptClass(script))
}

func TestGetScriptClassMultiSig(t *testing.T) {
	pub := make([]byte, 33)
	script, err := NewScriptBuilder().AddOp(OP_1).AddData(pub).AddOp(OP_1).AddOp(OP_CHECKMULTISIG).Script()
	require.NoError(t, err, "building")
	require.Equal(t, MultiSigTy, GetScriptClass(script))
}

func TestGetScriptClassNullData(t *testing.T) {
	script, err := NewScriptBuilder().AddOp(OP_RETURN).AddData([]byte("metadata")).Script()
	require.NoError(t, err, "building")
	require.Equal(t, NullDataTy, GetScriptClass(script))
}

func TestGetScriptClassNonStandard(t *testing.T) {
	script := []byte{OP_CHECKSIGVERIFY, OP_DROP}
	require.Equal(t, NonStandardTy, GetScriptClass(script))
}

func TestScriptClassString(t *testing.T) {
	tests := []struct {
		class ScriptClass
		want  string
	}{
		{PubKeyHashTy, "pubkeyhash"},
		{ScriptHashTy, "scripthash"},
		{WitnessV0PubKeyHashTy, "witness_v0_keyhash"},
		{WitnessV0ScriptHashTy, "witness_v0_scripthash"},
		{WitnessUnknownTy, "witness_unknown"},
		{MultiSigTy, "multisig"},
		{NullDataTy, "nulldata"},
		{NonStandardTy, "nonstandard"},
	}
	for _, test := range tests {
		require.Equal(t, test.want, test.class.String())
	}
}
