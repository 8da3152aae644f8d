package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMainNetParamsRegistered(t *testing.T) {
	require.True(t, IsPubKeyHashAddrID(MainNetParams.PubKeyHashAddrID), "expected mainnet's P2PKH address id to be registered")
	require.True(t, IsScriptHashAddrID(MainNetParams.ScriptHashAddrID), "expected mainnet's P2SH address id to be registered")
	require.True(t, IsBech32SegwitPrefix(MainNetParams.Bech32HRPSegwit+"1"), "expected mainnet's bech32 prefix to be registered")
}

func TestIsPubKeyHashAddrIDRejectsUnregistered(t *testing.T) {
	require.False(t, IsPubKeyHashAddrID(0xff), "0xff was never registered as a P2PKH address id")
}

func TestRegisterAddsNewNetwork(t *testing.T) {
	testParams := Params{
		PubKeyHashAddrID: 0x6f,
		ScriptHashAddrID: 0xc4,
		Bech32HRPSegwit:  "tb",
	}
	require.NoError(t, Register(&testParams))
	require.True(t, IsPubKeyHashAddrID(0x6f), "expected the newly registered network's P2PKH id to be recognized")
	require.True(t, IsBech32SegwitPrefix("tb1"), "expected the newly registered network's bech32 prefix to be recognized")
}

func TestGenesisBlockHashesToGenesisHash(t *testing.T) {
	got := MainNetParams.GenesisBlock.BlockHash()
	require.Equal(t, *MainNetParams.GenesisHash, got)
}
