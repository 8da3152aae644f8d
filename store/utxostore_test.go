package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/massconsensus/btccore/coins"
	"github.com/massconsensus/btccore/wire"
)

func openTestStore(t *testing.T) *UtxoStore {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err, "opening store")
	t.Cleanup(func() { s.Close() })
	return s
}

func p2pkhScriptForStore(hash byte) []byte {
	script := []byte{0x76, 0xa9, 0x14}
	for i := 0; i < 20; i++ {
		script = append(script, hash)
	}
	return append(script, 0x88, 0xac)
}

func TestUtxoStorePutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	txid := wire.Hash{0x01}

	c := coins.NewCoins(txid, 1, 100, false, []*coins.Output{
		{Value: 5000, PkScript: p2pkhScriptForStore(0xaa)},
	})
	require.NoError(t, s.PutCoins(&txid, c))

	got, err := s.GetCoins(&txid)
	require.NoError(t, err, "GetCoins")
	out, ok, err := got.Output(0)
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 5000, out.Value)
}

func TestUtxoStoreGetOutputFastPath(t *testing.T) {
	s := openTestStore(t)
	txid := wire.Hash{0x02}

	c := coins.NewCoins(txid, 1, 100, false, []*coins.Output{
		{Value: 1000, PkScript: p2pkhScriptForStore(0xbb)},
		{Value: 2000, PkScript: p2pkhScriptForStore(0xcc)},
	})
	require.NoError(t, s.PutCoins(&txid, c))

	out, ok, err := s.GetOutput(&txid, 1)
	require.NoError(t, err, "GetOutput(1)")
	require.True(t, ok)
	require.EqualValues(t, 2000, out.Value)
}

func TestUtxoStorePutFullySpentDeletes(t *testing.T) {
	s := openTestStore(t)
	txid := wire.Hash{0x03}

	c := coins.NewCoins(txid, 1, 100, false, []*coins.Output{
		{Value: 1000, PkScript: p2pkhScriptForStore(0xdd)},
	})
	require.NoError(t, s.PutCoins(&txid, c))
	c.Spend(0)
	require.NoError(t, s.PutCoins(&txid, c), "PutCoins (fully spent)")

	has, err := s.Has(&txid)
	require.NoError(t, err)
	require.False(t, has, "expected the fully-spent entry to have been deleted")
}

func TestUtxoStoreGetMissingEntry(t *testing.T) {
	s := openTestStore(t)
	txid := wire.Hash{0xff}

	got, err := s.GetCoins(&txid)
	require.NoError(t, err, "GetCoins")
	require.Nil(t, got, "expected a nil result for a missing entry")

	_, ok, err := s.GetOutput(&txid, 0)
	require.NoError(t, err, "GetOutput")
	require.False(t, ok)
}
