package coins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/massconsensus/btccore/wire"
)

var testTxid = wire.Hash{0xaa}

func p2pkhOutput(value int64, hash byte) *Output {
	script := []byte{0x76, 0xa9, 0x14}
	for i := 0; i < 20; i++ {
		script = append(script, hash)
	}
	script = append(script, 0x88, 0xac)
	return &Output{Value: value, PkScript: script}
}

func TestNewCoinsEncodeDecodeRoundTrip(t *testing.T) {
	outputs := []*Output{
		p2pkhOutput(1000, 0x01),
		nil,
		p2pkhOutput(2000, 0x02),
	}
	c := NewCoins(testTxid, 1, 500000, false, outputs)

	data, err := c.Encode()
	require.NoError(t, err, "encoding")

	decoded, err := Decode(data, testTxid)
	require.NoError(t, err, "decoding")

	require.EqualValues(t, 1, decoded.Version)
	require.EqualValues(t, 500000, decoded.Height)
	require.False(t, decoded.IsCoinBase)
	require.Equal(t, 3, decoded.NumSlots())
	require.True(t, decoded.IsSpent(1))

	out0, ok, err := decoded.Output(0)
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 1000, out0.Value)

	out2, ok, err := decoded.Output(2)
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 2000, out2.Value)
}

func TestNewCoinsPaddingBitsMarkedSpent(t *testing.T) {
	// A single live output forces a one-byte spent field
	// covering 8 bit-positions for a 1-slot entry; the 7 padding bits must
	// read back as spent, not as phantom unspent outputs.
	outputs := []*Output{p2pkhOutput(1, 0xaa)}
	c := NewCoins(testTxid, 1, 1, true, outputs)
	require.Len(t, c.spent, 1)
	require.Equal(t, byte(0x7f), c.spent[0], "expected only bit 0 clear")

	data, err := c.Encode()
	require.NoError(t, err, "encoding")
	decoded, err := Decode(data, testTxid)
	require.NoError(t, err, "decoding")
	require.Equal(t, 1, decoded.NumSlots())
	for i := 1; i < 8; i++ {
		require.True(t, decoded.IsSpent(i), "padding slot %d should decode as spent", i)
	}
	out, ok, err := decoded.Output(0)
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 1, out.Value)
}

func TestCoinsFullySpentEncodesNil(t *testing.T) {
	c := NewCoins(testTxid, 1, 100, false, []*Output{nil, nil})
	data, err := c.Encode()
	require.NoError(t, err, "encoding")
	require.Nil(t, data, "expected nil encoding for an all-spent entry")
	require.True(t, c.IsFullySpent())
}

func TestCoinsUnconfirmedHeightRoundTrip(t *testing.T) {
	c := NewCoins(testTxid, 1, -1, true, []*Output{p2pkhOutput(5000, 0x03)})
	data, err := c.Encode()
	require.NoError(t, err, "encoding")
	decoded, err := Decode(data, testTxid)
	require.NoError(t, err, "decoding")
	require.EqualValues(t, -1, decoded.Height)
	require.True(t, decoded.IsCoinBase)
}

func TestSpend(t *testing.T) {
	c := NewCoins(testTxid, 1, 1, false, []*Output{p2pkhOutput(1, 0x01), p2pkhOutput(2, 0x02)})
	c.Spend(0)
	require.True(t, c.IsSpent(0))
	_, ok, _ := c.Output(0)
	require.False(t, ok, "expected Output to report spent output as not-ok")
	require.False(t, c.IsFullySpent(), "output 1 remains unspent")
	c.Spend(1)
	require.True(t, c.IsFullySpent())
}

func TestDecodeEmptyBufferIsFullySpent(t *testing.T) {
	_, err := Decode(nil, testTxid)
	require.Equal(t, ErrFullySpent, err)
}
