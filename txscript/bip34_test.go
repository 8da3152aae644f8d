package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoinbaseHeightRoundTrip(t *testing.T) {
	tests := []struct {
		height int64
	}{
		{0},
		{1},
		{16},
		{17},
		{1000},
		{227931},
		{388381},
		{1 << 23},
	}

	for _, test := range tests {
		script, err := EncodeCoinbaseHeight(test.height)
		require.NoError(t, err, "height %d", test.height)
		got, err := ExtractCoinbaseHeight(script)
		require.NoError(t, err, "height %d", test.height)
		require.Equal(t, test.height, got)
	}
}

func TestCoinbaseHeightSmallIntIsSingleByte(t *testing.T) {
	script, err := EncodeCoinbaseHeight(16)
	require.NoError(t, err)
	require.Equal(t, []byte{OP_16}, script)
}

func TestCoinbaseHeightKnownEncoding(t *testing.T) {
	// Height 1000 (0x3e8) as a minimally-encoded little-endian scriptNum is
	// the two bytes e8 03, pushed with a one-byte length prefix.
	script, err := EncodeCoinbaseHeight(1000)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0xe8, 0x03}, script)
}

func TestExtractCoinbaseHeightEmptyScript(t *testing.T) {
	_, err := ExtractCoinbaseHeight(nil)
	require.Error(t, err)
}
