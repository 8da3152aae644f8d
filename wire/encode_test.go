package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, ^uint64(0)}
	for _, v := range tests {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, v), "writing %d", v)
		require.Equal(t, VarIntSerializeSize(v), buf.Len(), "value %d", v)

		got, err := ReadVarInt(&buf)
		require.NoError(t, err, "reading %d back", v)
		require.Equal(t, v, got)
	}
}

func TestVarBytesRoundTrip(t *testing.T) {
	data := []byte("a consensus-critical byte string")
	var buf bytes.Buffer
	require.NoError(t, WriteVarBytes(&buf, data), "writing")

	got, err := ReadVarBytes(&buf, 1024, "test")
	require.NoError(t, err, "reading")
	require.Equal(t, data, got)
}

func TestReadVarBytesRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarInt(&buf, 100))
	_, err := ReadVarBytes(&buf, 10, "test")
	require.Error(t, err, "expected an error for a length exceeding maxAllowed")
}
