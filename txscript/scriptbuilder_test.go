package txscript

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptBuilderAddDataSmallInt(t *testing.T) {
	script, err := NewScriptBuilder().AddData([]byte{5}).Script()
	require.NoError(t, err, "building")
	require.Equal(t, []byte{OP_1 + 5 - 1}, script)
}

func TestScriptBuilderAddDataEmptyIsOP0(t *testing.T) {
	script, err := NewScriptBuilder().AddData(nil).Script()
	require.NoError(t, err, "building")
	require.Equal(t, []byte{OP_0}, script)
}

func TestScriptBuilderAddDataLengthPrefix(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, 20)
	script, err := NewScriptBuilder().AddData(data).Script()
	require.NoError(t, err, "building")
	want := append([]byte{OP_DATA_1 - 1 + 20}, data...)
	require.Equal(t, want, script)
}

func TestScriptBuilderAddInt64SmallInts(t *testing.T) {
	tests := []struct {
		n    int64
		want byte
	}{
		{0, OP_0},
		{1, OP_1},
		{16, OP_16},
	}
	for _, test := range tests {
		script, err := NewScriptBuilder().AddInt64(test.n).Script()
		require.NoError(t, err, "n=%d", test.n)
		require.Equal(t, []byte{test.want}, script, "n=%d", test.n)
	}
}

func TestScriptBuilderAddInt64Negative(t *testing.T) {
	script, err := NewScriptBuilder().AddInt64(-1).Script()
	require.NoError(t, err, "building")
	require.Equal(t, []byte{OP_1NEGATE}, script)
}

func TestScriptBuilderAddInt64LargerValue(t *testing.T) {
	script, err := NewScriptBuilder().AddInt64(1000).Script()
	require.NoError(t, err, "building")
	require.Equal(t, []byte{0x02, 0xe8, 0x03}, script)
}

func TestScriptBuilderChaining(t *testing.T) {
	script, err := NewScriptBuilder().
		AddOp(OP_DUP).AddOp(OP_HASH160).AddData(bytes.Repeat([]byte{1}, 20)).
		AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).Script()
	require.NoError(t, err, "building")
	require.Len(t, script, 1+1+1+20+1+1)
}
