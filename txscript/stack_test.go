package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPushPopByteArray(t *testing.T) {
	s := &stack{}
	s.PushByteArray([]byte{1, 2, 3})
	s.PushByteArray([]byte{4, 5})
	require.Equal(t, int32(2), s.Depth())

	top, err := s.PopByteArray()
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5}, top)
	require.Equal(t, int32(1), s.Depth())
}

func TestStackPopEmptyIsError(t *testing.T) {
	s := &stack{}
	_, err := s.PopByteArray()
	require.Error(t, err)
}

func TestStackPushPopBool(t *testing.T) {
	s := &stack{}
	s.PushBool(true)
	s.PushBool(false)

	v, err := s.PopBool()
	require.NoError(t, err)
	require.False(t, v)

	v, err = s.PopBool()
	require.NoError(t, err)
	require.True(t, v)
}

func TestStackBoolTruthiness(t *testing.T) {
	tests := []struct {
		b    []byte
		want bool
	}{
		{nil, false},
		{[]byte{0}, false},
		{[]byte{0x80}, false}, // negative zero
		{[]byte{1}, true},
		{[]byte{0, 0x80}, true}, // nonzero byte precedes the trailing sign
	}
	for _, test := range tests {
		require.Equal(t, test.want, asBool(test.b), "asBool(%v)", test.b)
	}
}

func TestStackDupNPreservesOrder(t *testing.T) {
	s := &stack{}
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	require.NoError(t, s.DupN(2))
	require.Equal(t, int32(4), s.Depth())

	top, _ := s.PeekByteArray(0)
	second, _ := s.PeekByteArray(1)
	require.Equal(t, []byte{2}, top)
	require.Equal(t, []byte{1}, second)
}

func TestStackSwap(t *testing.T) {
	s := &stack{}
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	require.NoError(t, s.Swap(0, 1))

	top, _ := s.PeekByteArray(0)
	require.Equal(t, []byte{1}, top)
}

func TestStackRollNMovesToTop(t *testing.T) {
	s := &stack{}
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	s.PushByteArray([]byte{3})
	require.NoError(t, s.RollN(2))
	require.Equal(t, int32(3), s.Depth())

	top, _ := s.PeekByteArray(0)
	require.Equal(t, []byte{1}, top)
}
