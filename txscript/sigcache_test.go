package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSigCacheAddAndExists(t *testing.T) {
	c := NewSigCache(10)
	hash := [32]byte{1}
	sig := []byte{2, 3}
	pubKey := []byte{4, 5}

	require.False(t, c.Exists(hash, sig, pubKey), "a fresh cache should report no entry")
	c.Add(hash, sig, pubKey)
	require.True(t, c.Exists(hash, sig, pubKey))
}

func TestSigCacheDistinguishesKeys(t *testing.T) {
	c := NewSigCache(10)
	hash := [32]byte{1}
	c.Add(hash, []byte{1}, []byte{2})
	require.False(t, c.Exists(hash, []byte{9}, []byte{2}), "a different signature must not be cached")
	require.False(t, c.Exists([32]byte{9}, []byte{1}, []byte{2}), "a different sighash must not be cached")
}

func TestSigCacheEviction(t *testing.T) {
	c := NewSigCache(1)
	hash := [32]byte{1}
	c.Add(hash, []byte{1}, []byte{1})
	c.Add(hash, []byte{2}, []byte{2})
	require.False(t, c.Exists(hash, []byte{1}, []byte{1}), "first entry should be evicted once capacity 1 is exceeded")
	require.True(t, c.Exists(hash, []byte{2}, []byte{2}), "most recently added entry should remain")
}
