package blockvalidate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/massconsensus/btccore/wire"
)

func leaf(b byte) wire.Hash {
	var h wire.Hash
	h[0] = b
	return h
}

func TestMerkleRootSingleLeaf(t *testing.T) {
	l := leaf(1)
	root, ok := MerkleRoot([]wire.Hash{l})
	require.True(t, ok)
	require.Equal(t, l, root, "single-leaf root should equal the leaf itself")
}

func TestMerkleRootEvenCount(t *testing.T) {
	leaves := []wire.Hash{leaf(1), leaf(2), leaf(3), leaf(4)}
	root, ok := MerkleRoot(leaves)
	require.True(t, ok)

	var buf12, buf34, bufTop [64]byte
	copy(buf12[:32], leaves[0][:])
	copy(buf12[32:], leaves[1][:])
	copy(buf34[:32], leaves[2][:])
	copy(buf34[32:], leaves[3][:])
	h12 := wire.DoubleHashH(buf12[:])
	h34 := wire.DoubleHashH(buf34[:])
	copy(bufTop[:32], h12[:])
	copy(bufTop[32:], h34[:])
	want := wire.DoubleHashH(bufTop[:])
	require.Equal(t, want, root)
}

func TestMerkleRootOddCountDuplicatesLastLeaf(t *testing.T) {
	leaves := []wire.Hash{leaf(1), leaf(2), leaf(3)}
	root, ok := MerkleRoot(leaves)
	require.True(t, ok)

	withDuplicate := append(append([]wire.Hash{}, leaves...), leaves[2])
	want, ok := MerkleRoot(withDuplicate)
	require.True(t, ok, "expected the duplicated 4-leaf tree to compute")
	require.Equal(t, want, root)
}

func TestMerkleRootCVE20122459Duplicate(t *testing.T) {
	// An odd-length level whose last two leaves are already equal, before
	// the padding step duplicates the last one, is indistinguishable from
	// a block that legitimately repeats a transaction -- the CVE's
	// malleation signal.
	leaves := []wire.Hash{leaf(1), leaf(2), leaf(2)}
	_, ok := MerkleRoot(leaves)
	require.False(t, ok, "expected ok=false for an adjacent-duplicate leaf pair")
}

func TestMerkleRootEmpty(t *testing.T) {
	root, ok := MerkleRoot(nil)
	require.True(t, ok, "expected ok=true for an empty leaf set")
	require.Equal(t, wire.Hash{}, root)
}
