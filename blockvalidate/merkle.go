package blockvalidate

import (
	"github.com/massconsensus/btccore/wire"
)

// MerkleRoot computes the root of the binary hash tree over leaves (each a
// transaction's hash, in block order), folding an odd level by duplicating
// its last leaf the way the original protocol does. It returns ok=false
// without a root when it detects the CVE-2012-2459 malleation signal: a
// level with an odd count whose last two entries are already equal before
// duplication, meaning the duplicated leaf was indistinguishable from an
// already-present sibling and the tree could be forged by duplicating a
// transaction.
func MerkleRoot(leaves []wire.Hash) (root wire.Hash, ok bool) {
	if len(leaves) == 0 {
		return wire.Hash{}, true
	}

	level := make([]wire.Hash, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		if len(level)%2 != 0 {
			last := len(level) - 1
			if last > 0 && level[last] == level[last-1] {
				return wire.Hash{}, false
			}
			level = append(level, level[last])
		}

		next := make([]wire.Hash, len(level)/2)
		for i := range next {
			var buf [64]byte
			copy(buf[:32], level[2*i][:])
			copy(buf[32:], level[2*i+1][:])
			next[i] = wire.DoubleHashH(buf[:])
		}
		level = next
	}
	return level[0], true
}
