package blockvalidate

// WitnessScaleFactor is how much more a witness byte "weighs" than zero, and
// how a transaction's weight converts back down to virtual size: a non-
// witness byte counts WitnessScaleFactor times, a witness byte counts once.
const WitnessScaleFactor = 4

// MaxBlockWeight is the consensus ceiling on a block's computed Weight.
const MaxBlockWeight = 4_000_000

// MaxBlockSize bounds a block's base (non-witness) serialized size and its
// transaction count, the pre-segwit ceiling segwit blocks must still respect
// for their base representation.
const MaxBlockSize = 1_000_000

// MaxSigopsWeight bounds the weighted legacy sigop count a block may carry.
const MaxSigopsWeight = MaxBlockWeight / 50

// Weight returns the BIP141 weight of an object given its base size (the
// legacy, pre-segwit serialization length) and its total size (the full
// serialization including witness data). For a transaction with no
// witnesses, baseSize == totalSize and Weight reduces to baseSize * 4.
func Weight(baseSize, totalSize int) int {
	return baseSize*(WitnessScaleFactor-1) + totalSize
}

// VSize converts a weight to its virtual size, rounding up so that no
// nonzero weight rounds down to zero.
func VSize(weight int) int {
	return (weight + WitnessScaleFactor - 1) / WitnessScaleFactor
}
