package blockvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightNoWitness(t *testing.T) {
	assert.Equal(t, 1000, Weight(250, 250), "expected weight 1000 for a witness-free tx")
}

func TestWeightWithWitness(t *testing.T) {
	// baseSize*3 + totalSize: a 200-byte base with 50 bytes of witness data
	// appended (totalSize 250) weighs 200*3 + 250 = 850.
	assert.Equal(t, 850, Weight(200, 250))
}

func TestVSizeRoundsUp(t *testing.T) {
	tests := []struct {
		weight int
		want   int
	}{
		{0, 0},
		{1, 1},
		{4, 1},
		{5, 2},
		{1000, 250},
		{1001, 251},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, VSize(test.weight), "VSize(%d)", test.weight)
	}
}
