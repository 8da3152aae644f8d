package blockvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubsidyHalving(t *testing.T) {
	const interval = 210000
	tests := []struct {
		height uint64
		want   int64
	}{
		{0, InitialSubsidy},
		{interval - 1, InitialSubsidy},
		{interval, InitialSubsidy / 2},
		{interval * 2, InitialSubsidy / 4},
		{interval * 32, 1},
		{interval * 33, 0},
		{interval * 64, 0},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, Subsidy(test.height, interval), "Subsidy(%d, %d)", test.height, interval)
	}
}

func TestCalcBlockRewardAddsFees(t *testing.T) {
	reward := CalcBlockReward(0, 210000, []int64{100, 200, 300})
	assert.Equal(t, int64(InitialSubsidy+600), reward)
}

func TestCalcBlockRewardOverflowSentinel(t *testing.T) {
	reward := CalcBlockReward(0, 210000, []int64{MaxMoney})
	assert.Equal(t, int64(overflowSentinel), reward)
}

func TestCalcBlockRewardNegativeFeeIsOverflow(t *testing.T) {
	reward := CalcBlockReward(0, 210000, []int64{-1})
	assert.Equal(t, int64(overflowSentinel), reward, "expected overflow sentinel for a negative fee")
}
