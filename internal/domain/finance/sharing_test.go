package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPartners() []Partner {
	return []Partner{
		{Name: "Uyen", Percent: 11.20},
		{Name: "Khoa", Percent: 41.48},
		{Name: "Sang", Percent: 47.32},
	}
}

func TestValidatePartners(t *testing.T) {
	assert.NoError(t, ValidatePartners(testPartners()))

	assert.Error(t, ValidatePartners(nil), "empty set")
	assert.Error(t, ValidatePartners([]Partner{
		{Name: "A", Percent: 50},
		{Name: "B", Percent: 49},
	}), "sum below 100")
	assert.Error(t, ValidatePartners([]Partner{
		{Name: "A", Percent: 50},
		{Name: "A", Percent: 50},
	}), "duplicate name")
	assert.Error(t, ValidatePartners([]Partner{
		{Name: "A", Percent: -10},
		{Name: "B", Percent: 110},
	}), "negative percent")
}

func TestComputeSharesPreservesSum(t *testing.T) {
	partners := testPartners()

	// amounts chosen to exercise rounding in both directions, including
	// values past 2^30 where float64 percent products carry fractional noise
	profits := []int64{
		0, 1, 2, 3, 10, 99, 100, 1000, 12345, 999999, 1000001, 34567891,
		1000000001, 98765432109, 1 << 40, -100, -12345, -1000000001,
	}
	for _, profit := range profits {
		shares, err := ComputeShares(profit, partners)
		require.NoError(t, err)
		require.Len(t, shares, len(partners))

		var sum int64
		for _, v := range shares {
			sum += v
		}
		assert.Equal(t, profit, sum, "profit %d", profit)
	}
}

func TestComputeSharesProportions(t *testing.T) {
	shares, err := ComputeShares(1000000, testPartners())
	require.NoError(t, err)

	// raw shares are 112000 / 414800 / 473200, no rounding needed
	assert.Equal(t, int64(112000), shares["Uyen"])
	assert.Equal(t, int64(414800), shares["Khoa"])
	assert.Equal(t, int64(473200), shares["Sang"])
}

func TestComputeSharesRejectsBadSplit(t *testing.T) {
	_, err := ComputeShares(1000, []Partner{{Name: "A", Percent: 60}})
	assert.Error(t, err)
}
