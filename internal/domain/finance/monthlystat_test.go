package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonthlyStat(t *testing.T) {
	stat, err := NewMonthlyStat("2025-08", 5000000, 1200000, "electricity", false)
	require.NoError(t, err)

	assert.Equal(t, int64(3800000), stat.Profit)
	assert.False(t, stat.AutoComputed)
}

func TestNewMonthlyStatValidation(t *testing.T) {
	_, err := NewMonthlyStat("08-2025-x", 1000, 0, "", false)
	assert.Error(t, err, "bad month")

	_, err = NewMonthlyStat("2025-08", -1, 0, "", false)
	assert.Error(t, err, "negative revenue")

	_, err = NewMonthlyStat("2025-08", 0, -1, "", false)
	assert.Error(t, err, "negative cost")
}

func TestComputeProfitCanGoNegative(t *testing.T) {
	stat, err := NewMonthlyStat("2025-08", 1000000, 1500000, "resurfacing", true)
	require.NoError(t, err)
	assert.Equal(t, int64(-500000), stat.Profit)
}
