package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courtledger/internal/shared/config"
)

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		PlayRateDay:         100000,
		PlayRateEvening:     120000,
		PracticeRateDay:     60000,
		PracticeRateEvening: 80000,
		LightSurcharge:      20000,
		EveningStartHour:    17,
		OffPeakBeforeHour:   6,
		OffPeakFromHour:     22,
		PriceWarnCeiling:    5000000,
	}
}

func TestIsOffPeak(t *testing.T) {
	rates := NewRateTable(testPricingConfig())

	assert.True(t, rates.IsOffPeak(TimeSlot{5, 7}), "early morning start")
	assert.True(t, rates.IsOffPeak(TimeSlot{22, 23}), "late evening start")
	assert.False(t, rates.IsOffPeak(TimeSlot{6, 8}))
	assert.False(t, rates.IsOffPeak(TimeSlot{17, 19}))
	assert.False(t, rates.IsOffPeak(TimeSlot{21, 23}))
}

func TestSuggestPrice(t *testing.T) {
	rates := NewRateTable(testPricingConfig())

	tests := []struct {
		name     string
		slot     TimeSlot
		activity string
		want     int64
	}{
		{name: "play day", slot: TimeSlot{8, 10}, activity: "Play", want: 100000},
		{name: "play evening", slot: TimeSlot{17, 19}, activity: "Play", want: 120000},
		{name: "practice day", slot: TimeSlot{8, 10}, activity: "Practice", want: 60000},
		{name: "practice evening", slot: TimeSlot{19, 21}, activity: "practice", want: 80000},
		{name: "unknown activity", slot: TimeSlot{8, 10}, activity: "Tournament", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rates.SuggestPrice(tt.slot, tt.activity))
		})
	}
}

func TestSlotPrice(t *testing.T) {
	rates := NewRateTable(testPricingConfig())

	assert.Equal(t, int64(200000), rates.SlotPrice("Play", TimeSlot{8, 10}, false))
	assert.Equal(t, int64(240000), rates.SlotPrice("Play", TimeSlot{8, 10}, true))
	assert.Equal(t, int64(240000), rates.SlotPrice("Practice", TimeSlot{5, 8}, true))
	assert.Equal(t, int64(0), rates.SlotPrice("Play", TimeSlot{8, 8}, true), "degenerate slot")
}
