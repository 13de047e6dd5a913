package booking

import (
	"strings"

	"courtledger/internal/shared/config"
)

// Activity labels recognized by the rate table.
const (
	ActivityPlay     = "Play"
	ActivityPractice = "Practice"
)

// RateTable derives suggested booking prices. The store itself never
// recomputes a booking's price; callers use this to prefill it.
type RateTable struct {
	cfg config.PricingConfig
}

func NewRateTable(cfg config.PricingConfig) *RateTable {
	return &RateTable{cfg: cfg}
}

// IsOffPeak reports whether a slot starts inside one of the lighting
// surcharge bands (early morning or late evening).
func (r *RateTable) IsOffPeak(slot TimeSlot) bool {
	return slot.Start < r.cfg.OffPeakBeforeHour || slot.Start >= r.cfg.OffPeakFromHour
}

// hourlyRate returns the base hourly rate for an activity, zero for
// unrecognized labels.
func (r *RateTable) hourlyRate(activity string, evening bool) int64 {
	switch strings.ToLower(strings.TrimSpace(activity)) {
	case strings.ToLower(ActivityPlay):
		if evening {
			return r.cfg.PlayRateEvening
		}
		return r.cfg.PlayRateDay
	case strings.ToLower(ActivityPractice):
		if evening {
			return r.cfg.PracticeRateEvening
		}
		return r.cfg.PracticeRateDay
	}
	return 0
}

// SlotPrice computes base rate plus optional lighting surcharge, per hour,
// over the slot duration. Degenerate slots price to zero.
func (r *RateTable) SlotPrice(activity string, slot TimeSlot, useLight bool) int64 {
	if slot.End <= slot.Start {
		return 0
	}
	perHour := r.hourlyRate(activity, false)
	if useLight {
		perHour += r.cfg.LightSurcharge
	}
	return perHour * int64(slot.Hours())
}

// SuggestPrice returns the weekday table rate for a slot, or zero when the
// activity is unknown. Evening pricing applies from the configured hour on.
func (r *RateTable) SuggestPrice(slot TimeSlot, activity string) int64 {
	evening := slot.Start >= r.cfg.EveningStartHour
	return r.hourlyRate(activity, evening)
}
