// Package subscription holds the recurring monthly booking packages and
// their deterministic price derivation.
package subscription

import (
	"math"
	"strings"

	"courtledger/internal/shared/biztime"
	apperrors "courtledger/internal/shared/errors"
	"courtledger/internal/shared/id"
)

const (
	// BaseUnits is the canonical package size: 3 sessions x 1 hour.
	BaseUnits = 3

	MinSessionsPerWeek = 1
	MaxSessionsPerWeek = 14
	MinHoursPerSession = 1
	MaxHoursPerSession = 6
)

// Subscription is a recurring weekly booking package for a named customer
// within one month.
type Subscription struct {
	ID              string
	Month           string // YYYY-MM
	CustomerName    string
	Court           string
	SessionsPerWeek int
	HoursPerSession SessionHours
	Weekdays        string // free-text list of weekday names
	Multiplier      float64
	Price           int64
	Notes           string
}

// NewSubscription validates inputs and derives multiplier and price from the
// configured base price.
func NewSubscription(month, customerName, court string, sessionsPerWeek int, hours SessionHours, weekdays, notes string, basePrice int64) (*Subscription, error) {
	if err := biztime.ValidateMonth(month); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, apperrors.NewValidationError("customer name must not be empty")
	}
	price, err := ComputePrice(sessionsPerWeek, hours.Hours, basePrice)
	if err != nil {
		return nil, err
	}
	return &Subscription{
		ID:              id.NewSubscriptionID(),
		Month:           month,
		CustomerName:    customerName,
		Court:           court,
		SessionsPerWeek: sessionsPerWeek,
		HoursPerSession: hours,
		Weekdays:        strings.TrimSpace(weekdays),
		Multiplier:      Multiplier(sessionsPerWeek, hours.Hours),
		Price:           price,
		Notes:           strings.TrimSpace(notes),
	}, nil
}

// ComputePrice scales the base package price by sessions x hours over the
// canonical 3 units, rounded to the nearest VND.
func ComputePrice(sessionsPerWeek, hoursPerSession int, basePrice int64) (int64, error) {
	if sessionsPerWeek < MinSessionsPerWeek || sessionsPerWeek > MaxSessionsPerWeek {
		return 0, apperrors.NewValidationError("sessions per week out of range (1-14)")
	}
	if hoursPerSession < MinHoursPerSession || hoursPerSession > MaxHoursPerSession {
		return 0, apperrors.NewValidationError("hours per session out of range (1-6)")
	}
	units := sessionsPerWeek * hoursPerSession
	factor := float64(units) / float64(BaseUnits)
	return int64(math.Round(float64(basePrice) * factor)), nil
}

// Multiplier is the informational units/3 ratio, rounded to 2 decimals.
func Multiplier(sessionsPerWeek, hoursPerSession int) float64 {
	units := sessionsPerWeek * hoursPerSession
	return math.Round(float64(units)/float64(BaseUnits)*100) / 100
}
