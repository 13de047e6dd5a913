// Package booking holds the court booking aggregate: one reserved time slot
// on one court on one date, plus the slot arithmetic and the rate table.
package booking

import (
	"strings"

	apperrors "courtledger/internal/shared/errors"
	"courtledger/internal/shared/biztime"
	"courtledger/internal/shared/id"
)

// Courts is the fixed set of rentable courts.
var Courts = []string{"Court 1", "Court 2"}

// IsValidCourt reports whether name is one of the rentable courts.
func IsValidCourt(name string) bool {
	for _, c := range Courts {
		if c == name {
			return true
		}
	}
	return false
}

// Booking represents one reserved time slot.
type Booking struct {
	ID       string
	Date     string // ISO YYYY-MM-DD
	Court    string
	Slot     TimeSlot
	// SlotText is the stored textual slot. It normally equals Slot.String();
	// for legacy rows whose slot cell does not parse it preserves the raw
	// cell while Slot stays degenerate.
	SlotText string
	Price    int64
	Activity string
	Person   string
	// RowIndex is the zero-based data-row position at the time the record
	// was last loaded. Informational only.
	RowIndex int
}

// NewBooking validates inputs and builds a booking with a fresh record ID.
// Price zero is allowed (comped slots); negative prices are not.
func NewBooking(date, court, slot string, price int64, activity, person string) (*Booking, error) {
	if err := biztime.ValidateDate(date); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !IsValidCourt(court) {
		return nil, apperrors.NewValidationError("unknown court", court)
	}
	ts, err := ParseTimeSlot(slot)
	if err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative")
	}
	return &Booking{
		ID:       id.NewBookingID(),
		Date:     date,
		Court:    court,
		Slot:     ts,
		SlotText: ts.String(),
		Price:    price,
		Activity: normalizeActivity(activity),
		Person:   strings.TrimSpace(person),
	}, nil
}

// Month returns the booking's YYYY-MM month key.
func (b *Booking) Month() string {
	return biztime.MonthOf(b.Date)
}

func normalizeActivity(activity string) string {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return ""
	}
	runes := []rune(strings.ToLower(activity))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
