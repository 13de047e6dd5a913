package subscription

import (
	"strconv"
	"strings"

	apperrors "courtledger/internal/shared/errors"
)

// SessionHours is the "hours per session" value of a subscription. It is
// stored either as a bare integer ("2") or as a descriptive string carrying
// a concrete daily window ("2 (07:00-09:00)"). Price derivation always uses
// the leading integer component.
type SessionHours struct {
	Hours int
	// Raw is the stored form, kept verbatim for display.
	Raw string
}

// ParseSessionHours accepts "N" or "N (HH:MM-HH:MM)" with N in [1, 6].
func ParseSessionHours(raw string) (SessionHours, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SessionHours{}, apperrors.NewValidationError("hours per session must not be empty")
	}
	lead := raw
	if i := strings.Index(raw, "("); i >= 0 {
		lead = raw[:i]
	} else if fields := strings.Fields(raw); len(fields) > 0 {
		lead = fields[0]
	}
	hours, err := strconv.Atoi(strings.TrimSpace(lead))
	if err != nil {
		return SessionHours{}, apperrors.NewValidationError("hours per session must start with a number", raw)
	}
	if hours < MinHoursPerSession || hours > MaxHoursPerSession {
		return SessionHours{}, apperrors.NewValidationError("hours per session out of range (1-6)", raw)
	}
	return SessionHours{Hours: hours, Raw: raw}, nil
}

// FromHours builds the bare-integer form.
func FromHours(hours int) (SessionHours, error) {
	return ParseSessionHours(strconv.Itoa(hours))
}

// String returns the stored form.
func (s SessionHours) String() string {
	return s.Raw
}
