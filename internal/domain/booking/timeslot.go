package booking

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "courtledger/internal/shared/errors"
)

// TimeSlot is a half-open hour interval [Start, End) on a single day.
// Its canonical textual form is "5h-7h".
type TimeSlot struct {
	Start int
	End   int
}

// ParseTimeSlot normalizes a slot string of the form "<start>h-<end>h"
// (case-insensitive, leading zeros allowed) and validates that
// 0 <= start < end <= 23.
func ParseTimeSlot(slot string) (TimeSlot, error) {
	if slot == "" || !strings.Contains(slot, "-") {
		return TimeSlot{}, apperrors.NewValidationError("invalid time slot", slot)
	}
	parts := strings.SplitN(slot, "-", 2)
	start, okA := parseHour(parts[0])
	end, okB := parseHour(parts[1])
	if !okA || !okB {
		return TimeSlot{}, apperrors.NewValidationError("invalid time slot", slot)
	}
	if start < 0 || start > 23 || end < 0 || end > 23 {
		return TimeSlot{}, apperrors.NewValidationError("slot hours must be within 0-23", slot)
	}
	if start >= end {
		return TimeSlot{}, apperrors.NewValidationError("slot start hour must be before end hour", slot)
	}
	return TimeSlot{Start: start, End: end}, nil
}

func parseHour(s string) (int, bool) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "h")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the canonical textual form, e.g. "5h-7h".
func (t TimeSlot) String() string {
	return fmt.Sprintf("%dh-%dh", t.Start, t.End)
}

// Hours returns the slot duration in whole hours.
func (t TimeSlot) Hours() int {
	return t.End - t.Start
}

// Overlaps reports whether two slots intersect under half-open semantics:
// a shared boundary hour ("8h-10h" next to "10h-12h") is not an overlap.
// Degenerate slots (start >= end) never overlap anything.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	if t.Start >= t.End || other.Start >= other.End {
		return false
	}
	return !(t.End <= other.Start || other.End <= t.Start)
}

// SlotsOverlap is the raw-string form of Overlaps, tolerant of malformed
// input: strings that do not parse are treated as degenerate and never
// overlap. The integrity checker uses this when scanning stored rows.
func SlotsOverlap(a, b string) bool {
	sa, err := ParseTimeSlot(a)
	if err != nil {
		return false
	}
	sb, err := ParseTimeSlot(b)
	if err != nil {
		return false
	}
	return sa.Overlaps(sb)
}
