// Package biztime provides the date and month string conversions used by the
// data layer. Storage always uses the ISO forms (YYYY-MM-DD, YYYY-MM); the
// display forms (DD-MM-YYYY, MM-YYYY) exist only at the UI boundary.
package biztime

import (
	"fmt"
	"strings"
	"time"
)

const (
	ISODateLayout      = "2006-01-02"
	ISOMonthLayout     = "2006-01"
	DisplayDateLayout  = "02-01-2006"
	DisplayMonthLayout = "01-2006"
)

// Today returns today's date in ISO form.
func Today() string {
	return time.Now().Format(ISODateLayout)
}

// Now returns the current timestamp in the form used by ledger rows.
func Now() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// ValidateDate checks an ISO date string.
func ValidateDate(isoDate string) error {
	if _, err := time.Parse(ISODateLayout, isoDate); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD (e.g. 2025-08-23): %q", isoDate)
	}
	return nil
}

// ValidateMonth checks an ISO month string.
func ValidateMonth(isoMonth string) error {
	if _, err := time.Parse(ISOMonthLayout, isoMonth); err != nil {
		return fmt.Errorf("month must be YYYY-MM (e.g. 2025-08): %q", isoMonth)
	}
	return nil
}

// NormalizeMonth accepts either YYYY-MM or MM-YYYY and returns YYYY-MM.
func NormalizeMonth(month string) (string, error) {
	month = strings.TrimSpace(month)
	if len(month) != 7 {
		return "", fmt.Errorf("month must be YYYY-MM or MM-YYYY: %q", month)
	}
	if month[2] == '-' {
		t, err := time.Parse(DisplayMonthLayout, month)
		if err != nil {
			return "", fmt.Errorf("invalid month (MM-YYYY): %q", month)
		}
		return t.Format(ISOMonthLayout), nil
	}
	if err := ValidateMonth(month); err != nil {
		return "", err
	}
	return month, nil
}

// MonthOf returns the YYYY-MM prefix of an ISO date.
func MonthOf(isoDate string) string {
	if len(isoDate) < 7 {
		return isoDate
	}
	return isoDate[:7]
}

// ToDisplayDate converts YYYY-MM-DD to DD-MM-YYYY. Unparseable input is
// returned as-is, matching the forgiving behavior the UI expects.
func ToDisplayDate(isoDate string) string {
	t, err := time.Parse(ISODateLayout, isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format(DisplayDateLayout)
}

// ToISODate converts DD-MM-YYYY or DD/MM/YYYY to YYYY-MM-DD.
func ToISODate(displayDate string) (string, error) {
	displayDate = strings.ReplaceAll(displayDate, "/", "-")
	t, err := time.Parse(DisplayDateLayout, displayDate)
	if err != nil {
		return "", fmt.Errorf("date must be DD-MM-YYYY: %q", displayDate)
	}
	return t.Format(ISODateLayout), nil
}

// ToDisplayMonth converts YYYY-MM to MM-YYYY. Unparseable input is returned as-is.
func ToDisplayMonth(isoMonth string) string {
	t, err := time.Parse(ISOMonthLayout, isoMonth)
	if err != nil {
		return isoMonth
	}
	return t.Format(DisplayMonthLayout)
}

// ToISOMonth converts MM-YYYY to YYYY-MM; input already in ISO form passes through.
func ToISOMonth(displayMonth string) (string, error) {
	return NormalizeMonth(displayMonth)
}
