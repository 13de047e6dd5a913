// Package format holds display formatting helpers shared by the report
// exporter and the UI boundary.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var vndPrinter = message.NewPrinter(language.Vietnamese)

// Currency renders a VND amount with Vietnamese thousands separators,
// e.g. 1234567 -> "1.234.567 đ".
func Currency(amount int64) string {
	return vndPrinter.Sprintf("%d đ", amount)
}

// ParseCurrency extracts the ASCII digits of a human-entered VND string
// ("1.234.567 đ", "1,234,567", "1234567") into an amount. Everything else,
// digits from other scripts included, is ignored; strings without digits
// parse to 0.
func ParseCurrency(raw string) int64 {
	var amount int64
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			amount = amount*10 + int64(r-'0')
		}
	}
	return amount
}
