package csv

import "strings"

// sanitizeCell neutralizes spreadsheet-formula injection: a free-text cell
// starting with '=', '+', '-' or '@' gets a leading apostrophe. Applied at
// write time only and never stripped on read; the apostrophe is a benign
// visible prefix when the file is opened in a spreadsheet program.
func sanitizeCell(text string) string {
	if text == "" {
		return text
	}
	switch text[0] {
	case '=', '+', '-', '@':
		return "'" + text
	}
	return text
}

// sanitizeName trims and sanitizes a name-like field in one step.
func sanitizeName(text string) string {
	return sanitizeCell(strings.TrimSpace(text))
}
