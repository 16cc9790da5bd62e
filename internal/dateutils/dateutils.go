// Package dateutils parses the period dates carried on AR extract rows.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts seen in facility extracts.
const (
	DateLayoutUS      = "01/02/2006"
	DateLayoutUSShort = "1/2/2006"
	DateLayoutISO     = "2006-01-02"
	DateLayoutFull    = "2006-01-02 15:04:05"
	DateLayoutUSTime  = "1/2/2006 15:04"
	DateLayoutMonth   = "2-Jan-2006"
)

// ExtractFormats are tried in order. US month-first layouts come before
// anything else because the extracts are produced by US systems; day-first
// layouts are deliberately absent since they are ambiguous with them.
var ExtractFormats = []string{
	DateLayoutUS,
	DateLayoutUSShort,
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutUSTime,
	"1/2/2006 3:04:05 PM",
	DateLayoutMonth,
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate parses an extract date. It returns the time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}
	for _, layout := range ExtractFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// FormatUS formats a date as MM/DD/YYYY, or "" for the zero time.
func FormatUS(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutUS)
}

// FormatISO formats a date as YYYY-MM-DD, or "" for the zero time.
func FormatISO(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}
