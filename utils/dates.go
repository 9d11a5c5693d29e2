package utils

import (
	"strings"
	"time"
)

// DatePlaceholder is displayed wherever a date is absent or unreadable.
const DatePlaceholder = "-"

const PayloadDateLayout = "2006-01-02"

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	PayloadDateLayout,
}

func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO date as "2 Jan 2006".
func FormatDate(s string) string {
	t, ok := ParseISODate(s)
	if !ok {
		return DatePlaceholder
	}
	return t.Format("2 Jan 2006")
}

// NormalizePayloadDate converts any accepted ISO input to yyyy-mm-dd, the
// format the API expects in request bodies. Unreadable input yields "".
func NormalizePayloadDate(s string) string {
	t, ok := ParseISODate(s)
	if !ok {
		return ""
	}
	return t.Format(PayloadDateLayout)
}

// IsOverdue reports whether due lies before the start of now's day. Missing
// dates are never overdue.
func IsOverdue(due string, now time.Time) bool {
	t, ok := ParseISODate(due)
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.Before(today)
}
