package domain

import (
	"strings"
	"time"
)

// dateLayouts lists the accepted calendar date formats, tried in order.
// Police register exports use DD/MM/YYYY; the API accepts ISO 8601 as well.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
}

// HourOfDay extracts the hour of day from a free-form clock string.
//
// The digits before the first ':' are read as the hour. A "pm" marker
// anywhere in the string adds 12 unless the hour is already 12; "am" maps
// hour 12 back to 0. Strings with no ':' separator parse as hour 0 (many
// source rows carry bare labels like "Night" in place of a clock time), as
// do strings whose hour digits cannot be read. The result is not clamped:
// "26:00" yields 26, and callers skip values outside [0,23].
func HourOfDay(s string) int {
	before, _, found := strings.Cut(s, ":")
	if !found {
		return 0
	}

	hour, ok := leadingInt(before)
	if !ok {
		return 0
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "pm") && hour != 12:
		hour += 12
	case strings.Contains(lower, "am") && hour == 12:
		hour = 0
	}
	return hour
}

// leadingInt parses the leading decimal digits of s, ignoring surrounding
// whitespace and anything after the digits.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n := 0
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == 0 {
		return 0, false
	}
	return n, true
}

// TimeOfDayFor maps an hour in [0,23] to a coarse time-of-day label.
// Hours outside the range return an empty string.
func TimeOfDayFor(hour int) string {
	switch {
	case hour < 0 || hour > 23:
		return ""
	case hour >= 21 || hour <= 4:
		return TimeOfDayNight
	case hour <= 11:
		return TimeOfDayMorning
	case hour <= 16:
		return TimeOfDayAfternoon
	default:
		return TimeOfDayEvening
	}
}

// ParseDate parses a calendar date in any accepted layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate rewrites a parseable date to ISO 8601 (YYYY-MM-DD) so that
// lexical comparison orders dates chronologically. Unparseable input is
// returned trimmed but otherwise untouched.
func NormalizeDate(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format("2006-01-02")
	}
	return strings.TrimSpace(s)
}
