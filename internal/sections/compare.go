package sections

import (
	"regexp"
	"strconv"
	"strings"
)

// Matches reports fuzzy equality between a current DOM value and the
// expected resume value: exact match, substring containment in either
// direction, punctuation-stripped equality, or date-aware comparison
// for date-like strings.
func Matches(current, expected string) bool {
	c := strings.ToLower(strings.TrimSpace(current))
	e := strings.ToLower(strings.TrimSpace(expected))
	if c == "" || e == "" {
		return c == e
	}
	if c == e {
		return true
	}
	if strings.Contains(c, e) || strings.Contains(e, c) {
		return true
	}
	if stripPunct(c) == stripPunct(e) {
		return true
	}
	if yearOf(c) != 0 && yearOf(e) != 0 {
		return CompareDates(c, e)
	}
	return false
}

// CompareDates treats two date-like strings as equal when their years
// match and their months match or either month is absent. "March 2020"
// equals "2020-03-15"; "June 2020" does not equal "March 2020".
func CompareDates(a, b string) bool {
	ya, yb := yearOf(a), yearOf(b)
	if ya == 0 || yb == 0 || ya != yb {
		return false
	}
	ma, mb := monthOf(a), monthOf(b)
	if ma == 0 || mb == 0 {
		return true
	}
	return ma == mb
}

var (
	yearPattern       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	isoMonthPattern   = regexp.MustCompile(`\b\d{4}-(\d{1,2})`)
	slashMonthPattern = regexp.MustCompile(`\b(\d{1,2})[/-]\d{4}\b|\b(\d{1,2})/\d{1,2}/\d{4}\b`)
	punctPattern      = regexp.MustCompile(`[^a-z0-9 ]+`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

var monthPrefixes = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// yearOf extracts a four-digit year, or 0.
func yearOf(s string) int {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}

// monthOf extracts a month (1-12) from a month name prefix or a numeric
// date layout, or 0 when the string names no month.
func monthOf(s string) int {
	lower := strings.ToLower(s)
	for i, prefix := range monthPrefixes {
		if strings.Contains(lower, prefix) {
			return i + 1
		}
	}
	if m := isoMonthPattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v >= 1 && v <= 12 {
			return v
		}
	}
	if m := slashMonthPattern.FindStringSubmatch(lower); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			return v
		}
	}
	return 0
}

// stripPunct lowercases and removes everything but letters, digits, and
// single spaces.
func stripPunct(s string) string {
	s = punctPattern.ReplaceAllString(strings.ToLower(s), "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}
