// Package matching provides the keyword predicate used by every field classifier.
package matching

import "strings"

// Matcher decides whether a field search string matches a pattern set.
// The substring implementation is deliberate: it is cheap and works
// across unseen form markups. Call sites depend on this interface so a
// stricter matcher (word-boundary, edit-distance) could be substituted.
type Matcher interface {
	MatchesAny(search string, patterns []string) bool
}

// Substring matches when any pattern is contained in the search string.
// No tokenization, no stemming, no word-boundary anchoring: "name"
// matches "username" and "company name" equally. Callers pass
// pre-lowercased patterns by convention.
type Substring struct{}

// MatchesAny reports whether any pattern is a substring of search.
func (Substring) MatchesAny(search string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(search, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// Default is the matcher used when a component is not given one.
var Default Matcher = Substring{}

// MatchesAny applies the default matcher.
func MatchesAny(search string, patterns []string) bool {
	return Default.MatchesAny(search, patterns)
}
