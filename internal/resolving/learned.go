package resolving

import (
	"strings"

	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/matching"
)

// Key-length floors keep noise identifiers ("q1", "f") from matching.
const (
	minExactKeyLen = 3
	minFuzzyKeyLen = 4
)

// learnedMatch looks up a previously observed answer for a field using
// three escalating strategies: exact key match on id/name, fuzzy
// bidirectional containment against label-like terms, then coarse
// semantic bucketing.
func (r *Resolver) learnedMatch(d fields.Descriptor, learned map[string]string) string {
	if len(learned) == 0 {
		return ""
	}

	// Exact match on field id or name.
	for _, key := range []string{d.ID, d.Name} {
		if len(key) < minExactKeyLen {
			continue
		}
		if value, ok := learned[key]; ok && value != "" {
			return value
		}
	}

	// Fuzzy match: a learned key and a label-like term match when
	// either string contains the other.
	for _, term := range []string{d.Label, d.Placeholder, d.AriaLabel} {
		if len(term) < minFuzzyKeyLen {
			continue
		}
		normalizedTerm := strings.ToLower(strings.TrimSpace(term))
		for key, value := range learned {
			normalizedKey := strings.ToLower(strings.TrimSpace(key))
			if normalizedKey == "" || value == "" {
				continue
			}
			if normalizedKey == normalizedTerm ||
				strings.Contains(normalizedKey, normalizedTerm) ||
				strings.Contains(normalizedTerm, normalizedKey) {
				return value
			}
		}
	}

	// Semantic match: both the field and the learned key fall in the
	// same coarse category.
	search := d.SearchString
	for key, value := range learned {
		keyLower := strings.ToLower(key)
		if value == "" {
			continue
		}
		if sameSemanticBucket(r.Matcher, search, keyLower) {
			return value
		}
	}

	return ""
}

// sameSemanticBucket reports whether a search string and a learned key
// both describe a job title, years of experience, or compensation.
func sameSemanticBucket(m matching.Matcher, search, key string) bool {
	if (m.MatchesAny(search, []string{"job title", "position", "role"}) &&
		m.MatchesAny(key, []string{"job title", "position", "role"})) ||
		(m.MatchesAny(search, []string{"title"}) && m.MatchesAny(key, []string{"title"})) {
		return true
	}
	if m.MatchesAny(search, []string{"years of experience", "experience years"}) &&
		m.MatchesAny(key, []string{"experience", "years"}) {
		return true
	}
	if m.MatchesAny(search, []string{"salary", "compensation"}) &&
		m.MatchesAny(key, []string{"salary", "compensation", "pay"}) {
		return true
	}
	return false
}
