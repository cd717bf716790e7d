package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesAny_Basic(t *testing.T) {
	assert.True(t, MatchesAny("first name", []string{"first name", "firstname"}))
	assert.False(t, MatchesAny("last name", []string{"first name"}))
}

func TestMatchesAny_SubstringSemantics(t *testing.T) {
	// No word boundaries: "name" matches inside larger words. This is a
	// known source of false positives.
	assert.True(t, MatchesAny("username", []string{"name"}))
	assert.True(t, MatchesAny("company name here", []string{"name"}))
}

func TestMatchesAny_PatternsLowercasedByMatcher(t *testing.T) {
	assert.True(t, MatchesAny("email address", []string{"EMAIL"}))
}

func TestMatchesAny_EmptyInputs(t *testing.T) {
	assert.False(t, MatchesAny("anything", nil))
	assert.False(t, MatchesAny("anything", []string{""}))
	assert.False(t, MatchesAny("", []string{"name"}))
}

func TestSubstring_ImplementsMatcher(t *testing.T) {
	var m Matcher = Substring{}
	assert.True(t, m.MatchesAny("phone number", PhonePatterns))
}
