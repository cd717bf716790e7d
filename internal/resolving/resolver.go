// Package resolving turns a field descriptor into a value drawn from
// the profile, learned responses, or nothing, in that strict order.
package resolving

import (
	"time"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/matching"
	"github.com/redtoridefire/smart-autofill/internal/types"
)

// Source identifies which data source produced a resolved value.
type Source int

// Resolution sources.
const (
	SourceNone Source = iota
	SourceProfile
	SourceLearned
)

func (s Source) String() string {
	switch s {
	case SourceProfile:
		return "profile"
	case SourceLearned:
		return "learned"
	default:
		return "none"
	}
}

// Resolver computes values for classified fields. Resolution is pure:
// writing is delegated to the writer.
type Resolver struct {
	Matcher matching.Matcher
	// Now supplies the clock for availability dates.
	Now func() time.Time
}

// New returns a Resolver with the default matcher and clock.
func New() *Resolver {
	return &Resolver{Matcher: matching.Default, Now: time.Now}
}

func (r *Resolver) matches(search string, patterns []string) bool {
	return r.Matcher.MatchesAny(search, patterns)
}

// Resolve returns the value for a field and its source. Smart matching
// against profile data always wins; learned responses are consulted
// only when smart matching yields nothing. An empty value means no fill.
func (r *Resolver) Resolve(d fields.Descriptor, profile *types.Profile, resume *types.ResumeData, learned map[string]string) (string, Source) {
	p := effectiveProfile(profile, resume)

	if value := r.smartMatch(d, p); value != "" {
		return value, SourceProfile
	}

	if value := r.learnedMatch(d, learned); value != "" {
		return value, SourceLearned
	}

	return "", SourceNone
}

// effectiveProfile overlays resume contact data under the profile so
// gaps in the saved profile still resolve when the resume sweep found
// the answer.
func effectiveProfile(profile *types.Profile, resume *types.ResumeData) types.Profile {
	var p types.Profile
	if profile != nil {
		p = *profile
	}
	if resume == nil {
		return p
	}
	if p.FullName == "" {
		p.FullName = resume.Name
	}
	if p.Email == "" {
		p.Email = resume.Email
	}
	if p.Phone == "" {
		p.Phone = resume.Phone
	}
	if p.LinkedIn == "" {
		p.LinkedIn = resume.LinkedIn
	}
	if p.Location == "" {
		p.Location = resume.Location
	}
	return p
}

// smartMatch walks the ordered category rules. An empty return defers
// to the learned lookup; categories the profile can never answer (street
// address lines, zip codes, job title, salary) return empty here and
// leave the field to learned data or manual entry.
func (r *Resolver) smartMatch(d fields.Descriptor, p types.Profile) string {
	search := d.SearchString

	// Name family. First/last rules carry explicit exclusions so the
	// sibling fields do not swallow each other.
	if r.matches(search, matching.NamePatterns) {
		if r.matches(search, matching.FirstNamePatterns) && !r.matches(search, matching.FirstNameExcludes) {
			return p.FirstName()
		}
		if r.matches(search, matching.LastNamePatterns) && !r.matches(search, matching.LastNameExcludes) {
			return p.LastName()
		}
		if r.matches(search, matching.MiddleNamePatterns) {
			return ""
		}
		return p.FullName
	}

	if r.matches(search, matching.EmailPatterns) || d.Type == "email" {
		return p.Email
	}

	if r.matches(search, matching.PhonePatterns) || d.Type == "tel" {
		return p.Phone
	}

	if r.matches(search, matching.LinkedInPatterns) {
		return p.LinkedIn
	}

	// Address family. Street-address lines, apartments, suites, and
	// zip/postal codes are never derivable from "City, State", so they
	// are refused rather than guessed.
	if r.matches(search, matching.LocationPatterns) {
		if r.matches(search, matching.StreetAddressPatterns) {
			return ""
		}
		if r.matches(search, matching.ZipPatterns) {
			return ""
		}
		if r.matches(search, matching.StatePatterns) && !r.matches(search, []string{"city", "address"}) {
			return p.State()
		}
		if r.matches(search, matching.CityPatterns) && !r.matches(search, []string{"state", "zip"}) {
			return p.City()
		}
		if r.matches(search, matching.CountryPatterns) {
			return "United States"
		}
		return p.Location
	}

	if r.matches(search, matching.WorkAuthPatterns) {
		if p.WorkAuth != "" {
			return p.WorkAuth
		}
		return "Yes"
	}

	// Job title, years of experience, and salary are too
	// context-dependent for static profile data. Left for learned
	// responses or manual entry.
	if r.matches(search, matching.JobTitlePatterns) {
		return ""
	}
	if r.matches(search, matching.ExperienceYearsPatterns) && !r.matches(search, matching.ExperienceProseExcludes) {
		if d.Type == "number" {
			return ""
		}
	}
	if r.matches(search, matching.SalaryPatterns) {
		return ""
	}

	if r.matches(search, matching.StartDatePatterns) {
		return r.availability(d)
	}

	// Generic yes/no heuristics for choice controls.
	if d.Kind == dom.KindRadio || d.Kind == dom.KindSelect {
		if r.matches(search, matching.AgePatterns) {
			return "yes"
		}
		if r.matches(search, matching.CriminalPatterns) {
			return "no"
		}
		if r.matches(search, matching.DriverPatterns) {
			return "yes"
		}
	}

	return ""
}
