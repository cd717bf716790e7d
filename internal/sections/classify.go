package sections

import (
	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/matching"
	"github.com/redtoridefire/smart-autofill/internal/types"
)

// Category is the resume attribute a section field maps to.
type Category string

// Section field categories.
const (
	CatTitle       Category = "title"
	CatCompany     Category = "company"
	CatLocation    Category = "location"
	CatStartDate   Category = "start_date"
	CatEndDate     Category = "end_date"
	CatDescription Category = "description"
	CatSchool      Category = "school"
	CatDegree      Category = "degree"
	CatMajor       Category = "major"
	CatMinor       Category = "minor"
	CatGPA         Category = "gpa"
	CatHonors      Category = "honors"
)

// rule classifies a field into a category unless an exclude keyword
// matches. Excludes keep "desired title"/"position seeking" framing out
// of the history categories.
type rule struct {
	category Category
	patterns []string
	excludes []string
}

var desiredFraming = []string{"desired", "seeking", "preferred"}

var workRules = []rule{
	{CatCompany, []string{"company", "employer", "organization", "organisation"}, desiredFraming},
	{CatTitle, []string{"job title", "job_title", "position", "role", "title"}, desiredFraming},
	{CatStartDate, []string{"start date", "start_date", "from date", "date from", "start"}, desiredFraming},
	{CatEndDate, []string{"end date", "end_date", "to date", "date to", "until", "end"}, desiredFraming},
	{CatLocation, []string{"location", "city"}, desiredFraming},
	{CatDescription, []string{"description", "duties", "responsibilities", "summary"}, desiredFraming},
}

var educationRules = []rule{
	{CatSchool, []string{"school", "university", "college", "institution"}, desiredFraming},
	{CatDegree, []string{"degree", "qualification", "diploma"}, desiredFraming},
	{CatMajor, []string{"major", "field of study", "field_of_study", "concentration", "area of study"}, desiredFraming},
	{CatMinor, []string{"minor"}, desiredFraming},
	{CatGPA, []string{"gpa", "grade point"}, desiredFraming},
	{CatHonors, []string{"honors", "honours", "awards"}, desiredFraming},
	{CatStartDate, []string{"start date", "start_date", "from date", "start"}, desiredFraming},
	{CatEndDate, []string{"end date", "end_date", "graduation", "grad date", "until", "end"}, desiredFraming},
	{CatLocation, []string{"location", "city"}, desiredFraming},
}

// Classify maps a field descriptor to the kind's category, if any.
// Rules are ordered: the company rule precedes the title rule because
// "company name" would otherwise be swallowed by the bare "title"
// pattern's broader siblings.
func Classify(d fields.Descriptor, kind Kind, m matching.Matcher) (Category, bool) {
	rules := workRules
	if kind == Education {
		rules = educationRules
	}
	for _, r := range rules {
		if m.MatchesAny(d.SearchString, r.patterns) && !m.MatchesAny(d.SearchString, r.excludes) {
			return r.category, true
		}
	}
	return "", false
}

// expectedWorkValue returns the resume attribute for a work category.
func expectedWorkValue(rec types.Experience, cat Category) string {
	switch cat {
	case CatTitle:
		return rec.Title
	case CatCompany:
		return rec.Company
	case CatLocation:
		return rec.Location
	case CatStartDate:
		return rec.StartDate
	case CatEndDate:
		return rec.EndDate
	case CatDescription:
		return rec.Description
	}
	return ""
}

// expectedEducationValue returns the resume attribute for an education category.
func expectedEducationValue(rec types.Education, cat Category) string {
	switch cat {
	case CatSchool:
		return rec.School
	case CatDegree:
		return rec.Degree
	case CatMajor:
		return rec.Major
	case CatMinor:
		return rec.Minor
	case CatGPA:
		return rec.GPA
	case CatHonors:
		return rec.Honors
	case CatLocation:
		return rec.Location
	case CatStartDate:
		return rec.StartDate
	case CatEndDate:
		return rec.EndDate
	}
	return ""
}
