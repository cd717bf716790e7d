// Package sections locates repeated-group form sections (one job, one
// degree), maps their fields to resume record attributes, and forces
// them to agree with the resume.
package sections

import (
	"regexp"
	"sort"
	"strings"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/matching"
)

// Kind distinguishes work-experience sections from education sections.
type Kind int

// Section kinds.
const (
	Work Kind = iota
	Education
)

func (k Kind) String() string {
	if k == Education {
		return "education"
	}
	return "work"
}

// Section is one detected repeated group, consumed immediately by the
// corrector. Index is the document-order position used for the
// positional zip against resume records.
type Section struct {
	ContainerKey string
	Fields       []dom.Field
	Index        int
}

// Container attribute keywords per kind (strategy 1).
var (
	workContainerPatterns = []string{"experience", "employment", "work", "history"}
	eduContainerPatterns  = []string{"education", "school", "degree", "university"}
)

// Minimum group sizes for suffix grouping (strategy 2). Work entries
// carry more fields than education entries.
const (
	minWorkGroupFields = 3
	minEduGroupFields  = 2
)

// Add-another control text per kind (strategy 3).
var (
	addJobPatterns = []string{
		"add another job", "add another position", "add another employer",
		"add experience", "add work experience", "add position", "add job", "add employment",
	}
	addSchoolPatterns = []string{
		"add another school", "add another degree", "add education",
		"add school", "add degree", "add another education",
	}
)

// indexSuffix captures a trailing numeric index like _1, [2], or -3.
var indexSuffix = regexp.MustCompile(`[_\-\[](\d+)\]?$`)

// Detect finds the repeated sections of one kind using three fallback
// strategies, attempted in order until one yields at least one section.
func Detect(snap *dom.Snapshot, kind Kind, m matching.Matcher) []Section {
	if m == nil {
		m = matching.Default
	}
	if s := byContainer(snap, kind, m); len(s) > 0 {
		return s
	}
	if s := bySuffix(snap, kind, m); len(s) > 0 {
		return s
	}
	return byAddControl(snap, kind, m)
}

func containerPatterns(kind Kind) []string {
	if kind == Education {
		return eduContainerPatterns
	}
	return workContainerPatterns
}

// byContainer groups fields by their innermost ancestor whose
// class/id/data attributes mention the kind's keywords. Only visible
// containers are represented here: hidden subtrees never reach the
// snapshot.
func byContainer(snap *dom.Snapshot, kind Kind, m matching.Matcher) []Section {
	patterns := containerPatterns(kind)
	groups := make(map[string][]dom.Field)
	var order []string

	for _, f := range snap.Fields {
		for _, a := range f.Ancestors {
			if !m.MatchesAny(a.Attrs, patterns) {
				continue
			}
			if _, seen := groups[a.Key]; !seen {
				order = append(order, a.Key)
			}
			groups[a.Key] = append(groups[a.Key], f)
			break
		}
	}

	var out []Section
	for i, key := range order {
		out = append(out, Section{ContainerKey: key, Fields: groups[key], Index: i})
	}
	return out
}

// bySuffix groups fields whose name or id ends in a numeric index. A
// group qualifies when it is large enough and at least one field looks
// like the kind (a company/title field for work, a school/degree field
// for education).
func bySuffix(snap *dom.Snapshot, kind Kind, m matching.Matcher) []Section {
	minFields := minWorkGroupFields
	if kind == Education {
		minFields = minEduGroupFields
	}

	groups := make(map[string][]dom.Field)
	for _, f := range snap.Fields {
		suffix := ""
		for _, ident := range []string{f.Name, f.ID} {
			if m := indexSuffix.FindStringSubmatch(ident); m != nil {
				suffix = m[1]
				break
			}
		}
		if suffix == "" {
			continue
		}
		groups[suffix] = append(groups[suffix], f)
	}

	var suffixes []string
	for suffix, group := range groups {
		if len(group) < minFields {
			continue
		}
		if !groupLooksLike(group, kind, m) {
			continue
		}
		suffixes = append(suffixes, suffix)
	}
	sort.Slice(suffixes, func(i, j int) bool {
		// Numeric suffixes sort numerically; same length means lexical
		// order agrees with numeric order.
		if len(suffixes[i]) != len(suffixes[j]) {
			return len(suffixes[i]) < len(suffixes[j])
		}
		return suffixes[i] < suffixes[j]
	})

	var out []Section
	for i, suffix := range suffixes {
		out = append(out, Section{ContainerKey: "suffix-" + suffix, Fields: groups[suffix], Index: i})
	}
	return out
}

// groupLooksLike reports whether any field of a suffix group classifies
// into the kind's anchor categories.
func groupLooksLike(group []dom.Field, kind Kind, m matching.Matcher) bool {
	anchors := []string{"company", "employer", "job title", "position", "title"}
	if kind == Education {
		anchors = []string{"school", "university", "college", "degree", "institution"}
	}
	for _, f := range group {
		if m.MatchesAny(fields.Describe(f).SearchString, anchors) {
			return true
		}
	}
	return false
}

// byAddControl treats the nearest enclosing form/section container of an
// "Add another {job|school}" control as a template section.
func byAddControl(snap *dom.Snapshot, kind Kind, m matching.Matcher) []Section {
	patterns := addJobPatterns
	if kind == Education {
		patterns = addSchoolPatterns
	}

	for _, ctl := range snap.Controls {
		if !m.MatchesAny(strings.ToLower(ctl.Text), patterns) {
			continue
		}
		key := enclosingFormKey(ctl.Ancestors)
		if key == "" {
			continue
		}
		var group []dom.Field
		for _, f := range snap.Fields {
			for _, a := range f.Ancestors {
				if a.Key == key {
					group = append(group, f)
					break
				}
			}
		}
		if len(group) > 0 {
			return []Section{{ContainerKey: key, Fields: group, Index: 0}}
		}
	}
	return nil
}

// enclosingFormKey returns the key of the nearest form-like ancestor.
func enclosingFormKey(ancestors []dom.Ancestor) string {
	for _, a := range ancestors {
		switch a.Tag {
		case "form", "section", "fieldset":
			return a.Key
		}
	}
	if len(ancestors) > 0 {
		return ancestors[0].Key
	}
	return ""
}
