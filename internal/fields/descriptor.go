// Package fields builds the normalized semantic description of a form
// element that every downstream classifier consumes.
package fields

import (
	"strings"

	"github.com/redtoridefire/smart-autofill/internal/dom"
)

// nearbyTextCap drops parent text at or above this length so unrelated
// page prose does not leak into classification.
const nearbyTextCap = 200

// Descriptor is the per-field classification input. It is derived and
// ephemeral, recomputed on every fill pass, never persisted.
type Descriptor struct {
	ID          string
	Name        string
	Placeholder string
	AriaLabel   string
	Label       string
	NearbyText  string
	// Type is the effective control type: an input's type attribute, or
	// textarea/select/radio/checkbox.
	Type string
	Kind dom.Kind
	// SearchString is the lowercased space-joined concatenation of the
	// fields above. It is the only input to classification; no DOM-tree
	// signal survives beyond what is baked into it.
	SearchString string
}

// Describe builds a Descriptor from a snapshot field.
func Describe(f dom.Field) Descriptor {
	d := Descriptor{
		ID:          f.ID,
		Name:        f.Name,
		Placeholder: f.Placeholder,
		AriaLabel:   f.AriaLabel,
		Label:       f.Label,
		Type:        f.Type,
		Kind:        f.Kind,
	}
	if len(f.ParentText) < nearbyTextCap {
		d.NearbyText = strings.TrimSpace(f.ParentText)
	}
	d.SearchString = strings.ToLower(strings.TrimSpace(strings.Join([]string{
		d.ID, d.Name, d.Placeholder, d.AriaLabel, d.Label, d.NearbyText,
	}, " ")))
	return d
}
