// Package dom provides the page abstraction the fill engine operates on:
// a snapshot of form fields and clickable controls plus write operations.
// Two backends exist: an in-memory goquery document for static HTML and
// a chromedp-driven live browser page.
package dom

import "context"

// Kind is the write-dispatch variant of a form control. Each kind
// carries only the operations valid for it in the writer.
type Kind string

// Control kinds.
const (
	KindText     Kind = "text" // text-like inputs and textareas
	KindSelect   Kind = "select"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
)

// Ref is a backend-scoped locator for an element within one snapshot.
// Refs are stable for the lifetime of the page, which is what the
// filled-by-us tracking relies on.
type Ref string

// Option is one choice in a select control.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Ancestor describes one enclosing container of a field, innermost
// first. Attrs concatenates the container's id, class, and data-*
// attribute text, lowercased; section detection searches it for
// experience/education keywords.
type Ancestor struct {
	Key   string `json:"key"`
	Tag   string `json:"tag"`
	Attrs string `json:"attrs"`
}

// Field is the raw inventory entry for one visible, enabled form
// control, in document order.
type Field struct {
	Ref         Ref        `json:"ref"`
	Kind        Kind       `json:"kind"`
	Tag         string     `json:"tag"`
	Type        string     `json:"type"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Placeholder string     `json:"placeholder"`
	AriaLabel   string     `json:"aria_label"`
	Label       string     `json:"label"`
	ParentText  string     `json:"parent_text"`
	Value       string     `json:"value"`
	Checked     bool       `json:"checked"`
	Options     []Option   `json:"options,omitempty"`
	Ancestors   []Ancestor `json:"ancestors,omitempty"`
}

// Control is a button-like element, used for add-another section
// detection and auto-navigation.
type Control struct {
	Ref       Ref        `json:"ref"`
	Text      string     `json:"text"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
}

// Snapshot is one enumeration of a page. Fields appear in document
// order; the filler processes them in this order with no reordering.
type Snapshot struct {
	URL      string
	Fields   []Field
	Controls []Control
}

// Page is the engine/host boundary. All write operations report
// failures as errors; the writer converts them to non-fills.
type Page interface {
	// Snapshot enumerates visible, enabled form fields and controls.
	Snapshot(ctx context.Context) (*Snapshot, error)
	// SetValue commits a text value the way a keyboard-driven user
	// interaction would, so reactive frameworks observe it.
	SetValue(ctx context.Context, ref Ref, value string) error
	// SelectOption selects an option of a select control by its value.
	SelectOption(ctx context.Context, ref Ref, optionValue string) error
	// SetChecked checks or unchecks a radio or checkbox.
	SetChecked(ctx context.Context, ref Ref, checked bool) error
	// Click activates a control.
	Click(ctx context.Context, ref Ref) error
	// Highlight marks an element with a self-reverting background.
	Highlight(ctx context.Context, ref Ref) error
}
