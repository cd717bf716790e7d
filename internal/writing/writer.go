// Package writing commits resolved values to page elements, dispatching
// on the control variant. Any mutation failure is converted to a
// non-fill; it never aborts the surrounding pass.
package writing

import (
	"context"
	"log"
	"strings"

	"github.com/redtoridefire/smart-autofill/internal/dom"
	"github.com/redtoridefire/smart-autofill/internal/fields"
	"github.com/redtoridefire/smart-autofill/internal/matching"
)

// Writer applies values to one page.
type Writer struct {
	Page    dom.Page
	Matcher matching.Matcher
	Verbose bool
}

// New returns a Writer for a page with the default matcher.
func New(page dom.Page) *Writer {
	return &Writer{Page: page, Matcher: matching.Default}
}

// Apply commits value to the field and reports whether it was actually
// committed. learned marks values that came from learned responses,
// the only source allowed to drive checkboxes.
func (w *Writer) Apply(ctx context.Context, f dom.Field, value string, learned bool) bool {
	var committed bool
	switch f.Kind {
	case dom.KindText:
		committed = w.applyText(ctx, f, value)
	case dom.KindSelect:
		committed = w.applySelect(ctx, f, value)
	case dom.KindRadio:
		committed = w.applyRadio(ctx, f, value)
	case dom.KindCheckbox:
		committed = w.applyCheckbox(ctx, f, value, learned)
	}
	if committed {
		// Highlighting is feedback, not part of the commit.
		if err := w.Page.Highlight(ctx, f.Ref); err != nil && w.Verbose {
			log.Printf("[FILL] highlight failed for %s: %v", f.Ref, err)
		}
	}
	return committed
}

func (w *Writer) applyText(ctx context.Context, f dom.Field, value string) bool {
	if err := w.Page.SetValue(ctx, f.Ref, value); err != nil {
		if w.Verbose {
			log.Printf("[FILL] text write failed for %s: %v", f.Ref, err)
		}
		return false
	}
	return true
}

func (w *Writer) applySelect(ctx context.Context, f dom.Field, value string) bool {
	option, ok := bestOption(f.Options, value)
	if !ok {
		return false
	}
	if err := w.Page.SelectOption(ctx, f.Ref, option.Value); err != nil {
		if w.Verbose {
			log.Printf("[FILL] select write failed for %s: %v", f.Ref, err)
		}
		return false
	}
	return true
}

func (w *Writer) applyRadio(ctx context.Context, f dom.Field, value string) bool {
	if !shouldSelectRadio(f, value) {
		return false
	}
	if err := w.Page.SetChecked(ctx, f.Ref, true); err != nil {
		if w.Verbose {
			log.Printf("[FILL] radio write failed for %s: %v", f.Ref, err)
		}
		return false
	}
	return true
}

func (w *Writer) applyCheckbox(ctx context.Context, f dom.Field, value string, learned bool) bool {
	if !w.ShouldCheckBox(f, value, learned) {
		return false
	}
	if err := w.Page.SetChecked(ctx, f.Ref, true); err != nil {
		if w.Verbose {
			log.Printf("[FILL] checkbox write failed for %s: %v", f.Ref, err)
		}
		return false
	}
	return true
}

// bestOption finds the option matching a value: exact match on value or
// text first, then substring containment in either direction.
func bestOption(options []dom.Option, value string) (dom.Option, bool) {
	valueLower := strings.ToLower(value)

	for _, o := range options {
		if strings.ToLower(o.Value) == valueLower || strings.ToLower(o.Text) == valueLower {
			return o, true
		}
	}
	for _, o := range options {
		optValue := strings.ToLower(o.Value)
		optText := strings.ToLower(o.Text)
		if optText == "" && optValue == "" {
			continue
		}
		if strings.Contains(optValue, valueLower) ||
			strings.Contains(optText, valueLower) ||
			(optText != "" && strings.Contains(valueLower, optText)) {
			return o, true
		}
	}
	return dom.Option{}, false
}

// shouldSelectRadio reports whether the candidate value textually
// relates to the radio's label or value attribute, in either direction.
func shouldSelectRadio(f dom.Field, value string) bool {
	labelText := strings.ToLower(f.Label)
	radioValue := strings.ToLower(f.Value)
	valueLower := strings.ToLower(value)
	if valueLower == "" {
		return false
	}
	return (labelText != "" && strings.Contains(labelText, valueLower)) ||
		(radioValue != "" && strings.Contains(radioValue, valueLower)) ||
		(labelText != "" && strings.Contains(valueLower, labelText)) ||
		(radioValue != "" && strings.Contains(valueLower, radioValue))
}

// ShouldCheckBox decides whether a checkbox may be checked. Agreement,
// terms, and consent checkboxes are never auto-checked: the system must
// not affirmatively accept legal terms on the user's behalf. Other
// checkboxes are checked only when a learned response says so.
func (w *Writer) ShouldCheckBox(f dom.Field, value string, learned bool) bool {
	d := fields.Describe(f)
	if w.Matcher.MatchesAny(d.SearchString, matching.AgreementPatterns) {
		return false
	}
	if !learned {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "on", "1", "checked":
		return true
	}
	return false
}
