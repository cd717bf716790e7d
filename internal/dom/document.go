package dom

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is the in-memory Page backend over static HTML, used by
// tests and by offline fills of saved pages. Mutations are applied to
// the parsed tree; events and highlights are no-ops since there is no
// script engine to observe them.
type Document struct {
	url     string
	doc     *goquery.Document
	refs    map[*html.Node]Ref
	byRef   map[Ref]*goquery.Selection
	nextRef int

	// Clicked records control activations for callers that want to
	// assert on auto-navigation without a live page.
	Clicked []Ref
}

// NewDocument parses HTML into a Document page.
func NewDocument(htmlContent, url string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &SnapshotError{Message: "failed to parse HTML", Cause: err}
	}
	return &Document{
		url:   url,
		doc:   doc,
		refs:  make(map[*html.Node]Ref),
		byRef: make(map[Ref]*goquery.Selection),
	}, nil
}

// textInputTypes are the input types treated as text-like candidates.
var textInputTypes = map[string]bool{
	"": true, "text": true, "email": true, "tel": true, "url": true,
	"number": true, "date": true, "search": true,
}

// ref returns the stable locator for a node, assigning one on first use.
func (d *Document) ref(sel *goquery.Selection) Ref {
	node := sel.Get(0)
	if r, ok := d.refs[node]; ok {
		return r
	}
	r := Ref(fmt.Sprintf("af-%d", d.nextRef))
	d.nextRef++
	d.refs[node] = r
	d.byRef[r] = sel
	return r
}

// Snapshot enumerates candidate fields and controls in document order.
func (d *Document) Snapshot(_ context.Context) (*Snapshot, error) {
	snap := &Snapshot{URL: d.url}

	d.doc.Find("input, textarea, select").Each(func(_ int, sel *goquery.Selection) {
		f, ok := d.field(sel)
		if !ok {
			return
		}
		snap.Fields = append(snap.Fields, f)
	})

	d.doc.Find(`button, input[type="submit"], input[type="button"], a[role="button"]`).Each(func(_ int, sel *goquery.Selection) {
		if !d.visible(sel) {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			text = strings.TrimSpace(sel.AttrOr("value", ""))
		}
		if aria := sel.AttrOr("aria-label", ""); aria != "" {
			text = strings.TrimSpace(text + " " + aria)
		}
		snap.Controls = append(snap.Controls, Control{
			Ref:       d.ref(sel),
			Text:      text,
			Ancestors: d.ancestors(sel),
		})
	})

	return snap, nil
}

// field builds the inventory entry for one element, or reports that the
// element is not a candidate (hidden, disabled, unsupported type).
func (d *Document) field(sel *goquery.Selection) (Field, bool) {
	if !d.visible(sel) {
		return Field{}, false
	}
	if _, disabled := sel.Attr("disabled"); disabled {
		return Field{}, false
	}

	tag := goquery.NodeName(sel)
	typ := strings.ToLower(sel.AttrOr("type", ""))
	var kind Kind

	switch tag {
	case "textarea":
		kind = KindText
		typ = "textarea"
	case "select":
		kind = KindSelect
		typ = "select"
	case "input":
		switch typ {
		case "radio":
			kind = KindRadio
		case "checkbox":
			kind = KindCheckbox
		default:
			if !textInputTypes[typ] {
				return Field{}, false
			}
			if _, readonly := sel.Attr("readonly"); readonly {
				return Field{}, false
			}
			kind = KindText
			if typ == "" {
				typ = "text"
			}
		}
	default:
		return Field{}, false
	}

	f := Field{
		Ref:         d.ref(sel),
		Kind:        kind,
		Tag:         tag,
		Type:        typ,
		ID:          sel.AttrOr("id", ""),
		Name:        sel.AttrOr("name", ""),
		Placeholder: sel.AttrOr("placeholder", ""),
		AriaLabel:   sel.AttrOr("aria-label", ""),
		Label:       d.label(sel),
		Ancestors:   d.ancestors(sel),
	}

	if parent := sel.Parent(); parent.Length() > 0 {
		f.ParentText = strings.TrimSpace(parent.Text())
	}

	switch kind {
	case KindText:
		if tag == "textarea" {
			f.Value = strings.TrimSpace(sel.Text())
		} else {
			f.Value = sel.AttrOr("value", "")
		}
	case KindSelect:
		f.Value, f.Options = selectState(sel)
	case KindRadio, KindCheckbox:
		f.Value = sel.AttrOr("value", "")
		_, f.Checked = sel.Attr("checked")
	}

	return f, true
}

// selectState returns the effective value and the option list of a
// select element. With no explicit selection the first option wins,
// matching browser behavior.
func selectState(sel *goquery.Selection) (string, []Option) {
	var value string
	var options []Option
	sel.Find("option").Each(func(i int, opt *goquery.Selection) {
		o := Option{Value: opt.AttrOr("value", ""), Text: strings.TrimSpace(opt.Text())}
		options = append(options, o)
		if _, selected := opt.Attr("selected"); selected || (i == 0 && value == "") {
			value = o.Value
		}
	})
	return value, options
}

// label discovers the label text for an element: an explicit label[for]
// association, then an ancestor label, then the immediately preceding
// sibling. Absence is not an error.
func (d *Document) label(sel *goquery.Selection) string {
	if id := sel.AttrOr("id", ""); id != "" {
		if lbl := d.doc.Find(fmt.Sprintf("label[for=%q]", id)); lbl.Length() > 0 {
			return strings.TrimSpace(lbl.First().Text())
		}
	}
	if wrap := sel.Closest("label"); wrap.Length() > 0 {
		return strings.TrimSpace(wrap.First().Text())
	}
	if prev := sel.Prev(); prev.Length() > 0 && goquery.NodeName(prev) == "label" {
		return strings.TrimSpace(prev.Text())
	}
	return ""
}

// ancestors walks the enclosing containers, innermost first, recording
// each element that carries id/class/data-* attribute text.
func (d *Document) ancestors(sel *goquery.Selection) []Ancestor {
	var out []Ancestor
	for parent := sel.Parent(); parent.Length() > 0; parent = parent.Parent() {
		node := parent.Get(0)
		if node.Type != html.ElementNode {
			continue
		}
		attrs := containerAttrs(node)
		if attrs == "" && node.Data != "form" && node.Data != "section" && node.Data != "fieldset" {
			continue
		}
		out = append(out, Ancestor{
			Key:   nodePath(node),
			Tag:   node.Data,
			Attrs: attrs,
		})
	}
	return out
}

// containerAttrs concatenates the id, class, and data-* attribute
// values of a node, lowercased.
func containerAttrs(node *html.Node) string {
	var parts []string
	for _, attr := range node.Attr {
		if attr.Key == "id" || attr.Key == "class" || strings.HasPrefix(attr.Key, "data-") {
			parts = append(parts, attr.Val)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// nodePath produces a stable key for a node from its child-index chain.
func nodePath(node *html.Node) string {
	var indexes []string
	for n := node; n != nil && n.Parent != nil; n = n.Parent {
		i := 0
		for sib := n.Parent.FirstChild; sib != nil && sib != n; sib = sib.NextSibling {
			if sib.Type == html.ElementNode {
				i++
			}
		}
		indexes = append([]string{fmt.Sprintf("%d", i)}, indexes...)
	}
	return strings.Join(indexes, ".")
}

// visible approximates layout visibility from static markup: hidden
// inputs, [hidden], aria-hidden, and inline display/visibility styles
// on the element or any ancestor make an element invisible.
func (d *Document) visible(sel *goquery.Selection) bool {
	if strings.EqualFold(sel.AttrOr("type", ""), "hidden") {
		return false
	}
	for cur := sel; cur.Length() > 0; cur = cur.Parent() {
		if _, hidden := cur.Attr("hidden"); hidden {
			return false
		}
		if cur.AttrOr("aria-hidden", "") == "true" {
			return false
		}
		style := strings.ToLower(cur.AttrOr("style", ""))
		if strings.Contains(style, "display:none") || strings.Contains(style, "display: none") ||
			strings.Contains(style, "visibility:hidden") || strings.Contains(style, "visibility: hidden") {
			return false
		}
	}
	return true
}

func (d *Document) lookup(ref Ref) (*goquery.Selection, error) {
	sel, ok := d.byRef[ref]
	if !ok {
		return nil, &WriteError{Ref: ref, Message: "unknown element reference"}
	}
	return sel, nil
}

// SetValue writes a text value into an input or textarea.
func (d *Document) SetValue(_ context.Context, ref Ref, value string) error {
	sel, err := d.lookup(ref)
	if err != nil {
		return err
	}
	if goquery.NodeName(sel) == "textarea" {
		sel.SetText(value)
		return nil
	}
	sel.SetAttr("value", value)
	return nil
}

// SelectOption marks the option with the given value as selected.
func (d *Document) SelectOption(_ context.Context, ref Ref, optionValue string) error {
	sel, err := d.lookup(ref)
	if err != nil {
		return err
	}
	found := false
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		opt.RemoveAttr("selected")
		if opt.AttrOr("value", "") == optionValue {
			opt.SetAttr("selected", "selected")
			found = true
		}
	})
	if !found {
		return &WriteError{Ref: ref, Message: fmt.Sprintf("no option with value %q", optionValue)}
	}
	return nil
}

// SetChecked checks or unchecks a radio or checkbox. Checking a radio
// unchecks the other members of its name group.
func (d *Document) SetChecked(_ context.Context, ref Ref, checked bool) error {
	sel, err := d.lookup(ref)
	if err != nil {
		return err
	}
	if !checked {
		sel.RemoveAttr("checked")
		return nil
	}
	if sel.AttrOr("type", "") == "radio" {
		if name := sel.AttrOr("name", ""); name != "" {
			d.doc.Find(fmt.Sprintf(`input[type="radio"][name=%q]`, name)).RemoveAttr("checked")
		}
	}
	sel.SetAttr("checked", "checked")
	return nil
}

// Click records the activation; a static document has no behavior to run.
func (d *Document) Click(_ context.Context, ref Ref) error {
	if _, err := d.lookup(ref); err != nil {
		return err
	}
	d.Clicked = append(d.Clicked, ref)
	return nil
}

// Highlight is a no-op on a static document.
func (d *Document) Highlight(_ context.Context, ref Ref) error {
	_, err := d.lookup(ref)
	return err
}
