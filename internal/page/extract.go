package page

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formfill/pkg/field"
)

// nonFillInputTypes are input types that are never fill targets.
var nonFillInputTypes = map[string]bool{
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
}

var inputControlTypes = map[string]field.ControlType{
	"text":     field.ControlText,
	"email":    field.ControlEmail,
	"tel":      field.ControlTel,
	"number":   field.ControlNumber,
	"date":     field.ControlDate,
	"checkbox": field.ControlCheckbox,
	"radio":    field.ControlRadio,
	"file":     field.ControlFile,
	"hidden":   field.ControlHidden,
	"url":      field.ControlURL,
	"password": field.ControlPassword,
	"search":   field.ControlText,
}

// Fields parses markup and returns one descriptor per fillable control, in
// document order. Radio buttons sharing a name collapse into a single
// descriptor whose options carry each button's value and label.
func Fields(data []byte) ([]field.Descriptor, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("page: parse markup: %w", err)
	}
	ix := newDocIndex(root)

	var (
		out        []field.Descriptor
		radioIndex = map[string]int{}
		ordinal    int
	)
	for _, n := range ix.controls {
		d, ok := ix.describe(n, &ordinal)
		if !ok {
			continue
		}
		if d.Type == field.ControlRadio && d.Name != "" {
			if at, seen := radioIndex[d.Name]; seen {
				out[at].Options = append(out[at].Options, d.Options...)
				continue
			}
			radioIndex[d.Name] = len(out)
		}
		out = append(out, d)
	}

	// Document order maps onto [0,1] vertical position.
	if len(out) > 1 {
		span := float64(len(out) - 1)
		for i := range out {
			out[i].Position = float64(i) / span
		}
	}
	return out, nil
}

// docIndex caches the lookups name resolution needs: elements by id, label
// elements by their for attribute, and every control in document order.
type docIndex struct {
	ids      map[string]*html.Node
	labelFor map[string][]*html.Node
	controls []*html.Node
}

func newDocIndex(root *html.Node) *docIndex {
	ix := &docIndex{
		ids:      map[string]*html.Node{},
		labelFor: map[string][]*html.Node{},
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attrVal(n, "id"); id != "" {
				if _, dup := ix.ids[id]; !dup {
					ix.ids[id] = n
				}
			}
			switch n.DataAtom {
			case atom.Label:
				if target := attrVal(n, "for"); target != "" {
					ix.labelFor[target] = append(ix.labelFor[target], n)
				}
			case atom.Input, atom.Select, atom.Textarea:
				ix.controls = append(ix.controls, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return ix
}

func (ix *docIndex) describe(n *html.Node, ordinal *int) (field.Descriptor, bool) {
	var ctrl field.ControlType
	switch n.DataAtom {
	case atom.Select:
		ctrl = field.ControlSelect
	case atom.Textarea:
		ctrl = field.ControlTextarea
	case atom.Input:
		typ := strings.ToLower(strings.TrimSpace(attrVal(n, "type")))
		if nonFillInputTypes[typ] {
			return field.Descriptor{}, false
		}
		var ok bool
		if ctrl, ok = inputControlTypes[typ]; !ok {
			ctrl = field.ControlText
		}
	default:
		return field.Descriptor{}, false
	}

	*ordinal++
	id := attrVal(n, "id")
	name := attrVal(n, "name")
	handle := firstNonEmpty(id, name, fmt.Sprintf("field-%d", *ordinal))
	if ctrl == field.ControlRadio && name != "" {
		// Radio buttons commit as a group; the shared name is the only
		// handle that addresses the whole group, a button id picks out
		// just one sibling.
		handle = name
	}

	d := field.Descriptor{
		ID:           handle,
		Name:         name,
		Type:         ctrl,
		Autocomplete: strings.ToLower(strings.TrimSpace(attrVal(n, "autocomplete"))),
		InputMode:    strings.ToLower(strings.TrimSpace(attrVal(n, "inputmode"))),
		Required:     hasAttr(n, "required"),
		Min:          floatAttr(n, "min"),
		Max:          floatAttr(n, "max"),
		Step:         floatAttr(n, "step"),
		Placeholder:  cleanText(attrVal(n, "placeholder")),
		Label:        ix.accessibleName(n),
		Description:  ix.description(n),
	}

	switch ctrl {
	case field.ControlSelect:
		d.Options = selectOptions(n)
	case field.ControlRadio:
		value := attrVal(n, "value")
		d.Options = []field.Option{{Value: value, Text: ix.radioOptionText(n)}}
		// The group is the fill target, so the legend names it; each
		// button's own label becomes option text instead.
		if lg := ix.legendText(n); lg != "" {
			d.Label = field.AccessibleName{Text: lg, Source: field.NameSourceLegend}
		}
	}
	return d, true
}

func selectOptions(sel *html.Node) []field.Option {
	var opts []field.Option
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			text := textContent(n)
			value := text
			if v := attrVal(n, "value"); hasAttr(n, "value") {
				value = v
			}
			opts = append(opts, field.Option{Value: value, Text: text})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(sel)
	return opts
}

// radioOptionText labels one button within a radio group: its own label-for
// or wrapping label, never the group legend.
func (ix *docIndex) radioOptionText(n *html.Node) string {
	if id := attrVal(n, "id"); id != "" {
		for _, lab := range ix.labelFor[id] {
			if txt := textContentExcluding(lab, n); txt != "" {
				return txt
			}
		}
	}
	if lab := ancestor(n, atom.Label); lab != nil {
		if txt := textContentExcluding(lab, n); txt != "" {
			return txt
		}
	}
	return attrVal(n, "value")
}

func floatAttr(n *html.Node, key string) *float64 {
	raw := strings.TrimSpace(attrVal(n, key))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func ancestor(n *html.Node, tag atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == tag {
			return p
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
