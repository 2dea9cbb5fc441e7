package page

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formfill/pkg/field"
)

// labelPolicy strips every tag from harvested label text. Pages embed markup
// in aria attributes and label bodies often enough that this is not optional.
var labelPolicy = bluemonday.StrictPolicy()

// siblingTextCap bounds the preceding-sibling fallback. Longer runs are
// paragraphs, not labels.
const siblingTextCap = 80

// accessibleName resolves a control's label following a strict precedence:
// aria-labelledby, aria-label, label[for], wrapping label, fieldset legend,
// placeholder, title, then preceding sibling text. First non-empty wins.
func (ix *docIndex) accessibleName(n *html.Node) field.AccessibleName {
	if txt := ix.idRefText(attrVal(n, "aria-labelledby")); txt != "" {
		return field.AccessibleName{Text: txt, Source: field.NameSourceAriaLabelledBy}
	}
	if txt := cleanText(attrVal(n, "aria-label")); txt != "" {
		return field.AccessibleName{Text: txt, Source: field.NameSourceAriaLabel}
	}
	if id := attrVal(n, "id"); id != "" {
		for _, lab := range ix.labelFor[id] {
			if txt := textContentExcluding(lab, n); txt != "" {
				return field.AccessibleName{Text: txt, Source: field.NameSourceLabelFor}
			}
		}
	}
	if lab := ancestor(n, atom.Label); lab != nil {
		if txt := textContentExcluding(lab, n); txt != "" {
			return field.AccessibleName{Text: txt, Source: field.NameSourceLabelWrap}
		}
	}
	if txt := ix.legendText(n); txt != "" {
		return field.AccessibleName{Text: txt, Source: field.NameSourceLegend}
	}
	if txt := cleanText(attrVal(n, "placeholder")); txt != "" {
		return field.AccessibleName{Text: txt, Source: field.NameSourcePlaceholder}
	}
	if txt := cleanText(attrVal(n, "title")); txt != "" {
		return field.AccessibleName{Text: txt, Source: field.NameSourceTitle}
	}
	if txt := precedingSiblingText(n); txt != "" {
		return field.AccessibleName{Text: txt, Source: field.NameSourceSibling}
	}
	return field.AccessibleName{Source: field.NameSourceNone}
}

// description joins aria-describedby targets with any hint/help siblings.
func (ix *docIndex) description(n *html.Node) string {
	var parts []string
	if txt := ix.idRefText(attrVal(n, "aria-describedby")); txt != "" {
		parts = append(parts, txt)
	}
	// Only immediately-following hint elements count; the first non-hint
	// element ends the run, otherwise later fields' hints would leak back.
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if !isHintClass(attrVal(sib, "class")) {
			break
		}
		if txt := textContent(sib); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, " ")
}

func isHintClass(class string) bool {
	lower := strings.ToLower(class)
	for _, marker := range []string{"hint", "help", "description"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// idRefText resolves a space-separated id reference list to joined text.
func (ix *docIndex) idRefText(refs string) string {
	if refs == "" {
		return ""
	}
	var parts []string
	for _, id := range strings.Fields(refs) {
		target, ok := ix.ids[id]
		if !ok {
			continue
		}
		if txt := textContent(target); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, " ")
}

func (ix *docIndex) legendText(n *html.Node) string {
	fs := ancestor(n, atom.Fieldset)
	if fs == nil {
		return ""
	}
	for c := fs.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Legend {
			return textContent(c)
		}
	}
	return ""
}

// precedingSiblingText is the last-resort signal: the nearest non-empty text
// or element content before the control, capped so paragraphs do not qualify.
func precedingSiblingText(n *html.Node) string {
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		var txt string
		switch sib.Type {
		case html.TextNode:
			txt = cleanText(sib.Data)
			if txt == "" {
				continue
			}
		case html.ElementNode:
			// An element boundary ends adjacency: text beyond it belongs
			// to that element's control, not this one.
			txt = textContent(sib)
		default:
			continue
		}
		if txt == "" || len(txt) > siblingTextCap {
			return ""
		}
		return txt
	}
	return ""
}

// textContent flattens an element to visible text, skipping scripts, styles,
// and nested form controls.
func textContent(n *html.Node) string {
	var b strings.Builder
	collectText(n, nil, &b)
	return cleanText(b.String())
}

// textContentExcluding is textContent minus one subtree, used so a wrapping
// label does not inherit its control's option text.
func textContentExcluding(n, exclude *html.Node) string {
	var b strings.Builder
	collectText(n, exclude, &b)
	return cleanText(b.String())
}

func collectText(n, exclude *html.Node, b *strings.Builder) {
	if n == exclude {
		return
	}
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Input, atom.Select, atom.Textarea, atom.Button:
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, exclude, b)
	}
}

// cleanText strips markup, decodes entities, and collapses whitespace.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = labelPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
