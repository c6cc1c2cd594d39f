package outline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultSeparator replaces whitespace runs in identifiers derived from heading text.
const DefaultSeparator = "_"

// fallbackID is used for headings whose text is empty.
const fallbackID = "section"

// Builder discovers headings under a content root and assigns their identifiers.
type Builder struct {
	Top       atom.Atom // Top-level heading tag
	Sub       atom.Atom // Sub-level heading tag
	Separator string
}

// NewBuilder returns a builder for h2 sections with h3 subsections.
func NewBuilder() *Builder {
	return &Builder{Top: atom.H2, Sub: atom.H3, Separator: DefaultSeparator}
}

// ParseLevel maps "h1".."h6" to its atom. Anything else yields zero.
func ParseLevel(tag string) atom.Atom {
	switch a := atom.Lookup([]byte(strings.ToLower(strings.TrimSpace(tag)))); a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return a
	}
	return 0
}

// Build scans root in document order and returns its outline. Heading
// elements get their identifier written to the id attribute. Identifiers in
// reserved belong to the surrounding page and are never assigned. A nil
// root yields an empty outline.
func (b *Builder) Build(root *html.Node, reserved ...string) Outline {
	var out Outline
	if root == nil {
		return out
	}

	headings := b.collect(root)
	ids := newIDSet(root, b.owned(headings), reserved)

	var current *Heading
	for _, n := range headings {
		switch n.DataAtom {
		case b.Top:
			out.Headings = append(out.Headings, Heading{
				ID:       ids.assign(n, b.derive(n)),
				Label:    textContent(n),
				Children: []SubHeading{},
			})
			current = &out.Headings[len(out.Headings)-1]
		case b.Sub:
			// Sub-level headings ahead of the first section have no owner.
			if current == nil {
				continue
			}
			current.Children = append(current.Children, SubHeading{
				ID:    ids.assign(n, b.derive(n)),
				Label: textContent(n),
			})
		}
	}
	return out
}

// Apply builds the outline of root and replaces every child of nav with
// its rendered list. A nil nav only skips the rendering step.
func (b *Builder) Apply(root, nav *html.Node, reserved ...string) Outline {
	o := b.Build(root, reserved...)
	if nav == nil {
		return o
	}
	for c := nav.FirstChild; c != nil; {
		next := c.NextSibling
		nav.RemoveChild(c)
		c = next
	}
	if len(o.Headings) > 0 {
		nav.AppendChild(Render(o))
	}
	return o
}

// collect returns the top and sub-level headings below root in document
// order. Headings never nest, so the walk does not descend into them.
func (b *Builder) collect(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.DataAtom == b.Top || c.DataAtom == b.Sub {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// derive picks the preferred identifier for a heading: its own id, then a
// bookmark anchor inside it, then its collapsed text.
func (b *Builder) derive(n *html.Node) string {
	if id := attr(n, "id"); id != "" {
		return id
	}
	if a := bookmark(n); a != nil {
		id := attr(a, "id")
		if id == "" {
			return attr(a, "name")
		}
		// The id moves to the heading. The anchor keeps a name so existing
		// fragment links still land on it.
		removeAttr(a, "id")
		if attr(a, "name") == "" {
			setAttr(a, "name", id)
		}
		return id
	}
	sep := b.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	if id := strings.Join(strings.Fields(textContent(n)), sep); id != "" {
		return id
	}
	return fallbackID
}

// owned returns the headings that Build assigns an identifier to: every
// top-level heading and each sub-level heading after the first of them.
func (b *Builder) owned(headings []*html.Node) map[*html.Node]bool {
	out := make(map[*html.Node]bool, len(headings))
	seenTop := false
	for _, h := range headings {
		if h.DataAtom == b.Top {
			seenTop = true
		}
		if seenTop {
			out[h] = true
		}
	}
	return out
}

// idSet tracks identifiers already present in the document.
type idSet map[string]bool

// newIDSet reserves every id under root that Build will not rewrite, plus
// reserved. Owned headings are about to be assigned, and so is the bookmark
// anchor whose id moves to a heading without one of its own.
func newIDSet(root *html.Node, owned map[*html.Node]bool, reserved []string) idSet {
	ids := idSet{}
	for _, id := range reserved {
		if id != "" {
			ids[id] = true
		}
	}
	moved := map[*html.Node]bool{}
	for h := range owned {
		if attr(h, "id") != "" {
			continue
		}
		if a := bookmark(h); a != nil {
			moved[a] = true
		}
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if !owned[c] && !moved[c] {
				if id := attr(c, "id"); id != "" {
					ids[id] = true
				}
			}
			walk(c)
		}
	}
	walk(root)
	return ids
}

// assign claims want (or the first free suffixed variant) for n.
func (s idSet) assign(n *html.Node, want string) string {
	id := want
	for i := 2; s[id]; i++ {
		id = want + "_" + strconv.Itoa(i)
	}
	s[id] = true
	setAttr(n, "id", id)
	return id
}

// bookmark returns the first anchor inside n carrying an id or name.
func bookmark(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.A && (attr(c, "id") != "" || attr(c, "name") != "") {
			return c
		}
		if a := bookmark(c); a != nil {
			return a
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}
