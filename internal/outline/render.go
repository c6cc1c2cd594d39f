package outline

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// List classes used by the rendered navigation.
const (
	ListClass    = "toc"
	SubListClass = "toc-sub"
)

// Render turns an outline into an ordered navigation list of in-page links.
// Sections without subsections get no nested list.
func Render(o Outline) *html.Node {
	list := element(atom.Ol, "class", ListClass)
	for _, h := range o.Headings {
		item := entry(h.ID, h.Label)
		if len(h.Children) > 0 {
			sub := element(atom.Ol, "class", SubListClass)
			for _, c := range h.Children {
				sub.AppendChild(entry(c.ID, c.Label))
			}
			item.AppendChild(sub)
		}
		list.AppendChild(item)
	}
	return list
}

// RenderString renders the navigation list as markup. An empty outline
// renders as the empty string.
func RenderString(o Outline) string {
	if len(o.Headings) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, Render(o)); err != nil {
		return ""
	}
	return buf.String()
}

func entry(id, label string) *html.Node {
	li := element(atom.Li)
	a := element(atom.A, "href", "#"+id)
	a.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	li.AppendChild(a)
	return li
}

func element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}
