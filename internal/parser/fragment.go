package parser

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// el builds an element node with the given children.
func el(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// heading returns an <hN> element, clamping level into 1..6.
func heading(level int, title string) *html.Node {
	tags := [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}
	if level < 1 {
		level = 1
	}
	if level > len(tags) {
		level = len(tags)
	}
	return el(tags[level-1], text(title))
}

// renderNodes serializes sibling nodes into one markup string.
func renderNodes(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// splitParagraphs splits text on blank lines, dropping empty paragraphs.
func splitParagraphs(s string) []string {
	var out []string
	var current strings.Builder
	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			out = append(out, p)
		}
		current.Reset()
	}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()
	return out
}
