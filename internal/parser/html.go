package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLConverter handles HTML files. Full documents are reduced to the
// children of <body>; bare fragments pass through.
type HTMLConverter struct{}

func (c *HTMLConverter) Convert(r io.Reader, filename string) (*Fragment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	frag := &Fragment{Title: baseTitle(filename)}

	// Extract title from <title> tag if present.
	if title := findTitle(doc); title != "" {
		frag.Title = title
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		return frag, nil
	}
	stripElements(body, atom.Script, atom.Style)

	var nodes []*html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	frag.HTML, err = renderNodes(nodes)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	frag.HTML = strings.TrimSpace(frag.HTML)
	return frag, nil
}

// stripElements removes every descendant element with one of the given tags.
func stripElements(n *html.Node, tags ...atom.Atom) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && isOneOf(c.DataAtom, tags) {
			n.RemoveChild(c)
		} else {
			stripElements(c, tags...)
		}
		c = next
	}
}

func isOneOf(a atom.Atom, tags []atom.Atom) bool {
	for _, t := range tags {
		if a == t {
			return true
		}
	}
	return false
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

func findTitle(n *html.Node) string {
	if t := findElement(n, atom.Title); t != nil {
		return textContent(t)
	}
	return ""
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
