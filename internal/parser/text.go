package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TextConverter handles plain text files.
type TextConverter struct{}

func (c *TextConverter) Convert(r io.Reader, filename string) (*Fragment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var all strings.Builder
	for scanner.Scan() {
		all.WriteString(scanner.Text())
		all.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	// Each paragraph becomes a <p>.
	var nodes []*html.Node
	for _, para := range splitParagraphs(all.String()) {
		nodes = append(nodes, el(atom.P, text(para)))
	}
	out, err := renderNodes(nodes)
	if err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}
	return &Fragment{Title: baseTitle(filename), HTML: out}, nil
}
