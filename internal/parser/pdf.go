package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PDFConverter handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled. Each page becomes a section.
type PDFConverter struct {
	FallbackPdftotext bool
}

func (c *PDFConverter) Convert(r io.Reader, filename string) (*Fragment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	content, err := extractPDFText(data)
	if err != nil && c.FallbackPdftotext {
		content, err = extractPdftotext(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	frag := &Fragment{Title: baseTitle(filename)}

	var nodes []*html.Node
	for i, page := range strings.Split(content, "\f") {
		paras := splitParagraphs(page)
		if len(paras) == 0 {
			continue
		}
		nodes = append(nodes, heading(2, fmt.Sprintf("Page %d", i+1)))
		for _, p := range paras {
			nodes = append(nodes, el(atom.P, text(p)))
		}
	}

	frag.HTML, err = renderNodes(nodes)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return frag, nil
}

// extractPDFText joins page text with form feeds.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if i > 1 {
			buf.WriteString("\f")
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(t)
	}
	return buf.String(), nil
}

func extractPdftotext(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "docsite-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	out, err := exec.Command("pdftotext", "-layout", tmp.Name(), "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
