package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// csvBatchSize is the number of data rows per rendered section.
const csvBatchSize = 20

// CSVConverter handles CSV files. Rows are grouped into sections of
// csvBatchSize so long tables still get a usable outline.
type CSVConverter struct{}

func (c *CSVConverter) Convert(r io.Reader, filename string) (*Fragment, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	frag := &Fragment{Title: baseTitle(filename)}
	if len(records) == 0 {
		return frag, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	var nodes []*html.Node
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))

		headRow := el(atom.Tr)
		for _, h := range headers {
			headRow.AppendChild(el(atom.Th, text(h)))
		}
		body := el(atom.Tbody)
		for _, row := range dataRows[i:end] {
			tr := el(atom.Tr)
			for _, cell := range row {
				tr.AppendChild(el(atom.Td, text(cell)))
			}
			body.AppendChild(tr)
		}

		// 1-indexed, skip header
		nodes = append(nodes,
			heading(2, fmt.Sprintf("Rows %d-%d", i+2, end+1)),
			el(atom.Table, el(atom.Thead, headRow), body),
		)
	}

	frag.HTML, err = renderNodes(nodes)
	if err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return frag, nil
}
