package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/docpad/internal/doctree"
)

// CSVParser handles CSV files. The whole file becomes one table whose column
// count is the header width.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &doctree.Document{Sections: 1, ObjectsDetected: true}
	if len(records) == 0 {
		return doc, nil
	}

	tbl := &doctree.Table{Columns: len(records[0])}
	for _, rec := range records {
		tbl.Rows = append(tbl.Rows, doctree.Row{Cells: rec})
	}
	doc.Blocks = append(doc.Blocks, tbl)
	return doc, nil
}
