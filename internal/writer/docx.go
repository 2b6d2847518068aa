package writer

import (
	"fmt"
	"io"

	"github.com/dgallion1/docpad/internal/doctree"
	"github.com/fumiama/go-docx"
)

// gridColTwips is the width given to each table grid column.
const gridColTwips = 2000

// DOCXWriter writes .docx files with go-docx.
type DOCXWriter struct{}

func (dw *DOCXWriter) Write(w io.Writer, doc *doctree.Document) error {
	f := docx.New().WithDefaultTheme()
	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *doctree.Heading:
			p := f.AddParagraph().Style(doctree.StyleID(v.Level))
			addRun(p, doctree.Run{Text: v.Text})
		case *doctree.Paragraph:
			p := f.AddParagraph()
			for _, r := range v.Runs {
				addRun(p, r)
			}
		case *doctree.Table:
			addTable(f, v)
		}
	}
	// The section properties must be the last body item.
	f.WithA4Page()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func addRun(p *docx.Paragraph, r doctree.Run) {
	run := p.AddText(r.Text)
	for _, c := range run.Children {
		if t, ok := c.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
	if r.Bold {
		run.Bold()
	}
	if r.Italic {
		run.Italic()
	}
	if r.Underline {
		run.Underline("single")
	}
	if r.Highlighted {
		run.Highlight("yellow")
	}
}

func addTable(f *docx.Docx, t *doctree.Table) {
	cols := t.Columns
	for _, row := range t.Rows {
		cols = max(cols, len(row.Cells))
	}
	if len(t.Rows) == 0 || cols == 0 {
		return
	}

	tbl := f.AddTable(len(t.Rows), cols, 0, nil)
	tbl.TableGrid.GridCols = make([]*docx.WGridCol, cols)
	for i := range tbl.TableGrid.GridCols {
		tbl.TableGrid.GridCols[i] = &docx.WGridCol{W: gridColTwips}
	}
	for i, row := range t.Rows {
		cells := tbl.TableRows[i].TableCells
		for j := range cells {
			p := cells[j].AddParagraph()
			if j < len(row.Cells) && row.Cells[j] != "" {
				addRun(p, doctree.Run{Text: row.Cells[j]})
			}
		}
	}
}
