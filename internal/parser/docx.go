package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docpad/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	return ParseDOCX(src)
}

// ParseDOCX builds a Document from a complete .docx archive.
func ParseDOCX(src []byte) (doc *doctree.Document, err error) {
	// go-docx indexes into child slices without bounds checks on some
	// malformed parts.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parse docx: %v", r)
		}
	}()

	f, err := docx.Parse(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc = &doctree.Document{ObjectsDetected: true}
	// Core properties are optional; a missing or unreadable core.xml leaves
	// the metadata empty.
	doc.Metadata, _ = readCoreProperties(src)

	// The raw scan restores explicit bold/italic "off" values and
	// paragraph-level section breaks. It is only trusted when it visited the
	// same paragraphs as go-docx.
	var cursor *toggleCursor
	scan, scanErr := scanDOCX(src)
	if scanErr == nil && len(scan.paragraphs) == visitedParagraphs(f.Document.Body.Items) {
		cursor = &toggleCursor{paragraphs: scan.paragraphs}
	}

	for _, item := range f.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			doc.InlineObjects += paragraphDrawings(v)
			doc.Blocks = append(doc.Blocks, docxParagraph(v, cursor))
		case *docx.Table:
			doc.InlineObjects += tableDrawings(v)
			doc.Blocks = append(doc.Blocks, docxTable(v, cursor))
		case *docx.SectPr:
			doc.Sections++
		}
	}
	if scanErr == nil {
		doc.Sections = scan.sections
	}
	return doc, nil
}

// visitedParagraphs counts the paragraphs ParseDOCX reads runs from.
func visitedParagraphs(items []interface{}) int {
	n := 0
	for _, item := range items {
		switch v := item.(type) {
		case *docx.Paragraph:
			n++
		case *docx.Table:
			for _, row := range v.TableRows {
				for _, cell := range row.TableCells {
					n += len(cell.Paragraphs)
				}
			}
		}
	}
	return n
}

// docxParagraph maps a paragraph to a Heading when its style names a heading
// and it has visible text, and to a Paragraph otherwise.
func docxParagraph(para *docx.Paragraph, cursor *toggleCursor) doctree.Block {
	runs := docxRuns(para, cursor)
	out := &doctree.Paragraph{Runs: runs}
	if level := doctree.HeadingLevel(docxStyle(para)); level > 0 && !out.IsBlank() {
		return doctree.NewHeading(level, out.Text())
	}
	return out
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func docxRuns(para *docx.Paragraph, cursor *toggleCursor) []doctree.Run {
	var runs []doctree.Run
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			runs = append(runs, docxRun(c))
		case *docx.Hyperlink:
			runs = append(runs, docxRun(&c.Run))
		}
	}
	for i, t := range cursor.take(len(runs)) {
		if t.boldOff {
			runs[i].Bold = false
		}
		if t.italicOff {
			runs[i].Italic = false
		}
	}
	return runs
}

func docxRun(run *docx.Run) doctree.Run {
	var sb strings.Builder
	for _, rc := range run.Children {
		switch x := rc.(type) {
		case *docx.Text:
			sb.WriteString(x.Text)
		case *docx.Tab:
			sb.WriteByte('\t')
		case *docx.BarterRabbet:
			sb.WriteByte('\n')
		}
	}
	out := doctree.Run{Text: sb.String()}
	if props := run.RunProperties; props != nil {
		out.Bold = props.Bold != nil
		out.Italic = props.Italic != nil
		out.Underline = props.Underline != nil && props.Underline.Val != "none"
		out.Highlighted = props.Highlight != nil && props.Highlight.Val != "none"
	}
	return out
}

func docxTable(tbl *docx.Table, cursor *toggleCursor) *doctree.Table {
	out := &doctree.Table{}
	if tbl.TableGrid != nil {
		out.Columns = len(tbl.TableGrid.GridCols)
	}
	for _, row := range tbl.TableRows {
		var r doctree.Row
		for _, cell := range row.TableCells {
			r.Cells = append(r.Cells, docxCellText(cell, cursor))
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

func docxCellText(cell *docx.WTableCell, cursor *toggleCursor) string {
	texts := make([]string, 0, len(cell.Paragraphs))
	for _, para := range cell.Paragraphs {
		texts = append(texts, (&doctree.Paragraph{Runs: docxRuns(para, cursor)}).Text())
	}
	return strings.Join(texts, "\n")
}

func paragraphDrawings(para *docx.Paragraph) int {
	n := 0
	for _, child := range para.Children {
		var run *docx.Run
		switch c := child.(type) {
		case *docx.Run:
			run = c
		case *docx.Hyperlink:
			run = &c.Run
		default:
			continue
		}
		for _, rc := range run.Children {
			if d, ok := rc.(*docx.Drawing); ok && d.Inline != nil {
				n++
			}
		}
	}
	return n
}

func tableDrawings(tbl *docx.Table) int {
	n := 0
	for _, row := range tbl.TableRows {
		for _, cell := range row.TableCells {
			for _, para := range cell.Paragraphs {
				n += paragraphDrawings(para)
			}
		}
	}
	return n
}
