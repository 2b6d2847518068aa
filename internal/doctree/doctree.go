package doctree

import (
	"fmt"
	"strings"
	"time"
)

// Document is a structured rich-text document.
type Document struct {
	Metadata Metadata
	Blocks   []Block // Document order
	Sections int

	// InlineObjects counts inline images and shapes. It is only meaningful
	// when ObjectsDetected is true.
	InlineObjects   int
	ObjectsDetected bool
}

// Metadata holds optional core properties. Empty strings and nil times mean absent.
type Metadata struct {
	Author   string     `json:"author,omitempty"`
	Title    string     `json:"title,omitempty"`
	Subject  string     `json:"subject,omitempty"`
	Created  *time.Time `json:"created,omitempty"`
	Modified *time.Time `json:"modified,omitempty"`
}

// IsZero reports whether no metadata field is present.
func (m Metadata) IsZero() bool {
	return m.Author == "" && m.Title == "" && m.Subject == "" && m.Created == nil && m.Modified == nil
}

// Block is a top-level structural unit: *Heading, *Paragraph or *Table.
type Block interface {
	block()
}

// Heading is a heading paragraph. Level is 1, 2 or 3.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is an ordered sequence of styled runs.
type Paragraph struct {
	Runs []Run
}

// Table is a grid of plain-text cells. Columns comes from the source's column
// definitions and is not checked against the row widths.
type Table struct {
	Columns int
	Rows    []Row
}

// Row is one table row.
type Row struct {
	Cells []string
}

// Run is a span of text sharing one set of style flags.
type Run struct {
	Text        string
	Bold        bool
	Italic      bool
	Underline   bool
	Highlighted bool
}

func (*Heading) block()   {}
func (*Paragraph) block() {}
func (*Table) block()     {}

// NewHeading builds a heading, clamping the level into 1..3.
func NewHeading(level int, text string) *Heading {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return &Heading{Level: level, Text: text}
}

// Text concatenates the paragraph's run texts.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// IsBlank reports whether the paragraph has no non-whitespace text.
func (p *Paragraph) IsBlank() bool {
	return strings.TrimSpace(p.Text()) == ""
}

// Dimensions renders the table size line shared by the decoder and profiler.
func (t *Table) Dimensions() string {
	return fmt.Sprintf("Dimensions: %d rows × %d columns", len(t.Rows), t.Columns)
}

// ParagraphCount counts headings and paragraphs, including ones that decode to nothing.
func (d *Document) ParagraphCount() int {
	n := 0
	for _, b := range d.Blocks {
		switch b.(type) {
		case *Heading, *Paragraph:
			n++
		}
	}
	return n
}

// Tables returns the document's tables in order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// PlainText returns the text of a heading or paragraph block, and false for tables.
func PlainText(b Block) (string, bool) {
	switch v := b.(type) {
	case *Heading:
		return v.Text, true
	case *Paragraph:
		return v.Text(), true
	}
	return "", false
}
