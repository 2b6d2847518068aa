package codec

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docpad/internal/doctree"
)

// Decode renders a document as annotated text. It never fails and the same
// document always produces the same bytes.
func Decode(doc *doctree.Document) string {
	var lines []string
	emit := func(l ...string) { lines = append(lines, l...) }

	emit(rule, BannerTitle, rule, "")

	if !doc.Metadata.IsZero() {
		emit(PropertiesTitle)
		emit(metadataLines(doc.Metadata)...)
		emit("")
	}

	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *doctree.Heading:
			emit("", strings.Repeat("#", v.Level)+" "+v.Text)
		case *doctree.Paragraph:
			if line, ok := paragraphLine(v); ok {
				emit(line)
			}
		}
	}

	if tables := doc.Tables(); len(tables) > 0 {
		emit("", rule, TablesTitle, rule)
		for i, t := range tables {
			emit("", fmt.Sprintf("[Table %d]", i+1), t.Dimensions())
			for _, row := range t.Rows {
				if len(row.Cells) == 0 {
					continue
				}
				emit(rowLine(row))
			}
			emit("")
		}
	}

	emit("", rule, InfoTitle, rule)
	emit(fmt.Sprintf("Total paragraphs: %d", doc.ParagraphCount()))
	emit(fmt.Sprintf("Total tables: %d", len(doc.Tables())))
	emit(fmt.Sprintf("Total sections: %d", doc.Sections))
	switch {
	case !doc.ObjectsDetected:
		emit(ObjectsUnknown)
	case doc.InlineObjects > 0:
		emit(fmt.Sprintf("Images/Objects: %d (not displayed in text view)", doc.InlineObjects))
	}

	emit("", Legend, rule)
	return strings.Join(lines, "\n")
}

// metadataLines lists the present metadata fields.
func metadataLines(m doctree.Metadata) []string {
	var out []string
	if m.Author != "" {
		out = append(out, "Author: "+m.Author)
	}
	if m.Created != nil {
		out = append(out, "Created: "+m.Created.UTC().Format(TimeLayout))
	}
	if m.Title != "" {
		out = append(out, "Title: "+m.Title)
	}
	if m.Subject != "" {
		out = append(out, "Subject: "+m.Subject)
	}
	if m.Modified != nil {
		out = append(out, "Modified: "+m.Modified.UTC().Format(TimeLayout))
	}
	return out
}

// paragraphLine returns the annotated line for a paragraph and whether one
// should be emitted at all.
func paragraphLine(p *doctree.Paragraph) (string, bool) {
	if len(p.Runs) == 0 {
		return "", false
	}
	if p.IsBlank() {
		return EmptyParagraph, true
	}
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(FormatRun(r))
	}
	line := sb.String()
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	return line, true
}

// FormatRun wraps a run's text in its markers. Bold is innermost and
// highlight outermost. Whitespace-only runs are returned unchanged.
func FormatRun(r doctree.Run) string {
	text := r.Text
	if strings.TrimSpace(text) == "" {
		return text
	}
	if r.Bold {
		text = BoldMarker + text + BoldMarker
	}
	if r.Italic {
		text = ItalicMarker + text + ItalicMarker
	}
	if r.Underline {
		text = UnderlineMarker + text + UnderlineMarker
	}
	if r.Highlighted {
		text = HighlightOpen + text + HighlightClose
	}
	return text
}

func rowLine(row doctree.Row) string {
	cells := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		c = strings.TrimSpace(c)
		if c == "" {
			cells[i] = EmptyCell
			continue
		}
		cells[i] = truncate(c, maxCellRunes, cellKeepRunes)
	}
	return strings.Join(cells, CellSeparator)
}
