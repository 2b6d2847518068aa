package codec

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docpad/internal/doctree"
)

// Summary is a condensed, read-only view of a document for display.
type Summary struct {
	Paragraphs int              `json:"paragraphs"`
	Tables     int              `json:"tables"`
	Sections   int              `json:"sections"`
	Words      int              `json:"words"`
	Metadata   doctree.Metadata `json:"metadata"`
	Samples    []Sample         `json:"samples"`
	TableInfo  []TableInfo      `json:"table_info"`
}

// Sample is a non-empty paragraph; Index is its 1-based position among
// headings and paragraphs.
type Sample struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// TableInfo describes one of the first tables.
type TableInfo struct {
	Index      int    `json:"index"`
	Dimensions string `json:"dimensions"`
}

// Profile summarizes a document without modifying it.
func Profile(doc *doctree.Document) Summary {
	tables := doc.Tables()
	s := Summary{
		Paragraphs: doc.ParagraphCount(),
		Tables:     len(tables),
		Sections:   doc.Sections,
		Metadata:   doc.Metadata,
	}

	pos := 0
	for _, b := range doc.Blocks {
		text, ok := doctree.PlainText(b)
		if !ok {
			continue
		}
		pos++
		s.Words += len(strings.Fields(text))
		if len(s.Samples) < maxSamples && strings.TrimSpace(text) != "" {
			s.Samples = append(s.Samples, Sample{
				Index: pos,
				Text:  truncate(text, maxSampleRunes, sampleKeep),
			})
		}
	}

	for i, t := range tables {
		if i == maxTableInfos {
			break
		}
		s.TableInfo = append(s.TableInfo, TableInfo{Index: i + 1, Dimensions: t.Dimensions()})
	}
	return s
}

// String renders the preview report.
func (s Summary) String() string {
	banner := strings.Repeat("=", 60)
	sep := strings.Repeat("-", 40)

	lines := []string{banner, "DOCUMENT PREVIEW", banner, ""}
	lines = append(lines,
		"STATISTICS:", sep,
		fmt.Sprintf("Paragraphs: %d", s.Paragraphs),
		fmt.Sprintf("Tables: %d", s.Tables),
		fmt.Sprintf("Sections: %d", s.Sections),
		fmt.Sprintf("Words: %d", s.Words),
	)

	lines = append(lines, "", "PROPERTIES:", sep)
	m := s.Metadata
	if m.Author != "" {
		lines = append(lines, "Author: "+m.Author)
	}
	if m.Title != "" {
		lines = append(lines, "Title: "+m.Title)
	}
	if m.Subject != "" {
		lines = append(lines, "Subject: "+m.Subject)
	}
	if m.Created != nil {
		lines = append(lines, "Created: "+m.Created.UTC().Format(TimeLayout))
	}
	if m.Modified != nil {
		lines = append(lines, "Modified: "+m.Modified.UTC().Format(TimeLayout))
	}

	lines = append(lines, "", fmt.Sprintf("SAMPLE CONTENT (first %d paragraphs):", maxSamples), sep)
	for _, sm := range s.Samples {
		lines = append(lines, fmt.Sprintf("%d. %s", sm.Index, sm.Text))
	}

	if len(s.TableInfo) > 0 {
		lines = append(lines, "", "TABLE INFORMATION:", sep)
		for _, ti := range s.TableInfo {
			lines = append(lines, fmt.Sprintf("Table %d: %s", ti.Index, ti.Dimensions))
		}
	}

	lines = append(lines, "", banner, "Note: This is a preview. Open the file to see full content.", banner)
	return strings.Join(lines, "\n")
}
