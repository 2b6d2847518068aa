package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docpad/internal/doctree"
)

func lines(s string) []string {
	return strings.Split(s, "\n")
}

func containsLine(out, want string) bool {
	for _, l := range lines(out) {
		if l == want {
			return true
		}
	}
	return false
}

func TestDecode_BannerAndFooter(t *testing.T) {
	out := Decode(&doctree.Document{Sections: 1, ObjectsDetected: true})
	want := []string{
		rule,
		BannerTitle,
		rule,
		"",
		"",
		rule,
		InfoTitle,
		rule,
		"Total paragraphs: 0",
		"Total tables: 0",
		"Total sections: 1",
		"",
		Legend,
		rule,
	}
	got := lines(out)
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(got), out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if len(rule) != 70 {
		t.Errorf("expected 70-character rule, got %d", len(rule))
	}
}

func TestDecode_NoTablesNoTablesBanner(t *testing.T) {
	doc := &doctree.Document{
		Blocks: []doctree.Block{
			doctree.NewHeading(2, "Intro"),
			&doctree.Paragraph{Runs: []doctree.Run{{Text: "text"}}},
		},
	}
	if out := Decode(doc); containsLine(out, TablesTitle) {
		t.Errorf("expected no TABLES banner, got:\n%s", out)
	}
}

func TestDecode_Deterministic(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	doc := &doctree.Document{
		Metadata: doctree.Metadata{Author: "Ann", Created: &created},
		Blocks: []doctree.Block{
			&doctree.Paragraph{Runs: []doctree.Run{{Text: "a", Bold: true, Italic: true}}},
			&doctree.Table{Columns: 1, Rows: []doctree.Row{{Cells: []string{"x"}}}},
		},
		Sections: 1,
	}
	if Decode(doc) != Decode(doc) {
		t.Error("expected identical output for identical input")
	}
}

func TestDecode_Heading(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.Paragraph{Runs: []doctree.Run{{Text: "before"}}},
		doctree.NewHeading(3, "Deep **title**"),
	}}
	got := lines(Decode(doc))
	for i, l := range got {
		if l == "### Deep **title**" {
			if got[i-1] != "" {
				t.Errorf("expected blank line before heading, got %q", got[i-1])
			}
			return
		}
	}
	t.Errorf("heading line not found in:\n%s", strings.Join(got, "\n"))
}

func TestDecode_EmptyParagraphs(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.Paragraph{},
		&doctree.Paragraph{Runs: []doctree.Run{{Text: "   ", Bold: true}}},
	}}
	out := Decode(doc)
	count := 0
	for _, l := range lines(out) {
		if l == EmptyParagraph {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one %q line, got %d:\n%s", EmptyParagraph, count, out)
	}
	if !containsLine(out, "Total paragraphs: 2") {
		t.Errorf("expected both paragraphs counted, got:\n%s", out)
	}
}

func TestFormatRun_NestingOrder(t *testing.T) {
	tests := []struct {
		run  doctree.Run
		want string
	}{
		{doctree.Run{Text: "hi"}, "hi"},
		{doctree.Run{Text: "hi", Bold: true}, "**hi**"},
		{doctree.Run{Text: "hi", Italic: true}, "*hi*"},
		{doctree.Run{Text: "hi", Underline: true}, "_hi_"},
		{doctree.Run{Text: "hi", Highlighted: true}, "[HIGHLIGHT]hi[/HIGHLIGHT]"},
		{doctree.Run{Text: "hi", Bold: true, Italic: true}, "***hi***"},
		{doctree.Run{Text: "hi", Bold: true, Italic: true, Underline: true, Highlighted: true}, "[HIGHLIGHT]_***hi***_[/HIGHLIGHT]"},
		{doctree.Run{Text: "  ", Bold: true, Highlighted: true}, "  "},
	}
	for _, tt := range tests {
		if got := FormatRun(tt.run); got != tt.want {
			t.Errorf("FormatRun(%+v): expected %q, got %q", tt.run, tt.want, got)
		}
	}
}

func TestDecode_ParagraphRunsConcatenate(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.Paragraph{Runs: []doctree.Run{
			{Text: "Plain "},
			{Text: "bold", Bold: true},
			{Text: " "},
			{Text: "under", Underline: true},
		}},
	}}
	if out := Decode(doc); !containsLine(out, "Plain **bold** _under_") {
		t.Errorf("expected concatenated runs, got:\n%s", out)
	}
}

func TestDecode_Metadata(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := &doctree.Document{Metadata: doctree.Metadata{
		Author:  "Ann",
		Title:   "Report",
		Created: &created,
	}}
	got := lines(Decode(doc))
	want := []string{PropertiesTitle, "Author: Ann", "Created: 2024-01-02 03:04:05", "Title: Report", ""}
	for i, w := range want {
		if got[4+i] != w {
			t.Errorf("line %d: expected %q, got %q", 4+i, w, got[4+i])
		}
	}
}

func TestDecode_MetadataSubjectOnly(t *testing.T) {
	out := Decode(&doctree.Document{Metadata: doctree.Metadata{Subject: "Notes"}})
	if !containsLine(out, PropertiesTitle) || !containsLine(out, "Subject: Notes") {
		t.Errorf("expected properties block with subject, got:\n%s", out)
	}
	if containsLine(out, "Author: ") || strings.Contains(out, "Title: ") {
		t.Errorf("expected absent fields to be omitted, got:\n%s", out)
	}
}

func TestDecode_NoMetadataNoPropertiesBlock(t *testing.T) {
	if out := Decode(&doctree.Document{}); strings.Contains(out, PropertiesTitle) {
		t.Errorf("expected no properties block, got:\n%s", out)
	}
}

func TestDecode_Table(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.Table{Columns: 2, Rows: []doctree.Row{
			{Cells: []string{"Name", ""}},
			{Cells: []string{"Ann", "42"}},
		}},
		&doctree.Paragraph{Runs: []doctree.Run{{Text: "after"}}},
	}}
	out := Decode(doc)
	got := lines(out)

	tablesAt, afterAt := -1, -1
	for i, l := range got {
		switch l {
		case TablesTitle:
			tablesAt = i
		case "after":
			afterAt = i
		}
	}
	if tablesAt < 0 {
		t.Fatalf("expected TABLES banner, got:\n%s", out)
	}
	if afterAt > tablesAt {
		t.Errorf("expected paragraphs before the tables region")
	}

	want := []string{TablesTitle, rule, "", "[Table 1]", "Dimensions: 2 rows × 2 columns", "Name | [empty]", "Ann | 42", ""}
	for i, w := range want {
		if got[tablesAt+i] != w {
			t.Errorf("line %d: expected %q, got %q", tablesAt+i, w, got[tablesAt+i])
		}
	}
	for _, row := range []string{"Name | [empty]", "Ann | 42"} {
		if strings.Count(row, CellSeparator) != 1 {
			t.Errorf("expected exactly one separator in %q", row)
		}
	}
	if !containsLine(out, "Total tables: 1") {
		t.Errorf("expected table count in footer")
	}
}

func TestDecode_CellTruncation(t *testing.T) {
	long := strings.Repeat("x", 51)
	exact := strings.Repeat("y", 50)
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.Table{Rows: []doctree.Row{{Cells: []string{long, exact, "  padded  "}}}},
	}}
	want := strings.Repeat("x", 47) + "... | " + exact + " | padded"
	if out := Decode(doc); !containsLine(out, want) {
		t.Errorf("expected row %q, got:\n%s", want, out)
	}
}

func TestDecode_ColumnsNotCrossChecked(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.Table{Columns: 0, Rows: []doctree.Row{{Cells: []string{"a", "b", "c"}}, {}}},
	}}
	out := Decode(doc)
	if !containsLine(out, "Dimensions: 2 rows × 0 columns") {
		t.Errorf("expected declared column count, got:\n%s", out)
	}
	if !containsLine(out, "a | b | c") {
		t.Errorf("expected all cells emitted, got:\n%s", out)
	}
}

func TestDecode_InlineObjects(t *testing.T) {
	tests := []struct {
		name string
		doc  *doctree.Document
		want string
		none bool
	}{
		{"counted", &doctree.Document{ObjectsDetected: true, InlineObjects: 2}, "Images/Objects: 2 (not displayed in text view)", false},
		{"zero", &doctree.Document{ObjectsDetected: true}, "Images/Objects:", true},
		{"unknown", &doctree.Document{}, ObjectsUnknown, false},
	}
	for _, tt := range tests {
		out := Decode(tt.doc)
		if tt.none {
			if strings.Contains(out, tt.want) {
				t.Errorf("%s: expected no objects line, got:\n%s", tt.name, out)
			}
			continue
		}
		if !containsLine(out, tt.want) {
			t.Errorf("%s: expected %q, got:\n%s", tt.name, tt.want, out)
		}
	}
}
