package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docpad/internal/doctree"
)

func para(text string) *doctree.Paragraph {
	return &doctree.Paragraph{Runs: []doctree.Run{{Text: text}}}
}

func TestProfile_Counts(t *testing.T) {
	doc := &doctree.Document{
		Blocks: []doctree.Block{
			doctree.NewHeading(1, "Title here"),
			para("one two three"),
			&doctree.Paragraph{},
			&doctree.Table{Columns: 2, Rows: []doctree.Row{{Cells: []string{"a", ""}}, {Cells: []string{"b", "c"}}}},
		},
		Sections: 2,
	}
	s := Profile(doc)
	if s.Paragraphs != 3 {
		t.Errorf("expected 3 paragraphs, got %d", s.Paragraphs)
	}
	if s.Tables != 1 {
		t.Errorf("expected 1 table, got %d", s.Tables)
	}
	if s.Sections != 2 {
		t.Errorf("expected 2 sections, got %d", s.Sections)
	}
	if s.Words != 5 {
		t.Errorf("expected 5 words, got %d", s.Words)
	}
	if len(s.TableInfo) != 1 || s.TableInfo[0].Dimensions != "Dimensions: 2 rows × 2 columns" {
		t.Errorf("unexpected table info %+v", s.TableInfo)
	}
}

func TestProfile_SamplesSkipEmptyAndKeepPosition(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{
		para("   "),
		para("first"),
		&doctree.Paragraph{},
		para("second"),
	}}
	s := Profile(doc)
	if len(s.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(s.Samples))
	}
	if s.Samples[0].Index != 2 || s.Samples[0].Text != "first" {
		t.Errorf("unexpected first sample %+v", s.Samples[0])
	}
	if s.Samples[1].Index != 4 || s.Samples[1].Text != "second" {
		t.Errorf("unexpected second sample %+v", s.Samples[1])
	}
}

func TestProfile_SampleLimits(t *testing.T) {
	var blocks []doctree.Block
	blocks = append(blocks, para(strings.Repeat("é", 101)))
	for i := 0; i < 10; i++ {
		blocks = append(blocks, para("p"))
	}
	for i := 0; i < 4; i++ {
		blocks = append(blocks, &doctree.Table{Columns: 1, Rows: []doctree.Row{{Cells: []string{"x"}}}})
	}
	s := Profile(&doctree.Document{Blocks: blocks})
	if len(s.Samples) != 5 {
		t.Errorf("expected 5 samples, got %d", len(s.Samples))
	}
	if want := strings.Repeat("é", 97) + "..."; s.Samples[0].Text != want {
		t.Errorf("expected truncated sample, got %q", s.Samples[0].Text)
	}
	if len(s.TableInfo) != 3 {
		t.Errorf("expected 3 table infos, got %d", len(s.TableInfo))
	}
	if s.Tables != 4 {
		t.Errorf("expected 4 tables, got %d", s.Tables)
	}
}

func TestProfile_DoesNotModifyDocument(t *testing.T) {
	doc := &doctree.Document{Blocks: []doctree.Block{para("keep me")}, Sections: 1}
	before := Decode(doc)
	Profile(doc)
	if after := Decode(doc); after != before {
		t.Error("expected Profile to leave the document unchanged")
	}
}

func TestSummary_String(t *testing.T) {
	created := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	doc := &doctree.Document{
		Metadata: doctree.Metadata{Author: "Bo", Created: &created},
		Blocks: []doctree.Block{
			para("hello world"),
			&doctree.Table{Columns: 3, Rows: []doctree.Row{{Cells: []string{"a", "b", "c"}}}},
		},
		Sections: 1,
	}
	out := Profile(doc).String()
	for _, want := range []string{
		"DOCUMENT PREVIEW",
		"Paragraphs: 1",
		"Tables: 1",
		"Sections: 1",
		"Words: 2",
		"Author: Bo",
		"Created: 2023-05-06 07:08:09",
		"1. hello world",
		"TABLE INFORMATION:",
		"Table 1: Dimensions: 1 rows × 3 columns",
		"Note: This is a preview. Open the file to see full content.",
	} {
		if !containsLine(out, want) {
			t.Errorf("expected line %q in:\n%s", want, out)
		}
	}
}

func TestSummary_StringWithoutTables(t *testing.T) {
	out := Profile(&doctree.Document{Blocks: []doctree.Block{para("x")}}).String()
	if strings.Contains(out, "TABLE INFORMATION") {
		t.Errorf("expected no table section, got:\n%s", out)
	}
}
