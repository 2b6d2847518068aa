package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docpad/internal/doctree"
)

func TestMarkdownParser_Headings(t *testing.T) {
	input := `# Title

Intro text.

## Section A

#### Deep heading
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(doc.Blocks))
	}

	wantLevels := map[int]int{0: 1, 2: 2, 3: 3}
	for i, level := range wantLevels {
		h, ok := doc.Blocks[i].(*doctree.Heading)
		if !ok {
			t.Errorf("block %d: expected heading, got %T", i, doc.Blocks[i])
			continue
		}
		if h.Level != level {
			t.Errorf("block %d: expected level %d, got %d", i, level, h.Level)
		}
	}
	if h := doc.Blocks[3].(*doctree.Heading); h.Text != "Deep heading" {
		t.Errorf("expected %q, got %q", "Deep heading", h.Text)
	}
	if got := doc.Blocks[1].(*doctree.Paragraph).Text(); got != "Intro text." {
		t.Errorf("expected %q, got %q", "Intro text.", got)
	}
}

func TestMarkdownParser_Emphasis(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("Some **bold** and *italic* text."), "e.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	para := doc.Blocks[0].(*doctree.Paragraph)
	want := []doctree.Run{
		{Text: "Some "},
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "italic", Italic: true},
		{Text: " text."},
	}
	if len(para.Runs) != len(want) {
		t.Fatalf("expected %d runs, got %d: %+v", len(want), len(para.Runs), para.Runs)
	}
	for i := range want {
		if para.Runs[i] != want[i] {
			t.Errorf("run %d: expected %+v, got %+v", i, want[i], para.Runs[i])
		}
	}
}

func TestMarkdownParser_Table(t *testing.T) {
	input := "| Name | Age |\n| --- | --- |\n| Ann | 42 |\n| Bo |  |\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "t.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables := doc.Tables()
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	tbl := tables[0]
	if tbl.Dimensions() != "Dimensions: 3 rows × 2 columns" {
		t.Errorf("unexpected dimensions %q", tbl.Dimensions())
	}
	if tbl.Rows[0].Cells[0] != "Name" || tbl.Rows[1].Cells[1] != "42" {
		t.Errorf("unexpected cells %+v", tbl.Rows)
	}
	if tbl.Rows[2].Cells[1] != "" {
		t.Errorf("expected empty cell, got %q", tbl.Rows[2].Cells[1])
	}
}

func TestMarkdownParser_CodeBlocksAndLists(t *testing.T) {
	input := "- first item\n- second item\n\n```\nGET /api/users\nPOST /api/users\n```\n\n> quoted\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var texts []string
	for _, b := range doc.Blocks {
		text, ok := doctree.PlainText(b)
		if !ok {
			t.Fatalf("unexpected block %T", b)
		}
		texts = append(texts, text)
	}
	want := []string{"first item", "second item", "GET /api/users", "POST /api/users", "quoted"}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, texts)
	}
}

func TestMarkdownParser_Images(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("See ![logo](logo.png) here."), "img.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.InlineObjects != 1 {
		t.Errorf("expected 1 inline object, got %d", doc.InlineObjects)
	}
	if got := doc.Blocks[0].(*doctree.Paragraph).Text(); got != "See  here." {
		t.Errorf("expected image alt text dropped, got %q", got)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(doc.Blocks))
	}
}
