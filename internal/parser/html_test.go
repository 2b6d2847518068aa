package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docpad/internal/doctree"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Quarterly Report</title>
  <meta name="author" content="Ann Lee">
  <meta name="description" content="Numbers">
  <script>var secret = "drop me";</script>
</head>
<body>
  <nav>Home | About</nav>
  <h1>Summary</h1>
  <p>Revenue <strong>grew</strong> and <em>costs</em> <mark>fell</mark>.</p>
  <div onclick="evil()">Plain   div
     text</div>
  <h5>Details</h5>
  <ul><li>one</li><li><u>two</u></li></ul>
  <img src="chart.png" alt="chart">
  <table>
    <thead><tr><th>Q</th><th>Value</th></tr></thead>
    <tbody><tr><td>Q1</td><td></td></tr></tbody>
  </table>
  <style>p { color: red; }</style>
</body>
</html>`

func parseHTML(t *testing.T) *doctree.Document {
	t.Helper()
	doc, err := (&HTMLParser{}).Parse(strings.NewReader(sampleHTML), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestHTMLParser_Metadata(t *testing.T) {
	m := parseHTML(t).Metadata
	if m.Title != "Quarterly Report" {
		t.Errorf("expected title %q, got %q", "Quarterly Report", m.Title)
	}
	if m.Author != "Ann Lee" {
		t.Errorf("expected author %q, got %q", "Ann Lee", m.Author)
	}
	if m.Subject != "Numbers" {
		t.Errorf("expected subject from description, got %q", m.Subject)
	}
}

func TestHTMLParser_Blocks(t *testing.T) {
	doc := parseHTML(t)
	var texts []string
	for _, b := range doc.Blocks {
		if text, ok := doctree.PlainText(b); ok {
			texts = append(texts, text)
		}
	}
	want := []string{"Summary", "Revenue grew and costs fell.", "Plain div text", "Details", "one", "two"}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Errorf("expected %q, got %q", want, texts)
	}

	if h, ok := doc.Blocks[3].(*doctree.Heading); !ok || h.Level != 3 {
		t.Errorf("expected h5 clamped to level 3, got %#v", doc.Blocks[3])
	}

	para := doc.Blocks[1].(*doctree.Paragraph)
	var bold, italic, highlighted bool
	for _, r := range para.Runs {
		bold = bold || (r.Bold && r.Text == "grew")
		italic = italic || (r.Italic && r.Text == "costs")
		highlighted = highlighted || (r.Highlighted && r.Text == "fell")
	}
	if !bold || !italic || !highlighted {
		t.Errorf("expected styled runs, got %+v", para.Runs)
	}
}

func TestHTMLParser_DropsUnsafeAndChrome(t *testing.T) {
	out := ""
	for _, b := range parseHTML(t).Blocks {
		if text, ok := doctree.PlainText(b); ok {
			out += text + "\n"
		}
	}
	for _, unwanted := range []string{"secret", "color: red", "Home | About", "Quarterly Report"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("expected %q to be dropped, got:\n%s", unwanted, out)
		}
	}
}

func TestHTMLParser_TableAndImages(t *testing.T) {
	doc := parseHTML(t)
	tables := doc.Tables()
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if tables[0].Dimensions() != "Dimensions: 2 rows × 2 columns" {
		t.Errorf("unexpected dimensions %q", tables[0].Dimensions())
	}
	if tables[0].Rows[1].Cells[1] != "" {
		t.Errorf("expected empty cell, got %q", tables[0].Rows[1].Cells[1])
	}
	if doc.InlineObjects != 1 {
		t.Errorf("expected 1 image, got %d", doc.InlineObjects)
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := map[string]string{
		"a  b":     "a b",
		"  a\n b ": " a b ",
		"\n\t ":    " ",
		"word":     "word",
	}
	for in, want := range tests {
		if got := collapseSpace(in); got != want {
			t.Errorf("collapseSpace(%q): expected %q, got %q", in, want, got)
		}
	}
}
