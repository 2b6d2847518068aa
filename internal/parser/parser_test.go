package parser

import (
	"errors"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.txt", "*parser.TextParser"},
		{"script.py", "*parser.TextParser"},
		{"README.MD", "*parser.MarkdownParser"},
		{"notes.markdown", "*parser.MarkdownParser"},
		{"data.csv", "*parser.CSVParser"},
		{"page.htm", "*parser.HTMLParser"},
		{"scan.pdf", "*parser.PDFParser"},
		{"Report.DOCX", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.filename, err)
			continue
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	_, err := ForFile("image.png")
	if !errors.Is(err, ErrUnsupportedExtension) {
		t.Errorf("expected ErrUnsupportedExtension, got %v", err)
	}
	if IsSupportedExtension("image.png") {
		t.Error("expected .png to be unsupported")
	}
	if !IsSupportedExtension("x.Docx") {
		t.Error("expected .docx to be supported")
	}
}

func TestOptions_PDFFallback(t *testing.T) {
	p, err := Options{PDFFallbackPdftotext: true}.ForFile("x.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pp, ok := p.(*PDFParser); !ok || !pp.FallbackPdftotext {
		t.Errorf("expected PDF parser with fallback, got %#v", p)
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *CSVParser:
		return "*parser.CSVParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}
