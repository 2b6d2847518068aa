package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docpad/internal/doctree"
)

// ErrUnsupportedExtension is returned by ForFile for unknown file types.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// Parser converts raw document bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// SupportedExtensions lists file extensions that can be loaded structurally.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".py":       true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tunes parser selection.
type Options struct {
	// PDFFallbackPdftotext retries PDF extraction with the pdftotext binary
	// when the Go reader fails.
	PDFFallbackPdftotext bool
}

// ForFile returns the parser for a filename using default options.
func ForFile(filename string) (Parser, error) {
	return Options{}.ForFile(filename)
}

// ForFile returns the appropriate parser for a filename.
func (o Options) ForFile(filename string) (Parser, error) {
	ext := Ext(filename)
	switch ext {
	case ".txt", ".py":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: o.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[Ext(filename)]
}

// Ext returns the lower-cased extension of filename, including the dot.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
