// Package writer serializes documents to files.
package writer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docpad/internal/doctree"
)

// ErrUnsupportedExtension is returned by ForFile for formats that cannot be written.
var ErrUnsupportedExtension = errors.New("unsupported output extension")

// Writer serializes a Document.
type Writer interface {
	Write(w io.Writer, doc *doctree.Document) error
}

// ForFile returns the writer for a filename.
func ForFile(filename string) (Writer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return &DOCXWriter{}, nil
	case ".txt", ".md", ".markdown":
		return &TextWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}
