package writer

import (
	"fmt"
	"io"

	"github.com/dgallion1/docpad/internal/codec"
	"github.com/dgallion1/docpad/internal/doctree"
)

// TextWriter writes the annotated text form of a document.
type TextWriter struct{}

func (tw *TextWriter) Write(w io.Writer, doc *doctree.Document) error {
	if _, err := io.WriteString(w, codec.Decode(doc)); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
