package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/docpad/internal/codec"
	"github.com/dgallion1/docpad/internal/doctree"
)

// TextParser handles plain and annotated text files. Each non-blank line
// becomes a paragraph; "**" spans become bold runs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return codec.Encode(strings.ReplaceAll(string(src), "\r\n", "\n")), nil
}
