package codec

import (
	"strings"

	"github.com/dgallion1/docpad/internal/doctree"
)

// Encode rebuilds a document from annotated text. Each non-blank line becomes
// one paragraph. Only the bold marker is recognized; every other marker is
// kept as literal text. Encode never fails: an unmatched "**" still yields a
// bold segment rather than an error.
func Encode(text string) *doctree.Document {
	doc := &doctree.Document{
		Sections:        1,
		ObjectsDetected: true,
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.Blocks = append(doc.Blocks, &doctree.Paragraph{Runs: splitBold(line)})
	}
	return doc
}

// splitBold splits a line on "**". Even segments are plain and odd segments
// bold. Empty segments are kept, except an empty segment after the final
// delimiter.
func splitBold(line string) []doctree.Run {
	if !strings.Contains(line, BoldMarker) {
		return []doctree.Run{{Text: line}}
	}
	parts := strings.Split(line, BoldMarker)
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	runs := make([]doctree.Run, 0, len(parts))
	for i, part := range parts {
		runs = append(runs, doctree.Run{Text: part, Bold: i%2 == 1})
	}
	return runs
}
