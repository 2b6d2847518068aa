package parser

import "github.com/dgallion1/docpad/internal/doctree"

// runBuffer accumulates styled text, merging adjacent runs of the same style.
type runBuffer struct {
	runs []doctree.Run
}

func (b *runBuffer) add(s string, style doctree.Run) {
	if s == "" {
		return
	}
	if k := len(b.runs) - 1; k >= 0 && sameStyle(b.runs[k], style) {
		b.runs[k].Text += s
		return
	}
	style.Text = s
	b.runs = append(b.runs, style)
}

// take returns the buffered runs and resets the buffer.
func (b *runBuffer) take() []doctree.Run {
	runs := b.runs
	b.runs = nil
	return runs
}

func sameStyle(a, b doctree.Run) bool {
	return a.Bold == b.Bold && a.Italic == b.Italic && a.Underline == b.Underline && a.Highlighted == b.Highlighted
}
