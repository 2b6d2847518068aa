package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/docpad/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark with GFM tables.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	doc := &doctree.Document{Sections: 1, ObjectsDetected: true}
	w := &mdWalker{src: src, doc: doc}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}
	return doc, nil
}

type mdWalker struct {
	src []byte
	doc *doctree.Document
}

// block appends the blocks for one goldmark block node.
func (w *mdWalker) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		runs := w.inlines(node, doctree.Run{})
		h := &doctree.Paragraph{Runs: runs}
		w.doc.Blocks = append(w.doc.Blocks, doctree.NewHeading(node.Level, h.Text()))
	case *ast.Paragraph, *ast.TextBlock:
		w.doc.Blocks = append(w.doc.Blocks, &doctree.Paragraph{Runs: w.inlines(node, doctree.Run{})})
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(w.src)), "\r\n")
			w.doc.Blocks = append(w.doc.Blocks, &doctree.Paragraph{Runs: []doctree.Run{{Text: line}}})
		}
	case *east.Table:
		w.doc.Blocks = append(w.doc.Blocks, w.table(node))
	case *ast.ThematicBreak, *ast.HTMLBlock:
		// Not representable.
	default:
		// Lists, list items and blockquotes: descend into their blocks.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c)
		}
	}
}

func (w *mdWalker) table(node *east.Table) *doctree.Table {
	t := &doctree.Table{Columns: len(node.Alignments)}
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		var r doctree.Row
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			p := &doctree.Paragraph{Runs: w.inlines(cell, doctree.Run{})}
			r.Cells = append(r.Cells, strings.TrimSpace(p.Text()))
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

// inlines flattens the inline children of n into styled runs.
func (w *mdWalker) inlines(n ast.Node, style doctree.Run) []doctree.Run {
	var buf runBuffer
	var walk func(n ast.Node, st doctree.Run)
	walk = func(n ast.Node, st doctree.Run) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				buf.add(string(node.Value(w.src)), st)
				switch {
				case node.HardLineBreak():
					buf.add("\n", st)
				case node.SoftLineBreak():
					buf.add(" ", st)
				}
			case *ast.String:
				buf.add(string(node.Value), st)
			case *ast.Emphasis:
				inner := st
				if node.Level >= 2 {
					inner.Bold = true
				} else {
					inner.Italic = true
				}
				walk(node, inner)
			case *ast.AutoLink:
				buf.add(string(node.Label(w.src)), st)
			case *ast.Image:
				w.doc.InlineObjects++
			case *ast.RawHTML:
				// Dropped.
			default:
				walk(c, st)
			}
		}
	}
	walk(n, style)
	return buf.take()
}
