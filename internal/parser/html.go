package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docpad/internal/doctree"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// htmlPolicy keeps only the structure the document model can represent.
var htmlPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "section", "article", "span", "br", "pre",
		"ul", "ol", "li", "blockquote",
		"b", "strong", "i", "em", "u", "ins", "mark",
		"table", "caption", "thead", "tbody", "tfoot", "tr", "th", "td",
	)
	p.AllowAttrs("src", "alt").OnElements("img")
	p.SkipElementsContent("nav", "header", "footer", "noscript")
	return p
}()

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	raw, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	clean, err := html.Parse(bytes.NewReader(htmlPolicy.SanitizeBytes(src)))
	if err != nil {
		return nil, fmt.Errorf("parse sanitized html: %w", err)
	}

	doc := &doctree.Document{
		Metadata:        htmlMetadata(raw),
		Sections:        1,
		ObjectsDetected: true,
	}
	w := &htmlWalker{doc: doc}
	w.walk(clean, doctree.Run{})
	w.flush()
	return doc, nil
}

type htmlWalker struct {
	doc *doctree.Document
	buf runBuffer
}

func (w *htmlWalker) walk(n *html.Node, style doctree.Run) {
	switch n.Type {
	case html.TextNode:
		if len(w.buf.runs) == 0 && strings.TrimSpace(n.Data) == "" {
			return
		}
		w.buf.add(collapseSpace(n.Data), style)
		return
	case html.ElementNode:
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			w.flush()
			if t := strings.Join(strings.Fields(textContent(n)), " "); t != "" {
				w.doc.Blocks = append(w.doc.Blocks, doctree.NewHeading(int(n.Data[1]-'0'), t))
			}
			return
		case "table":
			w.flush()
			w.doc.Blocks = append(w.doc.Blocks, htmlTable(n))
			return
		case "br":
			w.buf.add("\n", style)
			return
		case "img":
			w.doc.InlineObjects++
			return
		case "b", "strong":
			style.Bold = true
		case "i", "em":
			style.Italic = true
		case "u", "ins":
			style.Underline = true
		case "mark":
			style.Highlighted = true
		case "p", "div", "section", "article", "li", "ul", "ol", "blockquote", "pre":
			w.flush()
			defer w.flush()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, style)
	}
}

// flush closes the pending paragraph. Paragraphs without visible text are dropped.
func (w *htmlWalker) flush() {
	runs := w.buf.take()
	if len(runs) == 0 {
		return
	}
	runs[0].Text = strings.TrimLeft(runs[0].Text, " \n")
	last := len(runs) - 1
	runs[last].Text = strings.TrimRight(runs[last].Text, " \n")
	p := &doctree.Paragraph{Runs: runs}
	if p.IsBlank() {
		return
	}
	w.doc.Blocks = append(w.doc.Blocks, p)
}

func htmlTable(n *html.Node) *doctree.Table {
	t := &doctree.Table{}
	var rows func(*html.Node)
	rows = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				var r doctree.Row
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
						r.Cells = append(r.Cells, strings.Join(strings.Fields(textContent(cell)), " "))
					}
				}
				t.Rows = append(t.Rows, r)
				t.Columns = max(t.Columns, len(r.Cells))
			case "thead", "tbody", "tfoot":
				rows(c)
			}
		}
	}
	rows(n)
	return t
}

// htmlMetadata reads <title> and the author/subject/description meta tags.
func htmlMetadata(root *html.Node) doctree.Metadata {
	var m doctree.Metadata
	var description string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if m.Title == "" {
					m.Title = textContent(n)
				}
			case "meta":
				content := strings.TrimSpace(attr(n, "content"))
				switch strings.ToLower(attr(n, "name")) {
				case "author":
					m.Author = content
				case "subject":
					m.Subject = content
				case "description":
					description = content
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	if m.Subject == "" {
		m.Subject = description
	}
	return m
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// collapseSpace folds whitespace runs into single spaces, keeping one space at
// either end if the input had any.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\r\n") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\r\n") != s {
		out += " "
	}
	return out
}
