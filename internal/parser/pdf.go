package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dgallion1/docpad/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// ledongthuc/pdf and pdftotext both want a file on disk.
	tmp, err := os.CreateTemp("", "docpad-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, meta, err := extractPDF(tmpPath)
	if err != nil && p.FallbackPdftotext {
		var text string
		text, err = extractPdftotext(tmpPath)
		pages = strings.Split(strings.TrimSuffix(text, "\f"), "\f")
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	doc := &doctree.Document{Metadata: meta, Sections: len(pages)}
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimRight(line, " \t\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			doc.Blocks = append(doc.Blocks, &doctree.Paragraph{Runs: []doctree.Run{{Text: line}}})
		}
	}
	return doc, nil
}

func extractPDF(path string) (pages []string, meta doctree.Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, doctree.Metadata{}, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		pages = append(pages, text)
	}
	return pages, pdfMetadata(reader), nil
}

func pdfMetadata(reader *pdflib.Reader) doctree.Metadata {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return doctree.Metadata{}
	}
	return doctree.Metadata{
		Author:   strings.TrimSpace(info.Key("Author").Text()),
		Title:    strings.TrimSpace(info.Key("Title").Text()),
		Subject:  strings.TrimSpace(info.Key("Subject").Text()),
		Created:  parsePDFDate(info.Key("CreationDate").Text()),
		Modified: parsePDFDate(info.Key("ModDate").Text()),
	}
}

// parsePDFDate parses the leading digits of a "D:YYYYMMDDHHmmSS" date.
// Offsets are ignored and the value is read as UTC.
func parsePDFDate(s string) *time.Time {
	s = strings.TrimPrefix(strings.TrimSpace(s), "D:")
	n := 0
	for n < len(s) && n < 14 && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	layouts := map[int]string{
		14: "20060102150405",
		12: "200601021504",
		8:  "20060102",
		4:  "2006",
	}
	layout, ok := layouts[n]
	if !ok {
		return nil
	}
	t, err := time.Parse(layout, s[:n])
	if err != nil {
		return nil
	}
	return &t
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
