package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// runToggles records toggle properties whose explicit value go-docx drops:
// it keeps only the presence of w:b and w:i, so <w:b w:val="0"/> reads as on.
type runToggles struct {
	boldOff   bool
	italicOff bool
}

// docxScan is what a raw pass over word/document.xml adds to go-docx.
type docxScan struct {
	// paragraphs holds per-run toggles for every paragraph ParseDOCX visits,
	// in visit order: body paragraphs and first-level table cell paragraphs.
	// A hyperlink counts as one run, as it does in go-docx.
	paragraphs [][]runToggles
	// sections counts w:body/w:sectPr and w:body/w:p/w:pPr/w:sectPr.
	sections int
}

const (
	bodyPath     = "document/body"
	bodyParaPath = bodyPath + "/p"
	cellParaPath = bodyPath + "/tbl/tr/tc/p"
	bodySectPath = bodyPath + "/sectPr"
	paraSectPath = bodyParaPath + "/pPr/sectPr"
)

func scanDOCX(src []byte) (*docxScan, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	rc, err := openZipEntry(zr, documentPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	scan := &docxScan{}
	decoder := xml.NewDecoder(rc)
	var stack []string
	var paraPath string // path of the paragraph being recorded, or ""
	var current *runToggles

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", documentPath, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			path := strings.Join(stack, "/")

			switch {
			case path == bodySectPath || path == paraSectPath:
				scan.sections++
			case path == bodyParaPath || path == cellParaPath:
				paraPath = path
				scan.paragraphs = append(scan.paragraphs, nil)
			case paraPath == "":
			case path == paraPath+"/r" || path == paraPath+"/hyperlink":
				last := len(scan.paragraphs) - 1
				scan.paragraphs[last] = append(scan.paragraphs[last], runToggles{})
				current = &scan.paragraphs[last][len(scan.paragraphs[last])-1]
			case path == paraPath+"/r/rPr" || path == paraPath+"/hyperlink/r/rPr":
				// A later rPr replaces the run properties wholesale.
				*current = runToggles{}
			case path == paraPath+"/r/rPr/b" || path == paraPath+"/hyperlink/r/rPr/b":
				current.boldOff = toggleOff(t.Attr)
			case path == paraPath+"/r/rPr/i" || path == paraPath+"/hyperlink/r/rPr/i":
				current.italicOff = toggleOff(t.Attr)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				break
			}
			if strings.Join(stack, "/") == paraPath {
				paraPath = ""
				current = nil
			}
			stack = stack[:len(stack)-1]
		}
	}
	return scan, nil
}

// toggleOff reports whether an OOXML on/off property is explicitly off.
func toggleOff(attrs []xml.Attr) bool {
	for _, a := range attrs {
		if a.Name.Local != "val" {
			continue
		}
		switch strings.ToLower(a.Value) {
		case "0", "false", "off":
			return true
		}
	}
	return false
}

// toggleCursor hands out scanned run toggles in paragraph visit order.
type toggleCursor struct {
	paragraphs [][]runToggles
	next       int
}

// take returns the toggles for the next visited paragraph. It returns nil
// when the scan and go-docx disagree on the paragraph's run count.
func (c *toggleCursor) take(runs int) []runToggles {
	if c == nil || c.next >= len(c.paragraphs) {
		return nil
	}
	t := c.paragraphs[c.next]
	c.next++
	if len(t) != runs {
		return nil
	}
	return t
}
