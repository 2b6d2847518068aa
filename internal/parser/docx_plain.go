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

const documentPath = "word/document.xml"

// ExtractDOCXText reads paragraph text straight from word/document.xml, one
// line per w:p outside tables, without interpreting styles or runs. It tolerates
// documents that go-docx rejects: a token error after at least one complete
// paragraph ends extraction early instead of failing.
func ExtractDOCXText(src []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}
	rc, err := openZipEntry(zr, documentPath)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var lines []string
	var current strings.Builder
	var inParagraph, inRun, inText bool
	tableDepth := 0

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(lines) == 0 {
				return "", fmt.Errorf("read %s: %w", documentPath, err)
			}
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				inParagraph = tableDepth == 0
				current.Reset()
			case "r":
				inRun = inParagraph
			case "t":
				inText = inRun
			case "tab":
				if inRun {
					current.WriteByte('\t')
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "t":
				inText = false
			case "r":
				inRun = false
			case "p":
				if inParagraph {
					lines = append(lines, current.String())
					inParagraph = false
				}
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
