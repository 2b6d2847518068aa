package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dgallion1/docpad/internal/doctree"
)

const corePropsPath = "docProps/core.xml"

// coreProperties mirrors docProps/core.xml. Elements are matched by local name.
type coreProperties struct {
	Creator  string `xml:"creator"`
	Title    string `xml:"title"`
	Subject  string `xml:"subject"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

// readCoreProperties reads the package core properties of a .docx archive.
func readCoreProperties(src []byte) (doctree.Metadata, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return doctree.Metadata{}, fmt.Errorf("open zip: %w", err)
	}
	rc, err := openZipEntry(zr, corePropsPath)
	if err != nil {
		return doctree.Metadata{}, err
	}
	defer rc.Close()

	var cp coreProperties
	if err := xml.NewDecoder(rc).Decode(&cp); err != nil {
		return doctree.Metadata{}, fmt.Errorf("decode %s: %w", corePropsPath, err)
	}
	return doctree.Metadata{
		Author:   strings.TrimSpace(cp.Creator),
		Title:    strings.TrimSpace(cp.Title),
		Subject:  strings.TrimSpace(cp.Subject),
		Created:  parseW3CDTF(cp.Created),
		Modified: parseW3CDTF(cp.Modified),
	}, nil
}

func openZipEntry(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", name, err)
			}
			return rc, nil
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

var w3cdtfLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseW3CDTF parses a dcterms timestamp. Unparseable values are treated as absent.
func parseW3CDTF(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range w3cdtfLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
