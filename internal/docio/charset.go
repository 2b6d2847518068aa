package docio

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Charset names reported by decodeText.
const (
	CharsetUTF8        = "utf-8"
	CharsetUTF16       = "utf-16"
	CharsetWindows1252 = "windows-1252"
	CharsetLatin1      = "latin-1"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText converts raw text file bytes to UTF-8. It tries UTF-8, then
// UTF-16 when a byte order mark is present, then Windows-1252, and finally
// Latin-1, which accepts any input.
func decodeText(data []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		if utf8.Valid(data[len(bomUTF8):]) {
			return string(data[len(bomUTF8):]), CharsetUTF8, nil
		}
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(data); err == nil {
			return string(out), CharsetUTF16, nil
		}
	case utf8.Valid(data):
		return string(data), CharsetUTF8, nil
	}

	if out, err := decodeWith(charmap.Windows1252, data); err == nil && !strings.ContainsRune(out, utf8.RuneError) {
		return out, CharsetWindows1252, nil
	}
	out, err := decodeWith(charmap.ISO8859_1, data)
	if err != nil {
		return "", "", fmt.Errorf("decode text: %w", err)
	}
	return out, CharsetLatin1, nil
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
