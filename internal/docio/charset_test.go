package docio

import "testing"

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    string
		charset string
	}{
		{"utf8", []byte("héllo"), "héllo", CharsetUTF8},
		{"utf8 bom", []byte("\xEF\xBB\xBFhi"), "hi", CharsetUTF8},
		{"utf16 le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", CharsetUTF16},
		{"utf16 be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", CharsetUTF16},
		{"windows-1252 quotes", []byte("\x93hi\x94"), "“hi”", CharsetWindows1252},
		{"latin-1 fallback", []byte{0x81, 'a'}, "\u0081a", CharsetLatin1},
	}
	for _, tt := range tests {
		got, charset, err := decodeText(tt.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
		if charset != tt.charset {
			t.Errorf("%s: expected charset %s, got %s", tt.name, tt.charset, charset)
		}
	}
}
