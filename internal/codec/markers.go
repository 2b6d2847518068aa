// Package codec converts between structured documents and the annotated
// plain-text form shown in the editor.
//
// Decode projects a document into annotated text, Encode rebuilds a minimal
// document from annotated text and Profile summarizes a document. The pair is
// intentionally lossy: Encode recognizes only the bold marker.
package codec

import "strings"

// Inline and block markers of the annotated text.
const (
	BoldMarker      = "**"
	ItalicMarker    = "*"
	UnderlineMarker = "_"
	HighlightOpen   = "[HIGHLIGHT]"
	HighlightClose  = "[/HIGHLIGHT]"

	EmptyParagraph = "[Empty paragraph]"
	EmptyCell      = "[empty]"
	CellSeparator  = " | "

	BannerTitle     = "DOCUMENT EXTRACTED FROM .DOCX FILE"
	PropertiesTitle = "[Document Properties]"
	TablesTitle     = "TABLES"
	InfoTitle       = "DOCUMENT INFORMATION"
	Legend          = "Note: Formatting markers: **bold**, *italic*, _underline_"

	ObjectsUnknown = "Images/Objects: (unable to detect)"

	// TimeLayout renders metadata timestamps.
	TimeLayout = "2006-01-02 15:04:05"
)

const (
	maxCellRunes   = 50
	cellKeepRunes  = 47
	maxSampleRunes = 100
	sampleKeep     = 97
	maxSamples     = 5
	maxTableInfos  = 3
)

var rule = strings.Repeat("=", 70)

// truncate cuts s to keep runes plus "..." when it is longer than limit runes.
func truncate(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + "..."
}
