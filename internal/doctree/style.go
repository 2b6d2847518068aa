package doctree

import "strings"

// lowercaseHeadingIDs are style IDs some writers emit in place of Word's
// "HeadingN".
var lowercaseHeadingIDs = map[string]int{
	"heading1": 1,
	"heading2": 2,
	"heading3": 3,
}

// HeadingLevel resolves a paragraph style name to a heading level, or 0 if the
// style is not a heading. Both display names ("Heading 2") and style IDs
// ("Heading2") are accepted. Matching is case-sensitive, so "Subheading 2" is
// not a heading. Any other style containing "Heading" resolves to level 1.
func HeadingLevel(style string) int {
	if level, ok := lowercaseHeadingIDs[style]; ok {
		return level
	}
	if !strings.Contains(style, "Heading") {
		return 0
	}
	for level, suffix := range []string{"1", "2", "3"} {
		if strings.Contains(style, "Heading "+suffix) || strings.Contains(style, "Heading"+suffix) {
			return level + 1
		}
	}
	return 1
}

// StyleID returns the docx paragraph style ID for a heading level.
func StyleID(level int) string {
	switch level {
	case 2:
		return "Heading2"
	case 3:
		return "Heading3"
	}
	return "Heading1"
}
