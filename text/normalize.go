package text

import "strings"

// blankReplacer maps word-processor whitespace glyphs to a plain space
// and line-break glyphs to a newline.
var blankReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u3000", " ", // ideographic space
	"\t", " ",
	"\b", " ",
	"\v", "\n", // manual line break
	"\r", "\n",
)

// Normalize converts paragraph text to plain spaces and newlines, collapses
// runs of newlines and trims surrounding whitespace.
func Normalize(s string) string {
	s = blankReplacer.Replace(s)
	s = collapseNewlines(s)
	return strings.TrimFunc(s, isEdgeSpace)
}

// IsBlank reports whether s holds nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// collapseNewlines replaces every run of newlines with a single one.
func collapseNewlines(s string) string {
	if !strings.Contains(s, "\n\n") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	prevNewline := false
	for _, r := range s {
		if r == '\n' {
			if prevNewline {
				continue
			}
			prevNewline = true
		} else {
			prevNewline = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isEdgeSpace reports the characters trimmed from both ends of a paragraph.
func isEdgeSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', '\u00a0', '\u3000':
		return true
	}
	return false
}
