package doc

import "strings"

// Special characters of the main document text.
const (
	chCellMark    = 0x07
	chPageBreak   = 0x0C
	chParaEnd     = 0x0D
	chFieldBegin  = 0x13
	chFieldSep    = 0x14
	chFieldEnd    = 0x15
	chNonBreakHyp = 0x1E
)

// paragraph is one paragraph of the main document with the properties of
// its paragraph mark.
type paragraph struct {
	text    string
	cellEnd bool // ended by a cell mark rather than a paragraph mark
	props   paraProps
}

// splitParagraphs cuts the character stream at paragraph and cell marks.
// Field instructions are dropped and field results kept. Control
// characters other than tab and vertical tab are removed. data is the Data
// stream, nil when the document has none.
func splitParagraphs(chars []char, idx papxIndex, data []byte) []paragraph {
	var paras []paragraph
	var sb strings.Builder
	var fields []bool // open fields; true once the separator was seen

	for _, c := range chars {
		switch c.r {
		case chParaEnd, chCellMark:
			paras = append(paras, paragraph{
				text:    sb.String(),
				cellEnd: c.r == chCellMark,
				props:   parseParaProps(idx.lookup(c.fc), data),
			})
			sb.Reset()
			continue
		case chFieldBegin:
			fields = append(fields, false)
			continue
		case chFieldSep:
			if len(fields) > 0 {
				fields[len(fields)-1] = true
			}
			continue
		case chFieldEnd:
			if len(fields) > 0 {
				fields = fields[:len(fields)-1]
			}
			continue
		}

		if inInstruction(fields) {
			continue
		}

		switch {
		case c.r == chPageBreak:
			sb.WriteByte('\n')
		case c.r == chNonBreakHyp:
			sb.WriteByte('-')
		case c.r == '\t' || c.r == '\v':
			sb.WriteRune(c.r)
		case c.r < 0x20:
			// object anchors, footnote references and other controls
		default:
			sb.WriteRune(c.r)
		}
	}

	if sb.Len() > 0 {
		paras = append(paras, paragraph{text: sb.String()})
	}
	return paras
}

// inInstruction reports whether any open field is still in its instruction part.
func inInstruction(fields []bool) bool {
	for _, sep := range fields {
		if !sep {
			return true
		}
	}
	return false
}
