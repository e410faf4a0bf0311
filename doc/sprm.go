package doc

import "encoding/binary"

// Paragraph and table property modifiers read by this package.
const (
	sprmPFInTable        = 0x2416
	sprmPFTtp            = 0x2417
	sprmPItap            = 0x6649
	sprmPFInnerTableCell = 0x244B
	sprmPFInnerTtp       = 0x244C
	sprmPHugePapx        = 0x6646
	sprmPChgTabs         = 0xC615
	sprmTDefTable10      = 0xD606
	sprmTDefTable        = 0xD608
	sprmTDyaRowHeight    = 0x9407
	sprmTVertMerge       = 0xD62B
)

// sprm is one property modifier with its operand.
type sprm struct {
	code    uint16
	operand []byte
}

// parseSprms splits a grpprl into property modifiers. Parsing stops at the
// first modifier whose operand does not fit.
func parseSprms(grpprl []byte) []sprm {
	var out []sprm
	pos := 0
	for pos+2 <= len(grpprl) {
		code := binary.LittleEndian.Uint16(grpprl[pos:])
		pos += 2

		start, size, ok := operandBounds(code, grpprl[pos:])
		if !ok || pos+start+size > len(grpprl) {
			break
		}
		out = append(out, sprm{code: code, operand: grpprl[pos+start : pos+start+size]})
		pos += start + size
	}
	return out
}

// operandBounds returns where the operand of code starts within rest and
// how long it is. The size class is encoded in the top three bits (spra).
func operandBounds(code uint16, rest []byte) (start, size int, ok bool) {
	switch code >> 13 {
	case 0, 1:
		return 0, 1, true
	case 2, 4, 5:
		return 0, 2, true
	case 3:
		return 0, 4, true
	case 7:
		return 0, 3, true
	}

	// Variable length.
	switch code {
	case sprmTDefTable, sprmTDefTable10:
		if len(rest) < 2 {
			return 0, 0, false
		}
		cb := int(binary.LittleEndian.Uint16(rest))
		if cb < 1 {
			return 0, 0, false
		}
		return 2, cb - 1, true
	case sprmPChgTabs:
		if len(rest) < 1 || rest[0] == 255 {
			return 0, 0, false
		}
		return 1, int(rest[0]), true
	}
	if len(rest) < 1 {
		return 0, 0, false
	}
	return 1, int(rest[0]), true
}

// paraProps are the table-related properties of one paragraph.
type paraProps struct {
	inTable   bool
	ttp       bool // row end mark of a depth-one table
	depth     int
	innerCell bool
	innerTtp  bool // row end mark of a nested table

	// Row properties, carried by row end marks.
	rowHeight int16
	cells     []cellDef

	// hugePapxLost is set when sprmPHugePapx points outside the Data stream.
	hugePapxLost bool
}

// cellDef is one cell of a row definition.
type cellDef struct {
	width int
	merge mergeFlag
}

type mergeFlag int

const (
	mergeNone mergeFlag = iota
	mergeContinue
	mergeRestart
)

// TC80 flags and sprmTVertMerge values.
const (
	tc80Size          = 20
	tcFVertMerge      = 0x0020
	tcFVertRestart    = 0x0040
	vertMergeContinue = 1
	vertMergeRestart  = 3
)

// parseParaProps applies the modifiers of grpprl. Paragraphs marked as in a
// table without an explicit nesting level are at depth one. Modifiers moved
// to the Data stream by sprmPHugePapx are read from data.
func parseParaProps(grpprl, data []byte) paraProps {
	var p paraProps
	depthSet := false

	apply := func(sprms []sprm) {
		for _, s := range sprms {
			switch s.code {
			case sprmPFInTable:
				p.inTable = s.operand[0] != 0
			case sprmPFTtp:
				p.ttp = s.operand[0] != 0
			case sprmPItap:
				p.depth = int(int32(binary.LittleEndian.Uint32(s.operand)))
				depthSet = true
			case sprmPFInnerTableCell:
				p.innerCell = s.operand[0] != 0
			case sprmPFInnerTtp:
				p.innerTtp = s.operand[0] != 0
			case sprmTDyaRowHeight:
				p.rowHeight = int16(binary.LittleEndian.Uint16(s.operand))
			case sprmTDefTable, sprmTDefTable10:
				p.cells = parseTableDef(s.operand)
			case sprmTVertMerge:
				applyVertMerge(p.cells, s.operand)
			}
		}
	}

	for _, s := range parseSprms(grpprl) {
		if s.code != sprmPHugePapx {
			apply([]sprm{s})
			continue
		}
		huge, ok := hugeGrpprl(data, binary.LittleEndian.Uint32(s.operand))
		if !ok {
			p.hugePapxLost = true
			continue
		}
		apply(parseSprms(huge))
	}

	if p.inTable && !depthSet {
		p.depth = 1
	}
	if p.depth > 0 {
		p.inTable = true
	}
	return p
}

// hugeGrpprl returns the grpprl of the PrcData at offset in the Data
// stream: a 2-byte size followed by that many bytes of modifiers.
func hugeGrpprl(data []byte, offset uint32) ([]byte, bool) {
	start := uint64(offset) + 2
	if start > uint64(len(data)) {
		return nil, false
	}
	end := start + uint64(binary.LittleEndian.Uint16(data[offset:]))
	if end > uint64(len(data)) {
		return nil, false
	}
	return data[start:end], true
}

// parseTableDef reads the cell edges and TC80 merge flags of a
// sprmTDefTable operand.
func parseTableDef(op []byte) []cellDef {
	if len(op) < 1 {
		return nil
	}
	itcMac := int(op[0])
	edges := 1 + 2*(itcMac+1)
	if len(op) < edges {
		return nil
	}

	cells := make([]cellDef, itcMac)
	for i := range cells {
		left := int16(binary.LittleEndian.Uint16(op[1+2*i:]))
		right := int16(binary.LittleEndian.Uint16(op[1+2*(i+1):]))
		cells[i].width = int(right) - int(left)

		// TC80 entries may be omitted for trailing cells.
		tc := edges + tc80Size*i
		if tc+2 > len(op) {
			continue
		}
		flags := binary.LittleEndian.Uint16(op[tc:])
		switch {
		case flags&tcFVertRestart != 0:
			cells[i].merge = mergeRestart
		case flags&tcFVertMerge != 0:
			cells[i].merge = mergeContinue
		}
	}
	return cells
}

// applyVertMerge applies a sprmTVertMerge operand: cell index, merge value.
func applyVertMerge(cells []cellDef, op []byte) {
	if len(op) < 2 || int(op[0]) >= len(cells) {
		return
	}
	switch op[1] {
	case vertMergeContinue:
		cells[op[0]].merge = mergeContinue
	case vertMergeRestart:
		cells[op[0]].merge = mergeRestart
	default:
		cells[op[0]].merge = mergeNone
	}
}
