package doc

import (
	"encoding/binary"
	"unicode/utf16"
)

// testPara is one paragraph of a synthetic document: its text, the mark
// ending it and the property modifiers of that mark.
type testPara struct {
	text   string
	mark   rune
	grpprl []byte
}

func para(text string, grpprl ...[]byte) testPara {
	return testPara{text: text, mark: chParaEnd, grpprl: concat(grpprl...)}
}

func cell(text string, grpprl ...[]byte) testPara {
	return testPara{text: text, mark: chCellMark, grpprl: concat(grpprl...)}
}

func rowEnd(grpprl ...[]byte) testPara {
	return testPara{mark: chCellMark, grpprl: concat(grpprl...)}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func u16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }

func u32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

func inTable() []byte { return []byte{0x16, 0x24, 0x01} }

func ttp() []byte { return []byte{0x17, 0x24, 0x01} }

func itap(depth int32) []byte { return concat(u16(sprmPItap), u32(uint32(depth))) }

func innerTtp() []byte { return []byte{0x4C, 0x24, 0x01} }

func rowHeight(h int16) []byte { return concat(u16(sprmTDyaRowHeight), u16(uint16(h))) }

// tableDef encodes a sprmTDefTable with the given cell edges. flags holds
// the TC80 flags of the leading cells.
func tableDef(edges []int16, flags ...uint16) []byte {
	rest := []byte{byte(len(edges) - 1)}
	for _, e := range edges {
		rest = append(rest, u16(uint16(e))...)
	}
	for _, f := range flags {
		tc := make([]byte, tc80Size)
		binary.LittleEndian.PutUint16(tc, f)
		rest = append(rest, tc...)
	}
	return concat(u16(sprmTDefTable), u16(uint16(len(rest)+1)), rest)
}

func vertMerge(itc, value byte) []byte {
	return concat(u16(sprmTVertMerge), []byte{2, itc, value})
}

const (
	testFKPPage    = 2
	testTextOffset = 3 * fkpPageSize
)

// buildStreams lays out a WordDocument stream (FIB, one PAPX FKP page,
// then the text as a single piece) and its 0Table stream.
func buildStreams(paras []testPara, compressed bool) (wordDoc, table []byte) {
	var units []uint16
	var bounds []int // character index just past each paragraph mark
	for _, p := range paras {
		units = append(units, utf16.Encode([]rune(p.text))...)
		units = append(units, uint16(p.mark))
		bounds = append(bounds, len(units))
	}

	charSize := 2
	if compressed {
		charSize = 1
	}
	fcOf := func(i int) uint32 { return uint32(testTextOffset + i*charSize) }

	wordDoc = make([]byte, testTextOffset+len(units)*charSize)
	for i, u := range units {
		if compressed {
			wordDoc[testTextOffset+i] = byte(u)
		} else {
			binary.LittleEndian.PutUint16(wordDoc[testTextOffset+2*i:], u)
		}
	}

	// FKP: one run per paragraph.
	page := wordDoc[testFKPPage*fkpPageSize : (testFKPPage+1)*fkpPageSize]
	crun := len(paras)
	page[fkpPageSize-1] = byte(crun)
	start := 0
	for i, end := range bounds {
		binary.LittleEndian.PutUint32(page[4*i:], fcOf(start))
		binary.LittleEndian.PutUint32(page[4*(i+1):], fcOf(end))
		start = end
	}
	free := fkpPageSize - 1
	for i, p := range paras {
		if len(p.grpprl) == 0 {
			continue
		}
		data := append([]byte{0, 0}, p.grpprl...) // istd 0
		if len(data)%2 != 0 {
			data = append(data, 0)
		}
		free -= len(data) + 2
		free &^= 1
		page[free] = 0
		page[free+1] = byte(len(data) / 2)
		copy(page[free+2:], data)
		page[4*(crun+1)+bxPapSize*i] = byte(free / 2)
	}

	// Table stream: CLX with one piece, then the paragraph bin table.
	fc := uint32(testTextOffset)
	if compressed {
		fc = fc*2 | fcCompressed
	}
	plcPcd := concat(u32(0), u32(uint32(len(units))), u16(0), u32(fc), u16(0))
	clx := concat([]byte{clxPcdt}, u32(uint32(len(plcPcd))), plcPcd)
	plcBte := concat(u32(fcOf(0)), u32(fcOf(len(units))), u32(testFKPPage))
	table = concat(clx, plcBte)

	// FIB
	binary.LittleEndian.PutUint16(wordDoc[0:], fibMagic)
	binary.LittleEndian.PutUint16(wordDoc[2:], nFibWord97)
	binary.LittleEndian.PutUint16(wordDoc[0x20:], 14)
	binary.LittleEndian.PutUint16(wordDoc[0x3E:], 22)
	binary.LittleEndian.PutUint32(wordDoc[0x40+4*ccpTextIndex:], uint32(len(units)))
	binary.LittleEndian.PutUint16(wordDoc[0x98:], 0x5D)
	binary.LittleEndian.PutUint32(wordDoc[0x9A+8*plcfBtePapxIndex:], uint32(len(clx)))
	binary.LittleEndian.PutUint32(wordDoc[0x9A+8*plcfBtePapxIndex+4:], uint32(len(plcBte)))
	binary.LittleEndian.PutUint32(wordDoc[0x9A+8*clxIndex:], 0)
	binary.LittleEndian.PutUint32(wordDoc[0x9A+8*clxIndex+4:], uint32(len(clx)))

	return wordDoc, table
}

// parseTestDocument builds and parses a synthetic document.
func parseTestDocument(paras []testPara, compressed bool) (*body, error) {
	wordDoc, table := buildStreams(paras, compressed)
	return parseStreams(wordDoc, map[string][]byte{"0Table": table})
}

// hugePapx encodes a sprmPHugePapx pointing at offset in the Data stream.
func hugePapx(offset uint32) []byte { return concat(u16(sprmPHugePapx), u32(offset)) }

// prcData encodes a grpprl as stored in the Data stream.
func prcData(grpprl []byte) []byte { return concat(u16(uint16(len(grpprl))), grpprl) }
