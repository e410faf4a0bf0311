package doc

import (
	"encoding/binary"
	"fmt"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

const (
	clxPrc  = 0x01
	clxPcdt = 0x02

	pcdSize        = 8
	fcCompressed   = 0x40000000
	fcOffsetMask   = 0x3FFFFFFF
	maxPieceLength = 1 << 28
)

// piece maps a range of character positions to bytes of the WordDocument stream.
type piece struct {
	cpStart    uint32
	cpEnd      uint32
	offset     uint32 // byte offset in the WordDocument stream
	compressed bool   // one cp1252 byte per character instead of UTF-16LE
}

// char is one decoded character with the stream offset it was read from.
// Paragraph properties are looked up by that offset.
type char struct {
	r  rune
	fc uint32
}

// parsePieceTable reads the piece descriptors from the CLX in the table stream.
func parsePieceTable(table []byte, fcClx, lcbClx uint32) ([]piece, error) {
	end := uint64(fcClx) + uint64(lcbClx)
	if lcbClx == 0 || end > uint64(len(table)) {
		return nil, fmt.Errorf("%w: piece table outside table stream", ErrCorrupt)
	}
	clx := table[fcClx:end]

	// Skip Prc entries to reach the Pcdt.
	pos := 0
	for pos < len(clx) && clx[pos] == clxPrc {
		if pos+3 > len(clx) {
			return nil, fmt.Errorf("%w: truncated property modifier", ErrCorrupt)
		}
		pos += 3 + int(binary.LittleEndian.Uint16(clx[pos+1:]))
	}
	if pos+5 > len(clx) || clx[pos] != clxPcdt {
		return nil, fmt.Errorf("%w: piece table descriptor not found", ErrCorrupt)
	}

	lcb := int(binary.LittleEndian.Uint32(clx[pos+1:]))
	pos += 5
	if lcb < 4+4+pcdSize || pos+lcb > len(clx) {
		return nil, fmt.Errorf("%w: bad piece table size %d", ErrCorrupt, lcb)
	}
	plc := clx[pos : pos+lcb]

	n := (lcb - 4) / (4 + pcdSize)
	cpArraySize := (n + 1) * 4
	pieces := make([]piece, 0, n)
	for i := 0; i < n; i++ {
		cpStart := binary.LittleEndian.Uint32(plc[i*4:])
		cpEnd := binary.LittleEndian.Uint32(plc[(i+1)*4:])
		if cpEnd < cpStart || cpEnd-cpStart > maxPieceLength {
			return nil, fmt.Errorf("%w: piece %d spans %d..%d", ErrCorrupt, i, cpStart, cpEnd)
		}

		fc := binary.LittleEndian.Uint32(plc[cpArraySize+i*pcdSize+2:])
		p := piece{cpStart: cpStart, cpEnd: cpEnd, offset: fc & fcOffsetMask}
		if fc&fcCompressed != 0 {
			p.compressed = true
			p.offset /= 2
		}
		pieces = append(pieces, p)
	}
	return pieces, nil
}

// decodeText returns the main document characters, the first ccpText
// character positions covered by pieces.
func decodeText(wordDoc []byte, pieces []piece, ccpText uint32) ([]char, error) {
	chars := make([]char, 0, ccpText)

	for _, p := range pieces {
		if p.cpStart >= ccpText {
			break
		}
		count := min(p.cpEnd, ccpText) - p.cpStart

		if p.compressed {
			end := uint64(p.offset) + uint64(count)
			if end > uint64(len(wordDoc)) {
				return nil, fmt.Errorf("%w: text piece outside WordDocument stream", ErrCorrupt)
			}
			for i := uint32(0); i < count; i++ {
				fc := p.offset + i
				chars = append(chars, char{r: charmap.Windows1252.DecodeByte(wordDoc[fc]), fc: fc})
			}
			continue
		}

		end := uint64(p.offset) + 2*uint64(count)
		if end > uint64(len(wordDoc)) {
			return nil, fmt.Errorf("%w: text piece outside WordDocument stream", ErrCorrupt)
		}
		for i := uint32(0); i < count; i++ {
			fc := p.offset + 2*i
			u := rune(binary.LittleEndian.Uint16(wordDoc[fc:]))
			if utf16.IsSurrogate(u) && i+1 < count {
				next := rune(binary.LittleEndian.Uint16(wordDoc[fc+2:]))
				if r := utf16.DecodeRune(u, next); r != unicode.ReplacementChar {
					chars = append(chars, char{r: r, fc: fc})
					i++
					continue
				}
			}
			chars = append(chars, char{r: u, fc: fc})
		}
	}

	return chars, nil
}
