package doc

import (
	"encoding/binary"
	"fmt"
)

// File information block constants.
const (
	fibMagic = 0xA5EC

	// nFib of Word 97, the oldest layout with a piece table in a table stream.
	nFibWord97 = 0x00C1

	flagEncrypted    = 0x0100
	flagWhichTblStm  = 0x0200
	fibBaseSize      = 0x20
	ccpTextIndex     = 3  // in fibRgLw
	plcfBtePapxIndex = 13 // in fibRgFcLcb
	clxIndex         = 33 // in fibRgFcLcb
)

// fib holds the fields of the file information block this package reads.
type fib struct {
	nFib    uint16
	flags   uint16
	ccpText uint32

	fcPlcfBtePapx  uint32
	lcbPlcfBtePapx uint32
	fcClx          uint32
	lcbClx         uint32
}

// tableStream returns the name of the table stream the document uses.
func (f *fib) tableStream() string {
	if f.flags&flagWhichTblStm != 0 {
		return "1Table"
	}
	return "0Table"
}

// parseFIB reads the file information block at the start of the
// WordDocument stream.
func parseFIB(data []byte) (*fib, error) {
	if len(data) < fibBaseSize+2 {
		return nil, fmt.Errorf("%w: stream too short for a file information block", ErrNotWordDocument)
	}
	if magic := binary.LittleEndian.Uint16(data[0:2]); magic != fibMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%04X", ErrNotWordDocument, magic)
	}

	f := &fib{
		nFib:  binary.LittleEndian.Uint16(data[2:4]),
		flags: binary.LittleEndian.Uint16(data[0x0A:0x0C]),
	}
	if f.nFib < nFibWord97 {
		return nil, fmt.Errorf("%w: nFib 0x%04X", ErrUnsupportedVersion, f.nFib)
	}
	if f.flags&flagEncrypted != 0 {
		return nil, ErrEncrypted
	}

	// fibRgW, fibRgLw and fibRgFcLcb each follow a count.
	pos := fibBaseSize
	csw := int(binary.LittleEndian.Uint16(data[pos:]))
	pos += 2 + 2*csw

	if pos+2 > len(data) {
		return nil, fmt.Errorf("%w: truncated file information block", ErrCorrupt)
	}
	cslw := int(binary.LittleEndian.Uint16(data[pos:]))
	pos += 2
	if cslw <= ccpTextIndex || pos+4*cslw+2 > len(data) {
		return nil, fmt.Errorf("%w: truncated file information block", ErrCorrupt)
	}
	f.ccpText = binary.LittleEndian.Uint32(data[pos+4*ccpTextIndex:])
	pos += 4 * cslw

	cbRgFcLcb := int(binary.LittleEndian.Uint16(data[pos:]))
	pos += 2
	if cbRgFcLcb <= clxIndex || pos+8*cbRgFcLcb > len(data) {
		return nil, fmt.Errorf("%w: truncated file information block", ErrCorrupt)
	}
	pair := func(i int) (uint32, uint32) {
		off := pos + 8*i
		return binary.LittleEndian.Uint32(data[off:]), binary.LittleEndian.Uint32(data[off+4:])
	}
	f.fcPlcfBtePapx, f.lcbPlcfBtePapx = pair(plcfBtePapxIndex)
	f.fcClx, f.lcbClx = pair(clxIndex)

	return f, nil
}
