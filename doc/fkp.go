package doc

import (
	"encoding/binary"
	"fmt"
	"sort"
)

const (
	fkpPageSize = 512
	bxPapSize   = 13 // BxPap: bOffset + 12-byte paragraph height
	pnMask      = 0x3FFFFF
)

// papxRun is the paragraph property run of one FKP entry: paragraphs whose
// marks lie in [fcStart, fcEnd) share grpprl.
type papxRun struct {
	fcStart uint32
	fcEnd   uint32
	grpprl  []byte
}

// papxIndex finds paragraph properties by stream offset.
type papxIndex []papxRun

// lookup returns the property run containing fc, or nil.
func (idx papxIndex) lookup(fc uint32) []byte {
	i := sort.Search(len(idx), func(i int) bool { return idx[i].fcEnd > fc })
	if i < len(idx) && idx[i].fcStart <= fc {
		return idx[i].grpprl
	}
	return nil
}

// parsePapx reads the paragraph bin table from the table stream and every
// PAPX FKP page it references in the WordDocument stream.
func parsePapx(wordDoc, table []byte, fcPlcf, lcbPlcf uint32) (papxIndex, error) {
	end := uint64(fcPlcf) + uint64(lcbPlcf)
	if lcbPlcf < 8 || end > uint64(len(table)) {
		return nil, fmt.Errorf("%w: paragraph bin table outside table stream", ErrCorrupt)
	}
	plc := table[fcPlcf:end]

	n := (len(plc) - 4) / 8
	var idx papxIndex
	for i := 0; i < n; i++ {
		pn := binary.LittleEndian.Uint32(plc[(n+1)*4+i*4:]) & pnMask
		runs, err := parseFKP(wordDoc, pn)
		if err != nil {
			return nil, err
		}
		idx = append(idx, runs...)
	}

	sort.SliceStable(idx, func(a, b int) bool { return idx[a].fcStart < idx[b].fcStart })
	return idx, nil
}

// parseFKP reads one 512-byte PAPX formatted disk page.
func parseFKP(wordDoc []byte, pn uint32) ([]papxRun, error) {
	start := uint64(pn) * fkpPageSize
	if start+fkpPageSize > uint64(len(wordDoc)) {
		return nil, fmt.Errorf("%w: FKP page %d outside WordDocument stream", ErrCorrupt, pn)
	}
	page := wordDoc[start : start+fkpPageSize]

	crun := int(page[fkpPageSize-1])
	if 4*(crun+1)+bxPapSize*crun > fkpPageSize-1 {
		return nil, fmt.Errorf("%w: FKP page %d claims %d runs", ErrCorrupt, pn, crun)
	}

	runs := make([]papxRun, 0, crun)
	for i := 0; i < crun; i++ {
		run := papxRun{
			fcStart: binary.LittleEndian.Uint32(page[4*i:]),
			fcEnd:   binary.LittleEndian.Uint32(page[4*(i+1):]),
		}

		bOffset := int(page[4*(crun+1)+bxPapSize*i]) * 2
		if bOffset != 0 {
			grpprl, err := papxInFKP(page, bOffset)
			if err != nil {
				return nil, fmt.Errorf("FKP page %d run %d: %w", pn, i, err)
			}
			run.grpprl = grpprl
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// papxInFKP returns the grpprl of the PapxInFkp at off, without the style index.
func papxInFKP(page []byte, off int) ([]byte, error) {
	if off >= fkpPageSize-1 {
		return nil, fmt.Errorf("%w: property offset %d", ErrCorrupt, off)
	}

	var data []byte
	if cb := int(page[off]); cb != 0 {
		if off+2*cb > fkpPageSize {
			return nil, fmt.Errorf("%w: property size %d", ErrCorrupt, cb)
		}
		data = page[off+1 : off+2*cb]
	} else {
		cb = 2 * int(page[off+1])
		if off+2+cb > fkpPageSize {
			return nil, fmt.Errorf("%w: property size %d", ErrCorrupt, cb)
		}
		data = page[off+2 : off+2+cb]
	}

	// istd
	if len(data) < 2 {
		return nil, nil
	}
	return data[2:], nil
}
