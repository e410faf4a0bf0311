package tables

// layout holds the resolved measurements of one table, indexed [row][col].
type layout struct {
	cells    [][]RawCell
	heights  []float64
	widths   [][]float64
	offsets  [][]float64 // left edge of each cell within its row
	absorbed [][]bool    // continuation cells claimed by an anchor
}

// continuedHeight returns the extra height a merge anchor at (row, col)
// gains from the rows below it. Each following row must hold a
// continuation cell with exactly the anchor's width and left offset;
// the first row without one ends the merge.
//
// The values compared are resolved source measurements, not bucketed
// coordinates, so exact equality is intended. The loop only moves down,
// so it ends within the table's row count.
func (l *layout) continuedHeight(row, col int) float64 {
	width := l.widths[row][col]
	offset := l.offsets[row][col]

	total := 0.0
	for r := row + 1; r < len(l.cells); r++ {
		c := l.findContinuation(r, offset, width)
		if c < 0 {
			break
		}
		l.absorbed[r][c] = true
		total += l.heights[r]
	}
	return total
}

// findContinuation returns the index of the continuation cell in row that
// sits at offset with the given width, or -1.
func (l *layout) findContinuation(row int, offset, width float64) int {
	for c, cell := range l.cells[row] {
		if cell.Merge != MergeContinue {
			continue
		}
		if l.widths[row][c] == width && l.offsets[row][c] == offset {
			return c
		}
	}
	return -1
}
