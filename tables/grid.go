package tables

import (
	"sort"

	"github.com/boyonger/word-extractor/model"
)

const stageGrid = "grid"

// AssignGrid sets Row, Col, RowSpan and ColSpan on every cell of table
// from the cells' absolute coordinates.
//
// All top/bottom edges form the row boundaries and all left/right edges
// the column boundaries, each sorted ascending with exact duplicates
// removed. A cell's indices are the positions of its edges in those lists,
// located with a binary search that accepts any boundary closer than
// tolerance. Spans that do not come out positive are clamped to 1.
//
// The search assumes boundaries lie more than twice the tolerance apart;
// closer boundaries that are not exact duplicates may bucket ambiguously.
func AssignGrid(table *model.Table, tolerance float64) []model.Warning {
	if table == nil || len(table.Cells) == 0 {
		return nil
	}

	rowBounds := make([]float64, 0, 2*len(table.Cells))
	colBounds := make([]float64, 0, 2*len(table.Cells))
	for _, cell := range table.Cells {
		rowBounds = append(rowBounds, cell.Y, cell.Bottom())
		colBounds = append(colBounds, cell.X, cell.Right())
	}
	rowBounds = uniqueSorted(rowBounds)
	colBounds = uniqueSorted(colBounds)

	var warnings []model.Warning
	for i := range table.Cells {
		cell := &table.Cells[i]

		top := searchBoundary(rowBounds, cell.Y, tolerance)
		bottom := searchBoundary(rowBounds, cell.Bottom(), tolerance)
		left := searchBoundary(colBounds, cell.X, tolerance)
		right := searchBoundary(colBounds, cell.Right(), tolerance)

		if top < 0 || bottom < 0 || left < 0 || right < 0 {
			warnings = append(warnings, model.NewWarning(stageGrid,
				"cell %d at (%g, %g) has an edge outside every grid boundary, indices clamped",
				i, cell.X, cell.Y))
		}

		cell.Row = max(top, 0)
		cell.Col = max(left, 0)
		cell.RowSpan = span(top, bottom)
		cell.ColSpan = span(left, right)
	}

	return warnings
}

// span returns end-start, or 1 when that is not positive.
func span(start, end int) int {
	if n := end - start; n > 0 {
		return n
	}
	return 1
}

// uniqueSorted sorts values ascending and drops exact duplicates in place.
func uniqueSorted(values []float64) []float64 {
	sort.Float64s(values)
	out := values[:0]
	for i, v := range values {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// searchBoundary returns the index of a boundary within tolerance of
// target, or -1. bounds must be sorted ascending.
func searchBoundary(bounds []float64, target, tolerance float64) int {
	lo, hi := 0, len(bounds)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		d := bounds[mid] - target
		switch {
		case d < tolerance && d > -tolerance:
			return mid
		case d > 0:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return -1
}
