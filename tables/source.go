package tables

// MergeState is the vertical merge role of a raw cell.
type MergeState int

const (
	// MergeNone marks a cell that is not vertically merged.
	MergeNone MergeState = iota
	// MergeRestart marks the anchor of a vertical merge; it holds the content.
	MergeRestart
	// MergeContinue marks a placeholder absorbed into the anchor above it.
	MergeContinue
)

// String returns the string representation of the merge state.
func (m MergeState) String() string {
	switch m {
	case MergeRestart:
		return "restart"
	case MergeContinue:
		return "continue"
	default:
		return "none"
	}
}

// RawCell is one cell as enumerated by a Source, before any geometry is resolved.
type RawCell struct {
	// Width is the cell's own declared width; zero or negative when absent.
	Width float64

	// GridSpan is the number of declared grid columns the cell covers.
	// Values below 1 are treated as 1.
	GridSpan int

	Merge MergeState
	Text  string
}

// Source enumerates the rows and cells of one table. Both document
// formats implement it; the reconstruction code depends on nothing else.
type Source interface {
	// NumRows returns the number of rows.
	NumRows() int

	// NumCells returns the number of cells in the given row.
	NumCells(row int) int

	// Cell returns the cell at the given row and column index.
	Cell(row, col int) RawCell

	// RowHeight returns the explicit height of a row, zero when absent.
	// Negative values are passed through unchanged.
	RowHeight(row int) float64

	// GridWidths returns the declared column grid widths. The boolean is
	// false when the format or the table carries no grid.
	GridWidths() ([]float64, bool)

	// GridBefore returns the number of grid columns left empty before the
	// first cell of a row.
	GridBefore(row int) int
}

// RawRow is one row of a RawTable.
type RawRow struct {
	Height     float64
	GridBefore int
	Cells      []RawCell
}

// RawTable is an in-memory Source.
type RawTable struct {
	Rows []RawRow
	Grid []float64 // nil when the table has no column grid
}

// NumRows implements Source.
func (t *RawTable) NumRows() int { return len(t.Rows) }

// NumCells implements Source.
func (t *RawTable) NumCells(row int) int { return len(t.Rows[row].Cells) }

// Cell implements Source.
func (t *RawTable) Cell(row, col int) RawCell { return t.Rows[row].Cells[col] }

// RowHeight implements Source.
func (t *RawTable) RowHeight(row int) float64 { return t.Rows[row].Height }

// GridWidths implements Source.
func (t *RawTable) GridWidths() ([]float64, bool) {
	return t.Grid, t.Grid != nil
}

// GridBefore implements Source.
func (t *RawTable) GridBefore(row int) int { return t.Rows[row].GridBefore }
