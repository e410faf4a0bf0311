package model

// Table represents one source table as positioned cells and its bounding box
type Table struct {
	Cells  []Cell  `json:"cells"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RowCount returns the number of logical grid rows covered by the cells
func (t *Table) RowCount() int {
	count := 0
	for _, cell := range t.Cells {
		if end := cell.Row + cell.RowSpan; end > count {
			count = end
		}
	}
	return count
}

// ColCount returns the number of logical grid columns covered by the cells
func (t *Table) ColCount() int {
	count := 0
	for _, cell := range t.Cells {
		if end := cell.Col + cell.ColSpan; end > count {
			count = end
		}
	}
	return count
}

// CellAt returns the cell covering the given grid position (0-indexed),
// taking row and column spans into account. It returns nil when no cell
// covers the position.
func (t *Table) CellAt(row, col int) *Cell {
	for i := range t.Cells {
		c := &t.Cells[i]
		if row >= c.Row && row < c.Row+c.RowSpan && col >= c.Col && col < c.Col+c.ColSpan {
			return c
		}
	}
	return nil
}

// Cell represents a table cell.
//
// X, Y, Width and Height are absolute within the table, with the origin at
// the table's top-left corner and Y growing downwards. Row, Col, RowSpan
// and ColSpan are assigned after every cell of the table is known.
type Cell struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	RowSpan  int     `json:"rowspan"`
	ColSpan  int     `json:"colspan"`
}

// Right returns the right edge X coordinate
func (c Cell) Right() float64 {
	return c.X + c.Width
}

// Bottom returns the bottom edge Y coordinate
func (c Cell) Bottom() float64 {
	return c.Y + c.Height
}
