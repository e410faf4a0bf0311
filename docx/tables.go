package docx

import (
	"strconv"
	"strings"

	"github.com/boyonger/word-extractor/model"
	"github.com/boyonger/word-extractor/tables"
)

const stageParse = "parse"

// Table is a parsed <w:tbl>. It implements tables.Source with measures in
// twips, the unit of the source document.
type Table struct {
	rows     []tableRow
	grid     []float64
	hasGrid  bool
	warnings []model.Warning
}

type tableRow struct {
	height     float64
	gridBefore int
	cells      []tables.RawCell
}

// NumRows implements tables.Source.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCells implements tables.Source.
func (t *Table) NumCells(row int) int { return len(t.rows[row].cells) }

// Cell implements tables.Source.
func (t *Table) Cell(row, col int) tables.RawCell { return t.rows[row].cells[col] }

// RowHeight implements tables.Source.
func (t *Table) RowHeight(row int) float64 { return t.rows[row].height }

// GridWidths implements tables.Source. The grid is reported only when the
// table declares at least one grid column.
func (t *Table) GridWidths() ([]float64, bool) {
	return t.grid, t.hasGrid
}

// GridBefore implements tables.Source.
func (t *Table) GridBefore(row int) int { return t.rows[row].gridBefore }

// Warnings returns the anomalies found while reading the table markup.
// Table is left unset; rows and columns are 0-indexed.
func (t *Table) Warnings() []model.Warning { return t.warnings }

// newTable converts a decoded table into a Table.
func newTable(tbl *tableXML) *Table {
	t := &Table{}

	if tbl.Grid != nil && len(tbl.Grid.Cols) > 0 {
		t.hasGrid = true
		t.grid = make([]float64, len(tbl.Grid.Cols))
		for i, col := range tbl.Grid.Cols {
			t.grid[i] = parseMeasure(col.W)
		}
	}

	tableWidth := 0.0
	if w := tbl.Properties.Width; w != nil && (w.Type == "dxa" || w.Type == "") {
		tableWidth = parseMeasure(w.W)
	}

	t.rows = make([]tableRow, 0, len(tbl.Rows))
	for r, row := range tbl.Rows {
		parsed := tableRow{cells: make([]tables.RawCell, 0, len(row.Cells))}
		if h := row.Properties.Height; h != nil {
			parsed.height = parseMeasure(h.Val)
		}
		if gb := row.Properties.GridBefore; gb != nil {
			if n, err := strconv.Atoi(gb.Val); err == nil && n > 0 {
				parsed.gridBefore = n
			}
		}
		for c := range row.Cells {
			cell, ok := parseCell(&row.Cells[c], tableWidth)
			if !ok {
				t.warnings = append(t.warnings, model.NewWarning(stageParse,
					"unknown vMerge value %q, cell treated as unmerged", row.Cells[c].Properties.VMerge.Val).At(r, c))
			}
			parsed.cells = append(parsed.cells, cell)
		}
		t.rows = append(t.rows, parsed)
	}

	return t
}

// parseCell reads the geometry-relevant properties and text of a cell. It
// reports false when the vMerge value is not recognised.
func parseCell(cell *tableCellXML, tableWidth float64) (tables.RawCell, bool) {
	props := cell.Properties
	raw := tables.RawCell{GridSpan: 1}

	if props.Width != nil {
		raw.Width = parseWidth(props.Width.W, props.Width.Type, tableWidth)
	}

	if props.GridSpan != nil {
		if span, err := strconv.Atoi(props.GridSpan.Val); err == nil && span > 0 {
			raw.GridSpan = span
		}
	}

	known := true
	if props.VMerge != nil {
		switch props.VMerge.Val {
		case "restart":
			raw.Merge = tables.MergeRestart
		case "", "continue":
			raw.Merge = tables.MergeContinue
		default:
			known = false
		}
	}

	var parts []string
	collectText(cell.Blocks, &parts)
	raw.Text = strings.Join(parts, "\n")

	return raw, known
}

// collectText appends the non-empty paragraph texts of blocks in order.
// Nested tables are flattened row by row into the enclosing cell.
func collectText(blocks []blockXML, parts *[]string) {
	for _, b := range blocks {
		switch {
		case b.Paragraph != nil:
			if b.Paragraph.Text != "" {
				*parts = append(*parts, b.Paragraph.Text)
			}
		case b.Table != nil:
			for _, row := range b.Table.Rows {
				for _, cell := range row.Cells {
					collectText(cell.Blocks, parts)
				}
			}
		}
	}
}

// parseWidth parses a width value that could be in twips or percent.
// Percentages resolve against the table width and yield zero when the
// table width is unknown.
func parseWidth(value, widthType string, tableWidth float64) float64 {
	switch widthType {
	case "pct":
		if strings.HasSuffix(value, "%") {
			pct, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
			if err != nil {
				return 0
			}
			return tableWidth * pct / 100
		}
		// fiftieths of a percent
		return tableWidth * parseMeasure(value) / 5000
	case "auto", "nil":
		return 0
	default:
		return parseMeasure(value)
	}
}

// parseMeasure parses a numeric attribute, returning zero when it is
// missing or malformed.
func parseMeasure(s string) float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return val
}
