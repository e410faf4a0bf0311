package tables

import (
	"log/slog"
	"math"

	"github.com/boyonger/word-extractor/internal/logging"
	"github.com/boyonger/word-extractor/model"
)

const stageGeometry = "geometry"

// Builder computes absolute cell geometry for tables read from a Source.
// A Builder holds no per-table state and may be shared between goroutines.
type Builder struct {
	config Config
	logger *slog.Logger
}

// NewBuilder creates a builder with the given configuration.
// A nil logger discards log output.
func NewBuilder(config Config, logger *slog.Logger) *Builder {
	return &Builder{
		config: config,
		logger: logging.Module(logger, "tables"),
	}
}

// Config returns the builder's configuration.
func (b *Builder) Config() Config {
	return b.config
}

// Reconstruct builds the table geometry and assigns grid indices.
func (b *Builder) Reconstruct(src Source) (*model.Table, []model.Warning) {
	table, warnings := b.Build(src)
	for _, w := range AssignGrid(table, b.config.Tolerance) {
		b.logWarning(w)
		warnings = append(warnings, w)
	}
	return table, warnings
}

// Build walks the rows of src in order and emits one cell per non-absorbed
// source cell with its absolute position and extent. Grid indices are left
// unset; see AssignGrid.
func (b *Builder) Build(src Source) (*model.Table, []model.Warning) {
	var warnings []model.Warning
	warn := func(w model.Warning) {
		b.logWarning(w)
		warnings = append(warnings, w)
	}

	lay := b.resolve(src, warn)
	table := &model.Table{}

	y := 0.0
	for r := range lay.cells {
		x := 0.0
		height := lay.heights[r]
		for c, cell := range lay.cells[r] {
			width := lay.widths[r][c]
			switch cell.Merge {
			case MergeContinue:
				// absorbed into the anchor above
			case MergeRestart:
				table.Cells = append(table.Cells, b.newCell(cell.Text, x, y, width, height+lay.continuedHeight(r, c)))
			default:
				table.Cells = append(table.Cells, b.newCell(cell.Text, x, y, width, height))
			}
			x += width
		}
		y += height
		if r == len(lay.cells)-1 {
			table.Width = x
			table.Height = y
		}
	}

	for r := range lay.cells {
		for c, cell := range lay.cells[r] {
			if cell.Merge == MergeContinue && !lay.absorbed[r][c] {
				warn(model.NewWarning(stageGeometry, "continuation cell has no anchor above it and was dropped").At(r, c))
			}
		}
	}

	b.logger.Debug("table geometry built",
		"rows", len(lay.cells),
		"cells", len(table.Cells),
		"width", table.Width,
		"height", table.Height)

	return table, warnings
}

func (b *Builder) newCell(text string, x, y, width, height float64) model.Cell {
	return model.Cell{
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		Text:     text,
		FontSize: b.config.FontSize,
		RowSpan:  1,
		ColSpan:  1,
	}
}

// resolve reads every row of src once and fixes the row heights and cell
// widths the rest of the build works with.
func (b *Builder) resolve(src Source, warn func(model.Warning)) *layout {
	rows := src.NumRows()
	lay := &layout{
		cells:    make([][]RawCell, rows),
		heights:  make([]float64, rows),
		widths:   make([][]float64, rows),
		offsets:  make([][]float64, rows),
		absorbed: make([][]bool, rows),
	}

	grid, hasGrid := src.GridWidths()
	if !hasGrid {
		b.logger.Debug("table has no column grid, using per-cell widths")
	}

	for r := 0; r < rows; r++ {
		lay.heights[r] = b.rowHeight(src.RowHeight(r), r, warn)

		n := src.NumCells(r)
		lay.cells[r] = make([]RawCell, n)
		lay.widths[r] = make([]float64, n)
		lay.offsets[r] = make([]float64, n)
		lay.absorbed[r] = make([]bool, n)

		x := 0.0
		gridIdx := 0
		if hasGrid {
			gridIdx, x = b.skipGrid(grid, src.GridBefore(r), r, warn)
		}
		for c := 0; c < n; c++ {
			cell := src.Cell(r, c)
			span := cell.GridSpan
			if span < 1 {
				span = 1
			}

			width := 0.0
			if hasGrid {
				width = b.gridWidth(grid, gridIdx, span, r, c, warn)
			}
			gridIdx += span
			if width <= 0 {
				width = b.cellWidth(cell.Width, r, c, warn)
			}

			lay.cells[r][c] = cell
			lay.widths[r][c] = width
			lay.offsets[r][c] = x
			x += width
		}
	}

	return lay
}

// rowHeight resolves an explicit row height. Zero selects the default,
// negative values are taken as their absolute value.
func (b *Builder) rowHeight(raw float64, row int, warn func(model.Warning)) float64 {
	h := b.config.scale(raw)
	if h < 0 {
		warn(model.NewWarning(stageGeometry, "negative row height %g corrected to %g", h, math.Abs(h)).At(row, -1))
		h = math.Abs(h)
	}
	if h == 0 {
		return b.config.DefaultHeight
	}
	return h
}

// skipGrid resolves the columns a row leaves empty before its first cell.
// It returns the grid index of the first cell and its x offset.
func (b *Builder) skipGrid(grid []float64, before, row int, warn func(model.Warning)) (int, float64) {
	if before <= 0 {
		return 0, 0
	}
	if before > len(grid) {
		warn(model.NewWarning(stageGeometry,
			"row skips %d grid columns but only %d are declared", before, len(grid)).At(row, -1))
		before = len(grid)
	}
	x := 0.0
	for _, w := range grid[:before] {
		x += math.Abs(b.config.scale(w))
	}
	return before, x
}

// gridWidth sums the declared grid columns covered by a cell. It returns
// 0 when the span runs past the declared grid.
func (b *Builder) gridWidth(grid []float64, start, span, row, col int, warn func(model.Warning)) float64 {
	if start+span > len(grid) {
		warn(model.NewWarning(stageGeometry,
			"cell spans grid columns %d-%d but only %d are declared, using cell width",
			start, start+span-1, len(grid)).At(row, col))
		return 0
	}
	width := 0.0
	for _, w := range grid[start : start+span] {
		width += math.Abs(b.config.scale(w))
	}
	return width
}

// cellWidth resolves a cell's own declared width, substituting the default
// width when it is absent.
func (b *Builder) cellWidth(raw float64, row, col int, warn func(model.Warning)) float64 {
	w := b.config.scale(raw)
	if w < 0 {
		warn(model.NewWarning(stageGeometry, "negative cell width %g corrected to %g", w, math.Abs(w)).At(row, col))
		w = math.Abs(w)
	}
	if w == 0 {
		return b.config.DefaultWidth
	}
	return w
}

func (b *Builder) logWarning(w model.Warning) {
	b.logger.Warn(w.Message, "stage", w.Stage, "row", w.Row, "col", w.Col)
}
