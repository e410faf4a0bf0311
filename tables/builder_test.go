package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boyonger/word-extractor/model"
)

// cell is a helper for building raw cells in tests.
func cell(text string, width float64, merge MergeState) RawCell {
	return RawCell{Text: text, Width: width, Merge: merge}
}

func newTestBuilder() *Builder {
	return NewBuilder(DefaultConfig(), nil)
}

func TestBuild_SingleCell(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 500, Cells: []RawCell{cell("X", 1000, MergeNone)}},
	}}

	table, warnings := newTestBuilder().Reconstruct(src)
	assert.Empty(t, warnings)
	require.Len(t, table.Cells, 1)

	assert.Equal(t, model.Cell{
		X: 0, Y: 0, Width: 1000, Height: 500,
		Text: "X", FontSize: DefaultFontSize,
		Row: 0, Col: 0, RowSpan: 1, ColSpan: 1,
	}, table.Cells[0])
	assert.Equal(t, 1000.0, table.Width)
	assert.Equal(t, 500.0, table.Height)
}

func TestBuild_VerticalMerge(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 300, Cells: []RawCell{cell("anchor", 1000, MergeRestart)}},
		{Height: 400, Cells: []RawCell{cell("", 1000, MergeContinue)}},
	}}

	table, warnings := newTestBuilder().Build(src)
	assert.Empty(t, warnings)
	require.Len(t, table.Cells, 1, "continuation cells must not be emitted")

	anchor := table.Cells[0]
	assert.Equal(t, "anchor", anchor.Text)
	assert.Equal(t, 700.0, anchor.Height)
	assert.Equal(t, 700.0, table.Height)
	assert.Equal(t, 1000.0, table.Width)
}

func TestBuild_VerticalMergeAcrossThreeRows(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 300, Cells: []RawCell{cell("A", 1000, MergeRestart), cell("B", 1000, MergeNone)}},
		{Height: 400, Cells: []RawCell{cell("", 1000, MergeContinue), cell("D", 1000, MergeNone)}},
		{Height: 200, Cells: []RawCell{cell("", 1000, MergeContinue), cell("F", 1000, MergeNone)}},
	}}

	table, warnings := newTestBuilder().Reconstruct(src)
	assert.Empty(t, warnings)
	require.Len(t, table.Cells, 4)

	a, b, d, f := table.Cells[0], table.Cells[1], table.Cells[2], table.Cells[3]
	assert.Equal(t, 900.0, a.Height)
	assert.Equal(t, 3, a.RowSpan)
	assert.Equal(t, 0, a.Row)

	assert.Equal(t, [2]int{0, 1}, [2]int{b.Row, b.Col})
	assert.Equal(t, [2]int{1, 1}, [2]int{d.Row, d.Col})
	assert.Equal(t, [2]int{2, 1}, [2]int{f.Row, f.Col})
	assert.Equal(t, 1000.0, d.X, "continuation cells still advance x")
	assert.Equal(t, 300.0, d.Y)
	assert.Equal(t, 700.0, f.Y)
}

func TestBuild_MergeStopsAtMismatchedContinuation(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 300, Cells: []RawCell{cell("A", 1000, MergeRestart), cell("B", 1000, MergeNone)}},
		{Height: 400, Cells: []RawCell{cell("", 1000, MergeContinue), cell("D", 1000, MergeNone)}},
		// different width at the same offset: the merge ends above this row
		{Height: 200, Cells: []RawCell{cell("", 800, MergeContinue), cell("F", 1200, MergeNone)}},
	}}

	table, warnings := newTestBuilder().Build(src)
	require.Len(t, table.Cells, 4)
	assert.Equal(t, 700.0, table.Cells[0].Height)

	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Row)
	assert.Equal(t, 0, warnings[0].Col)
}

func TestBuild_MergeMatchesOnOffset(t *testing.T) {
	// the anchor sits in the second column; a continuation of the same
	// width in the first column must not be taken
	src := &RawTable{Rows: []RawRow{
		{Height: 300, Cells: []RawCell{cell("A", 1000, MergeNone), cell("B", 1000, MergeRestart)}},
		{Height: 400, Cells: []RawCell{cell("", 1000, MergeContinue), cell("D", 1000, MergeNone)}},
	}}

	table, warnings := newTestBuilder().Build(src)
	require.Len(t, table.Cells, 3)
	assert.Equal(t, 300.0, table.Cells[1].Height)
	require.Len(t, warnings, 1, "the unmatched continuation is reported")
}

func TestBuild_OrphanContinuation(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 300, Cells: []RawCell{cell("", 1000, MergeContinue), cell("B", 1000, MergeNone)}},
	}}

	table, warnings := newTestBuilder().Build(src)
	require.Len(t, table.Cells, 1)
	assert.Equal(t, 1000.0, table.Cells[0].X)
	require.Len(t, warnings, 1)
	assert.Equal(t, stageGeometry, warnings[0].Stage)
}

func TestBuild_HeightDefaults(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 0, Cells: []RawCell{cell("zero", 1000, MergeNone)}},
		{Height: -300, Cells: []RawCell{cell("negative", 1000, MergeNone)}},
	}}

	table, warnings := newTestBuilder().Build(src)
	require.Len(t, table.Cells, 2)
	assert.Equal(t, DefaultHeight, table.Cells[0].Height)
	assert.Equal(t, 300.0, table.Cells[1].Height)
	assert.Equal(t, DefaultHeight, table.Cells[1].Y)
	assert.Equal(t, DefaultHeight+300, table.Height)

	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Row)
	assert.Contains(t, warnings[0].Message, "negative row height")
}

func TestBuild_WidthDefaults(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 500, Cells: []RawCell{
			cell("absent", 0, MergeNone),
			cell("negative", -700, MergeNone),
			cell("given", 1500, MergeNone),
		}},
	}}

	table, warnings := newTestBuilder().Build(src)
	require.Len(t, table.Cells, 3)
	assert.Equal(t, DefaultWidth, table.Cells[0].Width)
	assert.Equal(t, 700.0, table.Cells[1].Width)
	assert.Equal(t, DefaultWidth, table.Cells[1].X)
	assert.Equal(t, DefaultWidth+700, table.Cells[2].X)
	assert.Equal(t, DefaultWidth+700+1500, table.Width)
	assert.Len(t, warnings, 1)
}

func TestBuild_GridWidths(t *testing.T) {
	src := &RawTable{
		Grid: []float64{1000, 1000},
		Rows: []RawRow{
			{Height: 500, Cells: []RawCell{{Text: "wide", GridSpan: 2, Width: 1}}},
			{Height: 500, Cells: []RawCell{{Text: "left"}, {Text: "right"}}},
		},
	}

	table, warnings := newTestBuilder().Reconstruct(src)
	assert.Empty(t, warnings)
	require.Len(t, table.Cells, 3)

	wide, left, right := table.Cells[0], table.Cells[1], table.Cells[2]
	assert.Equal(t, 2000.0, wide.Width, "grid widths win over the cell width")
	assert.Equal(t, [4]int{0, 0, 1, 2}, [4]int{wide.Row, wide.Col, wide.RowSpan, wide.ColSpan})
	assert.Equal(t, [4]int{1, 0, 1, 1}, [4]int{left.Row, left.Col, left.RowSpan, left.ColSpan})
	assert.Equal(t, [4]int{1, 1, 1, 1}, [4]int{right.Row, right.Col, right.RowSpan, right.ColSpan})
	assert.Equal(t, 2000.0, table.Width)
	assert.Equal(t, 1000.0, table.Height)
}

func TestBuild_GridBefore(t *testing.T) {
	src := &RawTable{
		Grid: []float64{1000, 3000},
		Rows: []RawRow{
			{Height: 300, Cells: []RawCell{{Text: "a"}, {Text: "tall", Merge: MergeRestart}}},
			{Height: 400, GridBefore: 1, Cells: []RawCell{{Merge: MergeContinue}}},
		},
	}

	table, warnings := newTestBuilder().Reconstruct(src)
	assert.Empty(t, warnings)
	require.Len(t, table.Cells, 2)

	tall := table.Cells[1]
	assert.Equal(t, 1000.0, tall.X)
	assert.Equal(t, 3000.0, tall.Width)
	assert.Equal(t, 700.0, tall.Height, "continuation after skipped columns still matches the anchor")
	assert.Equal(t, 4000.0, table.Width)
}

func TestBuild_GridBeforeOverflowAndNoGrid(t *testing.T) {
	overflow := &RawTable{
		Grid: []float64{1000, 1000},
		Rows: []RawRow{{Height: 500, GridBefore: 3, Cells: []RawCell{{Text: "x", Width: 600}}}},
	}

	table, warnings := newTestBuilder().Build(overflow)
	require.Len(t, table.Cells, 1)
	assert.Equal(t, 2000.0, table.Cells[0].X)
	assert.Equal(t, 600.0, table.Cells[0].Width)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Message, "skips 3 grid columns")

	noGrid := &RawTable{Rows: []RawRow{{Height: 500, GridBefore: 1, Cells: []RawCell{{Text: "x", Width: 600}}}}}
	table, warnings = newTestBuilder().Build(noGrid)
	assert.Empty(t, warnings)
	assert.Zero(t, table.Cells[0].X)
}

func TestBuild_GridOverflowFallsBackToCellWidth(t *testing.T) {
	src := &RawTable{
		Grid: []float64{1000},
		Rows: []RawRow{
			{Height: 500, Cells: []RawCell{{Text: "a"}, {Text: "b", Width: 1500}}},
		},
	}

	table, warnings := newTestBuilder().Build(src)
	require.Len(t, table.Cells, 2)
	assert.Equal(t, 1000.0, table.Cells[0].Width)
	assert.Equal(t, 1500.0, table.Cells[1].Width)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "grid columns")
}

func TestBuild_BoundingBoxMatchesRowWidth(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 400, Cells: []RawCell{cell("a", 1200, MergeNone), cell("b", 800, MergeRestart), cell("c", 1000, MergeNone)}},
		{Height: 600, Cells: []RawCell{cell("d", 1200, MergeNone), cell("", 800, MergeContinue), cell("f", 1000, MergeNone)}},
	}}

	table, _ := newTestBuilder().Build(src)

	for r := range src.Rows {
		x := 0.0
		for _, c := range src.Rows[r].Cells {
			x += c.Width
		}
		assert.Equal(t, table.Width, x, "row %d", r)
	}
	assert.Equal(t, 1000.0, table.Height)
}

func TestBuild_UnitDivisor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnitDivisor = 20
	src := &RawTable{Rows: []RawRow{
		{Height: 400, Cells: []RawCell{cell("a", 2000, MergeNone), cell("b", 0, MergeNone)}},
	}}

	table, _ := NewBuilder(cfg, nil).Build(src)
	require.Len(t, table.Cells, 2)
	assert.Equal(t, 100.0, table.Cells[0].Width)
	assert.Equal(t, 20.0, table.Cells[0].Height)
	assert.Equal(t, cfg.DefaultWidth, table.Cells[1].Width, "defaults are already in scaled units")
}

func TestBuild_FontSizeFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontSize = 9
	src := &RawTable{Rows: []RawRow{{Height: 500, Cells: []RawCell{cell("a", 1000, MergeNone)}}}}

	table, _ := NewBuilder(cfg, nil).Build(src)
	require.Len(t, table.Cells, 1)
	assert.Equal(t, 9.0, table.Cells[0].FontSize)
}

func TestBuild_EmptyTable(t *testing.T) {
	table, warnings := newTestBuilder().Reconstruct(&RawTable{})
	assert.Empty(t, warnings)
	assert.Empty(t, table.Cells)
	assert.Zero(t, table.Width)
	assert.Zero(t, table.Height)
}

func TestBuild_EmptyRow(t *testing.T) {
	src := &RawTable{Rows: []RawRow{
		{Height: 500, Cells: []RawCell{cell("a", 1000, MergeNone)}},
		{Height: 300},
	}}

	table, _ := newTestBuilder().Build(src)
	assert.Len(t, table.Cells, 1)
	assert.Zero(t, table.Width, "width comes from the last row")
	assert.Equal(t, 800.0, table.Height)
}

func TestReconstruct_Deterministic(t *testing.T) {
	src := &RawTable{
		Grid: []float64{900, 1100, 1000},
		Rows: []RawRow{
			{Height: 300, Cells: []RawCell{{Text: "a", Merge: MergeRestart}, {Text: "b", GridSpan: 2}}},
			{Height: 0, Cells: []RawCell{{Merge: MergeContinue}, {Text: "c"}, {Text: "d"}}},
			{Height: 450, Cells: []RawCell{{Text: "e", GridSpan: 3}}},
		},
	}

	b := newTestBuilder()
	first, firstWarnings := b.Reconstruct(src)
	second, secondWarnings := b.Reconstruct(src)
	assert.Equal(t, first, second)
	assert.Equal(t, firstWarnings, secondWarnings)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"width", func(c *Config) { c.DefaultWidth = 0 }},
		{"height", func(c *Config) { c.DefaultHeight = -1 }},
		{"font", func(c *Config) { c.FontSize = 0 }},
		{"tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"divisor", func(c *Config) { c.UnitDivisor = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMergeStateString(t *testing.T) {
	assert.Equal(t, "none", MergeNone.String())
	assert.Equal(t, "restart", MergeRestart.String())
	assert.Equal(t, "continue", MergeContinue.String())
}
