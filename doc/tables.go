package doc

import (
	"strings"

	"github.com/boyonger/word-extractor/model"
	"github.com/boyonger/word-extractor/tables"
	"github.com/boyonger/word-extractor/text"
)

const stageParse = "parse"

// body is the main document split into text elements and top-level tables.
type body struct {
	elements []text.Element
	tables   []*tables.RawTable
	warnings []model.Warning
}

// buildBody groups table paragraphs into rows and cells. Cell marks end
// cells, row end marks end rows and carry the row's properties. Nested
// tables are flattened into the text of their enclosing cell.
func buildBody(paras []paragraph) *body {
	b := &body{}
	var cur *tableBuilder

	flush := func() {
		if cur == nil {
			return
		}
		idx := len(b.tables)
		tbl, warnings := cur.finish()
		for _, w := range warnings {
			b.warnings = append(b.warnings, w.InTable(idx))
		}
		b.tables = append(b.tables, tbl)
		cur = nil
	}

	for i, p := range paras {
		if p.props.hugePapxLost {
			w := model.NewWarning(stageParse,
				"properties of paragraph %d point outside the Data stream; cell widths and merges may be missing", i)
			if cur != nil {
				w = w.InTable(len(b.tables))
			}
			b.warnings = append(b.warnings, w)
		}

		if !p.props.inTable {
			flush()
			b.elements = append(b.elements, text.Paragraph(p.text))
			continue
		}

		b.elements = append(b.elements, text.Element{
			Kind:    text.ElementParagraph,
			Text:    p.text,
			InTable: true,
			Depth:   p.props.depth,
		})

		// A table paragraph without a nesting level belongs to no table.
		if p.props.depth < 1 {
			flush()
			continue
		}

		if cur == nil {
			cur = &tableBuilder{}
		}
		cur.add(p)
	}
	flush()

	return b
}

// tableBuilder accumulates the rows of one top-level table.
type tableBuilder struct {
	rows     []tables.RawRow
	cells    []tables.RawCell // current row
	parts    []string         // current cell
	warnings []model.Warning
}

func (tb *tableBuilder) add(p paragraph) {
	switch {
	case p.props.depth > 1:
		if !p.props.innerTtp && p.text != "" {
			tb.parts = append(tb.parts, p.text)
		}
	case p.props.ttp:
		tb.endRow(p.props)
	default:
		if p.text != "" {
			tb.parts = append(tb.parts, p.text)
		}
		if p.cellEnd {
			tb.endCell()
		}
	}
}

func (tb *tableBuilder) endCell() {
	tb.cells = append(tb.cells, tables.RawCell{
		GridSpan: 1,
		Text:     strings.Join(tb.parts, "\n"),
	})
	tb.parts = nil
}

// endRow closes the current row with the properties of its row end mark.
func (tb *tableBuilder) endRow(props paraProps) {
	row := len(tb.rows)
	if len(tb.parts) > 0 {
		tb.warnings = append(tb.warnings, model.NewWarning(stageParse,
			"text after the last cell mark was kept as an extra cell").At(row, len(tb.cells)))
		tb.endCell()
	}

	if len(props.cells) > 0 && len(props.cells) != len(tb.cells) {
		tb.warnings = append(tb.warnings, model.NewWarning(stageParse,
			"row has %d cell marks but defines %d cells", len(tb.cells), len(props.cells)).At(row, -1))
	}

	for i := range tb.cells {
		if i >= len(props.cells) {
			break
		}
		def := props.cells[i]
		tb.cells[i].Width = float64(def.width)
		switch def.merge {
		case mergeRestart:
			tb.cells[i].Merge = tables.MergeRestart
		case mergeContinue:
			tb.cells[i].Merge = tables.MergeContinue
		}
	}

	tb.rows = append(tb.rows, tables.RawRow{
		Height: float64(props.rowHeight),
		Cells:  tb.cells,
	})
	tb.cells = nil
}

// finish returns the table, closing a row left open by a missing row end mark.
func (tb *tableBuilder) finish() (*tables.RawTable, []model.Warning) {
	if len(tb.cells) > 0 || len(tb.parts) > 0 {
		tb.warnings = append(tb.warnings, model.NewWarning(stageParse,
			"table ends without a row end mark, last row uses default measures").At(len(tb.rows), -1))
		tb.endRow(paraProps{})
	}
	return &tables.RawTable{Rows: tb.rows}, tb.warnings
}
