// Package model provides the content model produced by word-extractor.
//
// All extraction operations produce these types, making them the primary
// API for consuming extracted content.
//
// # Document Content
//
// [DocumentContent] holds the plain text of a document together with its
// tables. Paragraph text never includes table text; table text is only
// available, positioned, through the [Table] values.
//
// # Tables
//
// A [Table] is a flat list of [Cell] values in source order. Each cell
// carries an absolute position and extent within the table (X, Y, Width,
// Height, in source units, twips by default) and logical grid coordinates
// (Row, Col, RowSpan, ColSpan) derived from those positions:
//
//	for _, cell := range table.Cells {
//	    fmt.Printf("(%d,%d) span %dx%d: %s\n",
//	        cell.Row, cell.Col, cell.RowSpan, cell.ColSpan, cell.Text)
//	}
//
// Vertically merged cells appear once, with a height covering every row
// of the merge.
//
// # Warnings
//
// Extraction degrades gracefully on malformed input. Each recovered
// anomaly is reported as a [Warning] next to the result.
package model
