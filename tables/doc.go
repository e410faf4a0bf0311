// Package tables reconstructs table geometry from word-processor tables.
//
// The input is a row-major enumeration of raw cells provided by a [Source]:
// each cell has a nominal width, a vertical merge state and text. The
// package turns it into a [model.Table] in two passes:
//
//  1. [Builder.Build] resolves widths and row heights, accumulates absolute
//     x/y positions, absorbs vertically merged continuation cells into the
//     height of their anchor cell and records the table's bounding box.
//  2. [AssignGrid] derives row, column and span indices from the finished
//     coordinates by bucketing cell edges into sorted boundary lists with a
//     tolerance.
//
// # Configuration
//
// Fallback sizes, the font size stamped on every cell and the bucketing
// tolerance are carried in a [Config] value:
//
//	cfg := tables.DefaultConfig()
//	cfg.Tolerance = 10
//	table, warnings := tables.NewBuilder(cfg, logger).Build(src)
//
// # Degradation
//
// Malformed geometry never fails a build. Missing widths and heights are
// replaced with defaults, negative values are corrected with their absolute
// value, and unresolvable spans are clamped to 1. Each correction is logged
// and returned as a [model.Warning].
package tables
