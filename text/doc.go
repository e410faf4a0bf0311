// Package text assembles the plain-text part of a document.
//
// Word-processor paragraphs carry their own whitespace conventions:
// non-breaking and ideographic spaces, tabs, backspace glyphs and
// vertical-tab line breaks. [Normalize] maps them onto plain spaces and
// newlines. An [Assembler] walks a document's body [Element] values in
// source order, normalizes every paragraph outside a table and joins the
// results with newlines.
//
// Table text is never part of the output; it is available, positioned,
// through the tables package.
//
// # Table Regions
//
// Bodies read from the OOXML format mark tables with [ElementTable]
// elements. Bodies read from the legacy binary format only flag
// paragraphs with table membership and a nesting depth; there the
// assembler delimits a table region by scanning forward while paragraphs
// stay in a table at depth one or more.
package text
