package text

// ElementKind distinguishes the body elements of a document.
type ElementKind int

const (
	// ElementParagraph is a paragraph. Legacy-format paragraphs may still
	// belong to a table, see Element.InTable.
	ElementParagraph ElementKind = iota
	// ElementTable stands for a whole table.
	ElementTable
)

// String returns the string representation of the element kind.
func (k ElementKind) String() string {
	if k == ElementTable {
		return "table"
	}
	return "paragraph"
}

// Element is one body element in document order.
type Element struct {
	Kind ElementKind

	// Text is the raw paragraph text. Unused for tables.
	Text string

	// InTable reports that a paragraph belongs to a table.
	InTable bool

	// Depth is the table nesting level of a paragraph, 0 outside tables.
	Depth int
}

// Paragraph returns a paragraph element outside any table.
func Paragraph(text string) Element {
	return Element{Kind: ElementParagraph, Text: text}
}

// TableParagraph returns a paragraph element inside a table at the given depth.
func TableParagraph(text string, depth int) Element {
	return Element{Kind: ElementParagraph, Text: text, InTable: true, Depth: depth}
}

// Table returns a table element.
func Table() Element {
	return Element{Kind: ElementTable}
}
