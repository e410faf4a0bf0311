package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// blockXML is one block-level body element: a paragraph or a table.
type blockXML struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// paragraphXML is a paragraph (<w:p>) reduced to its visible text.
type paragraphXML struct {
	Text string
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	Properties tablePropsXML
	Grid       *tableGridXML
	Rows       []tableRowXML
}

// tablePropsXML represents table properties.
type tablePropsXML struct {
	Width *tableSizeXML `xml:"tblW"`
}

// tableSizeXML represents table/cell size.
type tableSizeXML struct {
	W    string `xml:"w,attr"`
	Type string `xml:"type,attr"` // dxa (twips), pct, auto, nil
}

// tableGridXML represents table grid definition.
type tableGridXML struct {
	Cols []gridColXML `xml:"gridCol"`
}

// gridColXML represents a grid column.
type gridColXML struct {
	W string `xml:"w,attr"` // twips
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	Properties rowPropsXML
	Cells      []tableCellXML
}

// rowPropsXML represents row properties.
type rowPropsXML struct {
	Height     *rowHeightXML `xml:"trHeight"`
	GridBefore *valXML       `xml:"gridBefore"` // grid columns skipped before the first cell
}

// rowHeightXML represents row height.
type rowHeightXML struct {
	Val  string `xml:"val,attr"`
	Rule string `xml:"hRule,attr"` // exact, atLeast, auto
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	Properties cellPropsXML
	Blocks     []blockXML
}

// cellPropsXML represents cell properties. Pointer fields are nil when
// the element is absent.
type cellPropsXML struct {
	Width    *tableSizeXML `xml:"tcW"`
	GridSpan *valXML       `xml:"gridSpan"`
	VMerge   *valXML       `xml:"vMerge"`
}

// valXML is an element carrying a single w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// parseBody reads word/document.xml and returns the body's blocks in
// document order.
func parseBody(r io.Reader) ([]blockXML, error) {
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("document has no body")
		}
		if err != nil {
			return nil, err
		}
		if t, ok := token.(xml.StartElement); ok && t.Name.Local == "body" {
			return decodeBlocks(decoder, nil)
		}
	}
}

// decodeChildren calls handle for every child element up to the end of
// the enclosing element, descending through content control and custom XML
// wrappers. handle must consume the element it is given.
func decodeChildren(d *xml.Decoder, handle func(xml.StartElement) error) error {
	depth := 0
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sdt", "sdtContent", "customXml":
				depth++
			case "sdtPr", "sdtEndPr", "customXmlPr":
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := handle(t); err != nil {
					return err
				}
			}

		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// decodeBlocks reads block-level children until the end of the enclosing
// element. Any element other than a paragraph or a table is passed to
// other, which must consume it, or skipped when other is nil.
func decodeBlocks(d *xml.Decoder, other func(xml.StartElement) error) ([]blockXML, error) {
	var blocks []blockXML
	err := decodeChildren(d, func(t xml.StartElement) error {
		switch t.Name.Local {
		case "p":
			var para paragraphXML
			if err := d.DecodeElement(&para, &t); err != nil {
				return fmt.Errorf("decoding paragraph: %w", err)
			}
			blocks = append(blocks, blockXML{Paragraph: &para})
		case "tbl":
			var tbl tableXML
			if err := d.DecodeElement(&tbl, &t); err != nil {
				return fmt.Errorf("decoding table: %w", err)
			}
			blocks = append(blocks, blockXML{Table: &tbl})
		default:
			if other != nil {
				return other(t)
			}
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// UnmarshalXML implements xml.Unmarshaler. Rows wrapped in content
// controls or custom XML are kept in order.
func (tbl *tableXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) error {
		switch t.Name.Local {
		case "tblPr":
			return d.DecodeElement(&tbl.Properties, &t)
		case "tblGrid":
			tbl.Grid = &tableGridXML{}
			return d.DecodeElement(tbl.Grid, &t)
		case "tr":
			var row tableRowXML
			if err := d.DecodeElement(&row, &t); err != nil {
				return fmt.Errorf("decoding row %d: %w", len(tbl.Rows), err)
			}
			tbl.Rows = append(tbl.Rows, row)
			return nil
		default:
			return d.Skip()
		}
	})
}

// UnmarshalXML implements xml.Unmarshaler. Cells wrapped in content
// controls or custom XML are kept in order.
func (row *tableRowXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) error {
		switch t.Name.Local {
		case "trPr":
			return d.DecodeElement(&row.Properties, &t)
		case "tc":
			var cell tableCellXML
			if err := d.DecodeElement(&cell, &t); err != nil {
				return err
			}
			row.Cells = append(row.Cells, cell)
			return nil
		default:
			return d.Skip()
		}
	})
}

// UnmarshalXML implements xml.Unmarshaler. Text is collected in document
// order from runs at any depth (hyperlinks, insertions, simple fields,
// inline content controls). Deleted text, field instructions, drawings
// and embedded objects are dropped.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	depth := 0

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				sb.WriteString(s)
				continue
			case "pPr", "rPr", "sdtPr", "del", "moveFrom", "delText", "instrText",
				"drawing", "pict", "object", "Fallback":
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			case "sym":
				if r, ok := symbolRune(t); ok {
					sb.WriteRune(r)
				}
			case "tab", "ptab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			case "noBreakHyphen":
				sb.WriteByte('-')
			}
			depth++

		case xml.EndElement:
			if depth == 0 {
				p.Text = sb.String()
				return nil
			}
			depth--
		}
	}
}

// symbolRune decodes the w:char attribute of a <w:sym> element.
func symbolRune(t xml.StartElement) (rune, bool) {
	for _, attr := range t.Attr {
		if attr.Name.Local != "char" {
			continue
		}
		code, err := strconv.ParseUint(attr.Value, 16, 32)
		if err != nil || code == 0 {
			return 0, false
		}
		return rune(code), true
	}
	return 0, false
}

// relationshipsXML represents _rels/.rels.
type relationshipsXML struct {
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single package relationship.
type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	Title    string `xml:"title"`
	Subject  string `xml:"subject"`
	Creator  string `xml:"creator"`
	Keywords string `xml:"keywords"`
}

// appPropertiesXML represents docProps/app.xml
type appPropertiesXML struct {
	Application string `xml:"Application"`
}
