// Package docx reads the body of Office Open XML word processing documents
// (.docx): paragraphs and tables in document order, plus package metadata.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/boyonger/word-extractor/model"
	"github.com/boyonger/word-extractor/text"
)

// ErrMissingPart is returned when a required package part is absent.
var ErrMissingPart = errors.New("docx: missing required part")

const (
	defaultDocumentPart = "word/document.xml"
	officeDocumentRel   = "/officeDocument"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	blocks    []blockXML
	tables    []*Table
	coreProps *corePropertiesXML
	appProps  *appPropertiesXML
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenBytes reads a DOCX document held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr}

	if r.getFile("[Content_Types].xml") == nil {
		return nil, fmt.Errorf("%w: [Content_Types].xml", ErrMissingPart)
	}

	if err := r.parseDocument(r.mainDocumentPart()); err != nil {
		return nil, err
	}

	// Metadata is optional
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// getFile returns a zip.File by name.
func (r *Reader) getFile(name string) *zip.File {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f := r.getFile(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// mainDocumentPart locates the main document through the package
// relationships, falling back to the conventional location.
func (r *Reader) mainDocumentPart() string {
	data, err := r.getFileContent("_rels/.rels")
	if err != nil {
		return defaultDocumentPart
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return defaultDocumentPart
	}

	for _, rel := range rels.Relationships {
		if strings.HasSuffix(rel.Type, officeDocumentRel) && rel.Target != "" {
			return path.Clean(strings.TrimPrefix(rel.Target, "/"))
		}
	}
	return defaultDocumentPart
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument(name string) error {
	f := r.getFile(name)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrMissingPart, name)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	blocks, err := parseBody(rc)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}

	r.blocks = blocks
	for _, b := range blocks {
		if b.Table != nil {
			r.tables = append(r.tables, newTable(b.Table))
		}
	}
	return nil
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}

	props := &appPropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.appProps = props
	}
}

// Tables returns the top-level tables of the body in document order.
func (r *Reader) Tables() []*Table {
	return r.tables
}

// Elements returns the body as paragraph and table elements in document order.
func (r *Reader) Elements() []text.Element {
	elements := make([]text.Element, 0, len(r.blocks))
	for _, b := range r.blocks {
		if b.Table != nil {
			elements = append(elements, text.Table())
			continue
		}
		elements = append(elements, text.Paragraph(b.Paragraph.Text))
	}
	return elements
}

// Warnings returns the anomalies found in the table markup, attributed to
// their table's index in Tables.
func (r *Reader) Warnings() []model.Warning {
	var warnings []model.Warning
	for i, t := range r.tables {
		for _, w := range t.Warnings() {
			warnings = append(warnings, w.InTable(i))
		}
	}
	return warnings
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}
	if r.coreProps != nil {
		meta.Title = strings.TrimSpace(r.coreProps.Title)
		meta.Author = strings.TrimSpace(r.coreProps.Creator)
		meta.Subject = strings.TrimSpace(r.coreProps.Subject)
		meta.Keywords = model.SplitKeywords(r.coreProps.Keywords)
	}
	if r.appProps != nil {
		meta.Creator = strings.TrimSpace(r.appProps.Application)
	}
	return meta
}
