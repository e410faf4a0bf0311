// Package doc reads Word 97-2003 binary documents (.doc): the main document
// text split into paragraphs, the rows and cells of its tables, and the
// summary information property set.
//
// The compound file container is read with mscfb. Text comes from the
// piece table, paragraph and table properties from the PAPX formatted
// disk pages of the WordDocument stream.
package doc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"

	"github.com/boyonger/word-extractor/model"
	"github.com/boyonger/word-extractor/tables"
	"github.com/boyonger/word-extractor/text"
)

const (
	wordDocumentStream = "WordDocument"
	dataStream         = "Data"
	summaryStream      = "\x05SummaryInformation"
)

// Reader holds a parsed Word binary document.
type Reader struct {
	body *body
	meta model.Metadata
}

// Open reads a .doc file.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return read(f)
}

// OpenBytes reads a .doc document held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	return read(bytes.NewReader(data))
}

func read(ra io.ReaderAt) (*Reader, error) {
	cf, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWordDocument, err)
	}

	streams := make(map[string][]byte)
	var meta model.Metadata
	for entry, err := cf.Next(); err == nil; entry, err = cf.Next() {
		// Embedded objects carry their own streams below the root.
		if len(entry.Path) > 0 {
			continue
		}
		switch entry.Name {
		case wordDocumentStream, "0Table", "1Table", dataStream:
			data, err := io.ReadAll(entry)
			if err != nil {
				return nil, fmt.Errorf("reading %s stream: %w", entry.Name, err)
			}
			streams[entry.Name] = data
		case summaryStream:
			if msoleps.IsMSOLEPS(entry.Initial) {
				meta = readSummary(entry)
			}
		}
	}

	wordDoc, ok := streams[wordDocumentStream]
	if !ok {
		return nil, fmt.Errorf("%w: no %s stream", ErrNotWordDocument, wordDocumentStream)
	}

	b, err := parseStreams(wordDoc, streams)
	if err != nil {
		return nil, err
	}
	return &Reader{body: b, meta: meta}, nil
}

// parseStreams parses the main document from the WordDocument stream, the
// table stream the file information block selects and the optional Data
// stream.
func parseStreams(wordDoc []byte, streams map[string][]byte) (*body, error) {
	f, err := parseFIB(wordDoc)
	if err != nil {
		return nil, err
	}

	table, ok := streams[f.tableStream()]
	if !ok {
		return nil, fmt.Errorf("%w: no %s stream", ErrCorrupt, f.tableStream())
	}

	pieces, err := parsePieceTable(table, f.fcClx, f.lcbClx)
	if err != nil {
		return nil, fmt.Errorf("reading piece table: %w", err)
	}
	chars, err := decodeText(wordDoc, pieces, f.ccpText)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}

	var idx papxIndex
	if f.lcbPlcfBtePapx > 0 {
		idx, err = parsePapx(wordDoc, table, f.fcPlcfBtePapx, f.lcbPlcfBtePapx)
		if err != nil {
			return nil, fmt.Errorf("reading paragraph properties: %w", err)
		}
	}

	return buildBody(splitParagraphs(chars, idx, streams[dataStream])), nil
}

// readSummary reads document metadata from the summary information
// property set. Unreadable property sets yield empty metadata.
func readSummary(r io.Reader) model.Metadata {
	var meta model.Metadata
	props := msoleps.New()
	if err := props.Reset(r); err != nil {
		return meta
	}

	for _, p := range props.Property {
		value := strings.TrimSpace(strings.TrimRight(p.String(), "\x00"))
		switch p.Name {
		case "Title":
			meta.Title = value
		case "Subject":
			meta.Subject = value
		case "Author":
			meta.Author = value
		case "Keywords":
			meta.Keywords = model.SplitKeywords(value)
		case "AppName":
			meta.Creator = value
		}
	}
	return meta
}

// Elements returns the main document paragraphs in order. Table
// paragraphs report their table membership and nesting depth.
func (r *Reader) Elements() []text.Element {
	return r.body.elements
}

// Tables returns the top-level tables in document order. Measures are in
// twips; tables carry no column grid.
func (r *Reader) Tables() []*tables.RawTable {
	return r.body.tables
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	return r.meta
}

// Warnings returns the anomalies recovered while grouping table rows and cells.
func (r *Reader) Warnings() []model.Warning {
	return r.body.warnings
}
