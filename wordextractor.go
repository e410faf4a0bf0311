// Package wordextractor extracts plain text and positioned tables from Word
// documents, both the Word 97-2003 binary format (.doc) and Office Open XML
// (.docx).
//
// Every table cell carries an absolute position and extent in source units
// (twips unless a unit divisor is configured) together with its logical
// row, column and spans, ready for fixed-layout rendering.
//
// Basic usage:
//
//	content, warnings, err := wordextractor.Open("report.docx").Content()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", wordextractor.FormatWarnings(warnings))
//	}
//
// With options:
//
//	tables, _, err := wordextractor.FromBytes(data, format.DOC).
//	    DefaultCellSize(1200, 400).
//	    Tolerance(10).
//	    Tables()
package wordextractor

import (
	"io"
	"strings"

	"github.com/boyonger/word-extractor/format"
	"github.com/boyonger/word-extractor/model"
)

// Open returns an Extractor for the named file. The format is taken from
// the file extension unless set with As.
//
// Example:
//
//	text, warnings, err := wordextractor.Open("minutes.doc").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor for a document held in memory.
//
// Example:
//
//	content, _, err := wordextractor.FromBytes(data, format.DOCX).Content()
func FromBytes(data []byte, f format.Format) *Extractor {
	return &Extractor{
		data:    data,
		format:  f,
		options: defaultOptions(),
	}
}

// FromReader reads r to the end and returns an Extractor for its content.
// A read failure is reported by the terminal operation.
func FromReader(r io.Reader, f format.Format) *Extractor {
	e := FromBytes(nil, f)
	data, err := io.ReadAll(r)
	if err != nil {
		e.err = &ExtractionError{Format: f, Stage: StageOpen, Err: err}
		return e
	}
	e.data = data
	return e
}

// Must is a helper that wraps a call to a terminal operation and panics if
// the error is non-nil. Warnings are discarded. It is intended for use in
// scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	text := wordextractor.Must(wordextractor.Open("notes.docx").Text())
func Must[T any](val T, _ []model.Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings joins warnings into a single human-readable string, one
// warning per line.
func FormatWarnings(warnings []model.Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
