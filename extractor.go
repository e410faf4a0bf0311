package wordextractor

import (
	"log/slog"

	"github.com/boyonger/word-extractor/doc"
	"github.com/boyonger/word-extractor/docx"
	"github.com/boyonger/word-extractor/format"
	"github.com/boyonger/word-extractor/internal/logging"
	"github.com/boyonger/word-extractor/model"
	"github.com/boyonger/word-extractor/tables"
	"github.com/boyonger/word-extractor/text"
)

const stageContent = "content"

// Extractor provides a fluent interface for extracting content from Word
// documents. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	format   format.Format

	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor. Options are plain values, so the
// copy shares nothing mutable with the original.
func (e *Extractor) clone() *Extractor {
	newExt := *e
	return &newExt
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// As sets the document format, overriding the one derived from the file name.
//
// Example:
//
//	text, _, err := wordextractor.Open("upload.bin").As(format.DOC).Text()
func (e *Extractor) As(f format.Format) *Extractor {
	newExt := e.clone()
	newExt.format = f
	return newExt
}

// WithConfig replaces the whole table reconstruction configuration.
func (e *Extractor) WithConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// Tolerance sets the distance within which cell edges snap to the same
// grid boundary.
func (e *Extractor) Tolerance(tolerance float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.Tolerance = tolerance
	return newExt
}

// DefaultCellSize sets the width used for cells without a usable width and
// the height used for rows without an explicit height.
//
// Example:
//
//	tables, _, err := wordextractor.Open("form.docx").DefaultCellSize(1440, 360).Tables()
func (e *Extractor) DefaultCellSize(width, height float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.DefaultWidth = width
	newExt.options.config.DefaultHeight = height
	return newExt
}

// FontSize sets the font size stamped on every table cell.
func (e *Extractor) FontSize(size float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.FontSize = size
	return newExt
}

// UnitDivisor sets the divisor applied to raw source widths and heights,
// for example 20 to convert twips to points.
func (e *Extractor) UnitDivisor(divisor float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.UnitDivisor = divisor
	return newExt
}

// WithLogger sets the logger anomalies and progress are reported to.
// By default nothing is logged.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Content extracts the document text, tables and metadata.
//
// Example:
//
//	content, warnings, err := wordextractor.Open("report.doc").Content()
//	if err != nil {
//	    return err
//	}
//	for _, t := range content.Tables {
//	    fmt.Println(t.RowCount(), "x", t.ColCount())
//	}
func (e *Extractor) Content() (*model.DocumentContent, []model.Warning, error) {
	parsed, err := e.parse()
	if err != nil {
		return nil, nil, err
	}

	warnings := parsed.warnings
	tbls, tableWarnings := e.buildTables(parsed)
	warnings = append(warnings, tableWarnings...)

	res := text.NewAssembler(e.options.logger).Assemble(parsed.elements)
	warnings = append(warnings, res.Warnings...)

	if res.TableRegions != len(tbls) {
		w := model.NewWarning(stageContent,
			"body has %d table regions but %d tables were parsed", res.TableRegions, len(tbls))
		e.logger().Warn(w.Message, "stage", w.Stage)
		warnings = append(warnings, w)
	}

	return &model.DocumentContent{
		Text:     res.Text,
		Tables:   tbls,
		Metadata: parsed.metadata,
	}, warnings, nil
}

// Text extracts the normalized paragraph text outside tables, one
// paragraph per line.
//
// Example:
//
//	text, warnings, err := wordextractor.Open("letter.docx").Text()
func (e *Extractor) Text() (string, []model.Warning, error) {
	parsed, err := e.parse()
	if err != nil {
		return "", nil, err
	}

	res := text.NewAssembler(e.options.logger).Assemble(parsed.elements)
	return res.Text, append(parsed.warnings, res.Warnings...), nil
}

// Tables extracts the positioned tables in document order.
func (e *Extractor) Tables() ([]model.Table, []model.Warning, error) {
	parsed, err := e.parse()
	if err != nil {
		return nil, nil, err
	}

	tbls, warnings := e.buildTables(parsed)
	return tbls, append(parsed.warnings, warnings...), nil
}

// ============================================================================
// Internals
// ============================================================================

// parsedDocument is what the format adapters deliver.
type parsedDocument struct {
	elements []text.Element
	tables   []tables.Source
	metadata model.Metadata
	warnings []model.Warning
}

func (e *Extractor) logger() *slog.Logger {
	return logging.Module(e.options.logger, "extractor")
}

func (e *Extractor) fail(stage string, err error) error {
	return &ExtractionError{Path: e.filename, Format: e.format, Stage: stage, Err: err}
}

// parse validates the configuration and reads the document with the
// adapter for its format.
func (e *Extractor) parse() (*parsedDocument, error) {
	if e.err != nil {
		return nil, e.err
	}
	if err := e.options.config.Validate(); err != nil {
		return nil, e.fail(StageConfig, err)
	}
	if e.filename == "" && e.data == nil {
		return nil, e.fail(StageOpen, ErrNoInput)
	}

	var parsed *parsedDocument
	var err error
	switch e.format {
	case format.DOCX:
		parsed, err = e.parseDOCX()
	case format.DOC:
		parsed, err = e.parseDOC()
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, e.fail(StageOpen, err)
	}

	logger := e.logger()
	for _, w := range parsed.warnings {
		logger.Warn(w.Message, "stage", w.Stage, "table", w.Table, "row", w.Row, "col", w.Col)
	}
	logger.Debug("document parsed",
		"path", e.filename,
		"format", e.format.String(),
		"elements", len(parsed.elements),
		"tables", len(parsed.tables))
	return parsed, nil
}

func (e *Extractor) parseDOCX() (*parsedDocument, error) {
	var r *docx.Reader
	var err error
	if e.data != nil {
		r, err = docx.OpenBytes(e.data)
	} else {
		r, err = docx.Open(e.filename)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	parsed := &parsedDocument{
		elements: r.Elements(),
		metadata: r.Metadata(),
		warnings: r.Warnings(),
	}
	for _, t := range r.Tables() {
		parsed.tables = append(parsed.tables, t)
	}
	return parsed, nil
}

func (e *Extractor) parseDOC() (*parsedDocument, error) {
	var r *doc.Reader
	var err error
	if e.data != nil {
		r, err = doc.OpenBytes(e.data)
	} else {
		r, err = doc.Open(e.filename)
	}
	if err != nil {
		return nil, err
	}

	parsed := &parsedDocument{
		elements: r.Elements(),
		metadata: r.Metadata(),
		warnings: r.Warnings(),
	}
	for _, t := range r.Tables() {
		parsed.tables = append(parsed.tables, t)
	}
	return parsed, nil
}

// buildTables reconstructs the geometry of every table. Warnings are
// attributed to their table's index.
func (e *Extractor) buildTables(parsed *parsedDocument) ([]model.Table, []model.Warning) {
	builder := tables.NewBuilder(e.options.config, e.options.logger)

	tbls := make([]model.Table, 0, len(parsed.tables))
	var warnings []model.Warning
	for i, src := range parsed.tables {
		table, ws := builder.Reconstruct(src)
		for _, w := range ws {
			warnings = append(warnings, w.InTable(i))
		}
		tbls = append(tbls, *table)
	}
	return tbls, warnings
}
