package wordextractor

import (
	"errors"
	"fmt"

	"github.com/boyonger/word-extractor/format"
)

var (
	// ErrUnsupportedFormat is returned when no supported format is set or
	// derivable from the file name.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNoInput is returned when an extractor has neither a file name nor data.
	ErrNoInput = errors.New("no input document")
)

// Extraction stages reported by ExtractionError.
const (
	StageConfig = "config"
	StageOpen   = "open"
)

// ExtractionError describes a fatal failure to extract one document.
type ExtractionError struct {
	Path   string // empty for in-memory input
	Format format.Format
	Stage  string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Path, e.Stage, e.Format, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}
