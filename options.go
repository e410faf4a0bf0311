package wordextractor

import (
	"log/slog"

	"github.com/boyonger/word-extractor/tables"
)

// extractOptions holds the configuration of an Extractor.
type extractOptions struct {
	config tables.Config
	logger *slog.Logger // nil discards
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		config: tables.DefaultConfig(),
	}
}
