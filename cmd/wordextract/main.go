// Command wordextract extracts text and positioned tables from Word
// documents and writes them as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	wordextractor "github.com/boyonger/word-extractor"
	"github.com/boyonger/word-extractor/format"
	"github.com/boyonger/word-extractor/internal/config"
	"github.com/boyonger/word-extractor/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordextract [flags] file...",
		Short: "Extract text and tables from Word documents",
		Long: `wordextract reads .doc and .docx files and outputs JSON holding the
paragraph text outside tables and every table cell with its absolute
position, size, grid row/column and spans.

Settings may also come from a config file (--config) or from
WORDEXTRACT_ environment variables, e.g. WORDEXTRACT_UNIT_DIVISOR=20.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}
	config.AddFlags(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	formats := make(map[string]format.Format, len(args))
	for _, path := range args {
		f, err := resolveFormat(path, cfg.InputFormat())
		if err != nil {
			return err
		}
		formats[path] = f
	}

	results, err := wordextractor.ExtractFiles(cmd.Context(), args, cfg.Workers,
		func(path string, e *wordextractor.Extractor) *wordextractor.Extractor {
			return e.As(formats[path]).WithConfig(cfg.Tables).WithLogger(logger)
		})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	for _, res := range results {
		for _, w := range res.Warnings {
			logger.Warn(w.Message, "path", res.Path, "stage", w.Stage, "table", w.Table, "row", w.Row, "col", w.Col)
		}
	}

	data, err := encode(results, cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("output written", "path", cfg.Output, "documents", len(results))
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// resolveFormat picks the format of one input: the forced format, else the
// file extension, else the leading signature bytes.
func resolveFormat(path string, forced format.Format) (format.Format, error) {
	if forced != format.Unknown {
		return forced, nil
	}
	if f := format.Detect(path); f != format.Unknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return format.Unknown, err
	}
	defer file.Close()

	head := make([]byte, 8)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return format.Unknown, fmt.Errorf("reading %s: %w", path, err)
	}
	if f := format.DetectFromMagic(head[:n]); f != format.Unknown {
		return f, nil
	}
	return format.Unknown, fmt.Errorf("%s: %w", path, wordextractor.ErrUnsupportedFormat)
}

// encode renders a single document as one object and several as an array.
func encode(results []wordextractor.FileResult, pretty bool) ([]byte, error) {
	var v any = results
	if len(results) == 1 {
		v = results[0]
	}

	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
