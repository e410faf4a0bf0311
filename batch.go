package wordextractor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/boyonger/word-extractor/model"
)

// FileResult is the extracted content of one file of a batch.
type FileResult struct {
	Path     string                 `json:"path"`
	Content  *model.DocumentContent `json:"content"`
	Warnings []model.Warning        `json:"warnings,omitempty"`
}

// ExtractFiles extracts the content of several files concurrently, running
// at most workers extractions at a time (runtime.NumCPU when workers < 1).
// configure, when non-nil, is applied to each file's Extractor together
// with the file's path.
//
// Results keep the order of paths. The first failure cancels the
// extractions that have not started yet and is returned.
//
// Example:
//
//	results, err := wordextractor.ExtractFiles(ctx, paths, 4, func(_ string, e *wordextractor.Extractor) *wordextractor.Extractor {
//	    return e.Tolerance(10)
//	})
func ExtractFiles(ctx context.Context, paths []string, workers int, configure func(path string, e *Extractor) *Extractor) ([]FileResult, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			e := Open(path)
			if configure != nil {
				e = configure(path, e)
			}
			content, warnings, err := e.Content()
			if err != nil {
				return err
			}
			results[i] = FileResult{Path: path, Content: content, Warnings: warnings}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
