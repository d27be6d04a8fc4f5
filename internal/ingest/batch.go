package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/trackerlens/trackerlens/internal/model"
)

// DiscoverDocuments enumerates the JSON source documents in dir, sorted by
// file name. Sorting fixes the domain-enumeration order, which in turn fixes
// every stable tie-break downstream, regardless of filesystem listing order.
func DiscoverDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

// Batch loads many source documents and assembles them into one Corpus.
// With more than one worker, files are loaded concurrently; per-file results
// are written into a slot indexed by the file's position in the sorted path
// list, so the assembled corpus is identical to the sequential one.
//
// Design decision: We use errgroup with a concurrency limit rather than a
// hand-rolled worker pool because it gives us fail-fast semantics for free:
// the first error cancels the group context and Wait returns that error, so
// no partial corpus ever escapes.
type Batch struct {
	// loader parses individual documents.
	loader *Loader

	// workers is the maximum number of files loaded concurrently.
	workers int

	// logger is used for batch-level progress logging.
	logger *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithWorkers sets the maximum number of concurrently loaded files.
// Values below 1 fall back to sequential loading.
func WithWorkers(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithBatchLogger sets a custom logger for batch loading.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// NewBatch creates a Batch using the given loader.
func NewBatch(loader *Loader, opts ...BatchOption) *Batch {
	b := &Batch{
		loader:  loader,
		workers: 1,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Run loads every path and aggregates the resulting rows into a Corpus.
// Paths must already be in the desired enumeration order. The first failure
// aborts the whole batch.
func (b *Batch) Run(ctx context.Context, paths []string) (model.Corpus, error) {
	groups := make([][]model.FlatRow, len(paths))

	if b.workers <= 1 {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				return model.Corpus{}, err
			}
			record, err := b.loader.LoadFile(path)
			if err != nil {
				return model.Corpus{}, err
			}
			groups[i] = ExpandRecord(record)
		}
		return Aggregate(groups), nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := b.loader.LoadFile(path)
			if err != nil {
				return err
			}
			groups[i] = ExpandRecord(record)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.Corpus{}, err
	}

	b.logger.Debug("batch load complete",
		"documents", len(paths),
		"workers", b.workers,
	)

	return Aggregate(groups), nil
}

// LoadDir is a convenience composing DiscoverDocuments and Run.
// It returns the number of documents loaded alongside the corpus.
func (b *Batch) LoadDir(ctx context.Context, dir string) (model.Corpus, int, error) {
	paths, err := DiscoverDocuments(dir)
	if err != nil {
		return model.Corpus{}, 0, err
	}

	b.logger.Info("loading source documents",
		"dir", dir,
		"documents", len(paths),
	)

	corpus, err := b.Run(ctx, paths)
	if err != nil {
		return model.Corpus{}, 0, err
	}
	return corpus, len(paths), nil
}
