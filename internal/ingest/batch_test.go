package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/trackerlens/trackerlens/internal/model"
)

// writeDocument writes one minimal source document into dir.
func writeDocument(t *testing.T, dir, name, domain string, prevalence float64, categories string) {
	t.Helper()

	doc := fmt.Sprintf(`{
		"domain": %q,
		"prevalence": %v,
		"sites": 100,
		"fingerprinting": 1,
		"cookies": 0.01,
		"categories": %s
	}`, domain, prevalence, categories)

	if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}
}

// TestDiscoverDocuments tests document enumeration.
func TestDiscoverDocuments(t *testing.T) {
	t.Parallel()

	t.Run("returns JSON files sorted by name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeDocument(t, dir, "c.json", "c.example", 0.1, "[]")
		writeDocument(t, dir, "a.json", "a.example", 0.2, "[]")
		writeDocument(t, dir, "b.json", "b.example", 0.3, "[]")
		if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0750); err != nil {
			t.Fatal(err)
		}

		paths, err := DiscoverDocuments(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"a.json", "b.json", "c.json"}
		if len(paths) != len(want) {
			t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
		}
		for i, w := range want {
			if filepath.Base(paths[i]) != w {
				t.Errorf("position %d: expected %s, got %s", i, w, filepath.Base(paths[i]))
			}
		}
	})

	t.Run("missing directory is a read error", func(t *testing.T) {
		t.Parallel()

		_, err := DiscoverDocuments(filepath.Join(t.TempDir(), "absent"))
		if !errors.Is(err, ErrFileRead) {
			t.Errorf("expected ErrFileRead, got %v", err)
		}
	})
}

// TestBatchRun tests sequential and parallel loading.
func TestBatchRun(t *testing.T) {
	t.Parallel()

	// populate creates a dataset whose corpus order is fully determined
	// by the sorted file names.
	populate := func(t *testing.T) string {
		t.Helper()
		dir := t.TempDir()
		writeDocument(t, dir, "01-ads.json", "ads.example", 0.5, `["Advertising", "Analytics"]`)
		writeDocument(t, dir, "02-cdn.json", "cdn.example", 0.3, `[]`)
		writeDocument(t, dir, "03-pixel.json", "pixel.example", 0.5, `["Advertising"]`)
		return dir
	}

	wantOrder := []struct {
		domain, category string
	}{
		{"ads.example", "Advertising"},
		{"ads.example", "Analytics"},
		{"cdn.example", model.Uncategorized},
		{"pixel.example", "Advertising"},
	}

	checkCorpus := func(t *testing.T, corpus model.Corpus) {
		t.Helper()
		if corpus.Len() != len(wantOrder) {
			t.Fatalf("expected %d rows, got %d", len(wantOrder), corpus.Len())
		}
		for i, w := range wantOrder {
			row := corpus.At(i)
			if row.Domain != w.domain || row.Category != w.category {
				t.Errorf("row %d: expected (%s, %s), got (%s, %s)",
					i, w.domain, w.category, row.Domain, row.Category)
			}
		}
	}

	t.Run("sequential load preserves enumeration order", func(t *testing.T) {
		t.Parallel()

		batch := NewBatch(NewLoader())
		corpus, documents, err := batch.LoadDir(context.Background(), populate(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if documents != 3 {
			t.Errorf("expected 3 documents, got %d", documents)
		}
		checkCorpus(t, corpus)
	})

	t.Run("parallel load produces the identical corpus", func(t *testing.T) {
		t.Parallel()

		batch := NewBatch(NewLoader(), WithWorkers(4))
		corpus, _, err := batch.LoadDir(context.Background(), populate(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		checkCorpus(t, corpus)
	})

	t.Run("first malformed document aborts the batch", func(t *testing.T) {
		t.Parallel()

		dir := populate(t)
		if err := os.WriteFile(filepath.Join(dir, "00-broken.json"), []byte("{"), 0600); err != nil {
			t.Fatal(err)
		}

		for _, workers := range []int{1, 4} {
			batch := NewBatch(NewLoader(), WithWorkers(workers))
			_, _, err := batch.LoadDir(context.Background(), dir)
			if !errors.Is(err, ErrParse) {
				t.Errorf("workers=%d: expected ErrParse, got %v", workers, err)
			}
		}
	})

	t.Run("cancelled context aborts the batch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		batch := NewBatch(NewLoader())
		_, _, err := batch.LoadDir(ctx, populate(t))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("empty directory yields an empty corpus", func(t *testing.T) {
		t.Parallel()

		batch := NewBatch(NewLoader())
		corpus, documents, err := batch.LoadDir(context.Background(), t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if documents != 0 || corpus.Len() != 0 {
			t.Errorf("expected empty result, got %d documents, %d rows", documents, corpus.Len())
		}
	})
}
