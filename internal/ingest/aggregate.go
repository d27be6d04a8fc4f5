package ingest

import "github.com/trackerlens/trackerlens/internal/model"

// Aggregate concatenates per-domain row groups into the final Corpus.
//
// The groups must already be in domain-enumeration order; Aggregate performs
// no deduplication, filtering, or sorting. It is the single writer of the
// Corpus: once it returns, the corpus is read-only for the remainder of the
// process.
func Aggregate(groups [][]model.FlatRow) model.Corpus {
	total := 0
	for _, group := range groups {
		total += len(group)
	}

	rows := make([]model.FlatRow, 0, total)
	for _, group := range groups {
		rows = append(rows, group...)
	}
	return model.NewCorpus(rows)
}
