// Package ingest turns a directory of per-domain JSON documents into an
// immutable model.Corpus of flat (domain, category) rows.
//
// The pipeline is a sequence of pure stages:
//   - Loader: one JSON document -> model.DomainRecord
//   - Normalize: DomainRecord -> model.DomainScalars (nil for absent optionals)
//   - Expand: scalars + category tags -> one or more model.FlatRow
//   - Aggregate: all domains' rows -> model.Corpus
//
// Ingestion is fail-fast: the first unreadable, malformed, or
// schema-violating document aborts the whole batch and no partial corpus is
// produced. The Batch type optionally loads files concurrently; results are
// reassembled in sorted-path order so the corpus is identical to the one the
// sequential path builds.
package ingest
