// Package model defines the core data structures used throughout TrackerLens.
//
// This package contains the following main types:
//   - DomainRecord: One parsed source document describing a third-party domain
//   - DomainScalars: The fixed set of domain-level scalar fields
//   - FlatRow: One (domain, category) pair plus the domain's scalars
//   - Corpus: The ordered, immutable collection of FlatRows across all domains
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (ingest, analysis, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
