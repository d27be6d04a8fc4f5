package ingest

import "errors"

// Ingestion error kinds. Every error returned from this package wraps exactly
// one of these sentinels together with the identity of the offending source
// document, so callers can both classify with errors.Is and report the cause.
//
// Design decision: We use package-level sentinel errors rather than dedicated
// error types because callers only ever branch on the kind, never on
// structured fields. The file path and underlying cause travel in the wrap
// chain built with fmt.Errorf("%w").
var (
	// ErrFileRead is returned when a source document cannot be opened or read.
	ErrFileRead = errors.New("failed to read source document")

	// ErrParse is returned when a source document is not well-formed JSON.
	ErrParse = errors.New("malformed source document")

	// ErrSchemaViolation is returned when a mandatory field is missing, has
	// the wrong type, or is outside its documented range.
	ErrSchemaViolation = errors.New("schema violation")
)
