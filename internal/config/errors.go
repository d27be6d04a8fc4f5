package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoInputDir is returned when no input directory is specified.
	ErrNoInputDir = errors.New("no input directory specified: provide the crawl data directory as an argument")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	// Zero workers would mean no loading at all.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidTopDomains is returned when the ranking length is not positive.
	ErrInvalidTopDomains = errors.New("invalid top domains: must be positive")

	// ErrInvalidTopCategories is returned when the leading-category subset
	// size is not positive.
	ErrInvalidTopCategories = errors.New("invalid top categories: must be positive")

	// ErrInvalidPerCategory is returned when the per-category selection size
	// is not positive.
	ErrInvalidPerCategory = errors.New("invalid per-category size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one primary output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
