package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultWorkers is the number of concurrently loaded source documents.
	// Loading is I/O bound on small JSON files, so a modest degree of
	// concurrency captures most of the benefit without reordering risk:
	// results are reassembled deterministically regardless of this value.
	DefaultWorkers = 8

	// DefaultTopDomains is the length of the prevalence ranking.
	DefaultTopDomains = 25

	// DefaultTopCategories is the size of the leading-category subset.
	DefaultTopCategories = 5

	// DefaultPerCategory is the number of domains kept per leading category.
	DefaultPerCategory = 5

	// AppName is the application name used for XDG directory paths.
	AppName = "trackerlens"
)

// Config holds all configuration options for TrackerLens.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// InputDir is the directory containing one JSON document per domain.
	// The directory is only ever read.
	InputDir string

	// Workers is the number of source documents loaded concurrently.
	// 1 disables concurrency entirely.
	Workers int

	// TopDomains is the prevalence-ranking length.
	TopDomains int

	// TopCategories is the leading-category subset size.
	TopCategories int

	// PerCategory is the per-category selection size.
	PerCategory int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// CSVDir, when set, additionally writes one CSV file per result table
	// into the given directory.
	CSVDir string

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .trackerlens in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DBDir is the directory path for storing the SQLite run database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to save analysis runs to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (worker count, selection
// sizes). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Workers:       DefaultWorkers,
		TopDomains:    DefaultTopDomains,
		TopCategories: DefaultTopCategories,
		PerCategory:   DefaultPerCategory,
		DBDir:         XDGDataDir(),
		SaveToDB:      true,
	}
}

// XDGDataDir returns the XDG data directory for TrackerLens.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/trackerlens
// On macOS: ~/Library/Application Support/trackerlens
// On Windows: %LOCALAPPDATA%\trackerlens
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for TrackerLens.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any loading begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return ErrNoInputDir
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.TopDomains <= 0 {
		return ErrInvalidTopDomains
	}

	if c.TopCategories <= 0 {
		return ErrInvalidTopCategories
	}

	if c.PerCategory <= 0 {
		return ErrInvalidPerCategory
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
