package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/net/publicsuffix"

	"github.com/trackerlens/trackerlens/internal/model"
)

// document mirrors the JSON schema of one source file.
//
// Design decision: Every required field is a pointer so that a missing key
// is distinguishable from a present zero value. encoding/json leaves the
// pointer nil for missing keys, which lets us report SchemaViolation with
// the exact field name instead of silently reading a zero.
type document struct {
	Domain         *string   `json:"domain"`
	Owner          *ownerDoc `json:"owner"`
	Prevalence     *float64  `json:"prevalence"`
	Sites          *int64    `json:"sites"`
	Fingerprinting *int      `json:"fingerprinting"`
	Cookies        *float64  `json:"cookies"`
	Performance    *perfDoc  `json:"performance"`
	Categories     []string  `json:"categories"`
}

// ownerDoc is the nested owner object. Only the display name is used.
type ownerDoc struct {
	DisplayName *string `json:"displayName"` //nolint:tagliatelle // upstream schema uses camelCase
}

// perfDoc is the nested performance metrics object. Each metric is optional.
type perfDoc struct {
	Time  *float64 `json:"time"`
	Size  *float64 `json:"size"`
	CPU   *float64 `json:"cpu"`
	Cache *float64 `json:"cache"`
}

// Loader parses per-domain JSON documents into model.DomainRecord values.
type Loader struct {
	// logger receives diagnostics about suspicious but legal input,
	// such as domains without a known public suffix.
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a custom logger for the loader.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = slog.Default()
	}

	return l
}

// LoadFile reads and parses one source document.
// The returned error wraps ErrFileRead, ErrParse, or ErrSchemaViolation
// together with the file path.
func (l *Loader) LoadFile(path string) (*model.DomainRecord, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	return l.Parse(data, path)
}

// Parse parses one source document. The name identifies the source in error
// messages and diagnostics; it is typically the file path.
func (l *Loader) Parse(data []byte, name string) (*model.DomainRecord, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		// A type mismatch means the document is well-formed JSON but a
		// field has the wrong shape: that is a schema violation, not a
		// parse failure.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// An empty field name means the top-level value itself has the
			// wrong shape (an array or a bare scalar instead of an object).
			if typeErr.Field == "" {
				return nil, fmt.Errorf("%w: %s: document is not an object: %v", ErrSchemaViolation, name, err)
			}
			return nil, fmt.Errorf("%w: %s: field %q: %v", ErrSchemaViolation, name, typeErr.Field, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, name, err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaViolation, name, err)
	}

	record := &model.DomainRecord{
		Domain:         *doc.Domain,
		Prevalence:     *doc.Prevalence,
		Sites:          *doc.Sites,
		Fingerprinting: model.FingerprintingLevel(*doc.Fingerprinting),
		Cookies:        *doc.Cookies,
		Categories:     doc.Categories,
	}
	if doc.Owner != nil {
		record.Owner = doc.Owner.DisplayName
	}
	if doc.Performance != nil {
		record.PerformanceTime = doc.Performance.Time
		record.PerformanceSize = doc.Performance.Size
		record.PerformanceCPU = doc.Performance.CPU
		record.PerformanceCache = doc.Performance.Cache
	}

	// Crawl data occasionally contains hostnames that are not registrable
	// domains (raw IPs, internal names). That is legal input, but worth a
	// diagnostic when debugging odd rankings.
	if suffix, icann := publicsuffix.PublicSuffix(record.Domain); !icann {
		l.logger.Debug("domain has no ICANN public suffix",
			"domain", record.Domain,
			"suffix", suffix,
			"source", name,
		)
	}

	return record, nil
}

// validateDocument checks that every mandatory field is present and within
// its documented range. Optional fields are never validated for presence.
func validateDocument(doc *document) error {
	switch {
	case doc.Domain == nil:
		return errors.New("missing required field \"domain\"")
	case *doc.Domain == "":
		return errors.New("field \"domain\" must not be empty")
	case doc.Prevalence == nil:
		return errors.New("missing required field \"prevalence\"")
	case *doc.Prevalence < 0 || *doc.Prevalence > 1:
		return fmt.Errorf("field \"prevalence\" must be in [0, 1], got %v", *doc.Prevalence)
	case doc.Sites == nil:
		return errors.New("missing required field \"sites\"")
	case *doc.Sites < 0:
		return fmt.Errorf("field \"sites\" must be non-negative, got %d", *doc.Sites)
	case doc.Fingerprinting == nil:
		return errors.New("missing required field \"fingerprinting\"")
	case !model.FingerprintingLevel(*doc.Fingerprinting).Valid():
		return fmt.Errorf("field \"fingerprinting\" must be in 0..3, got %d", *doc.Fingerprinting)
	case doc.Cookies == nil:
		return errors.New("missing required field \"cookies\"")
	case *doc.Cookies < 0 || *doc.Cookies > 1:
		return fmt.Errorf("field \"cookies\" must be in [0, 1], got %v", *doc.Cookies)
	}
	return nil
}
