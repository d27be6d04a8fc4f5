package model

// Uncategorized is the sentinel category assigned to a FlatRow when the
// source document carried no category tags. It is the only value the
// Category field can take that does not come from a source document.
const Uncategorized = "Uncategorized"

// DomainScalars is the fixed set of domain-level scalar fields shared by
// every FlatRow of one domain. Optional fields are pointers; nil means the
// field was absent from the source document.
type DomainScalars struct {
	// Domain is the tracking domain name.
	Domain string `json:"domain"`

	// Owner is the owner display name, or nil if unknown.
	Owner *string `json:"owner"`

	// Prevalence is the fraction of crawled sites the domain appeared on.
	Prevalence float64 `json:"prevalence"`

	// Sites is the absolute number of sites the domain appeared on.
	Sites int64 `json:"sites"`

	// Fingerprinting is the fingerprinting level (0-3).
	Fingerprinting FingerprintingLevel `json:"fingerprinting"`

	// Cookies is the fraction of crawled sites on which cookies were set.
	Cookies float64 `json:"cookies"`

	// PerformanceTime, PerformanceSize, PerformanceCPU, and PerformanceCache
	// are the optional performance metrics, nil when not measured.
	PerformanceTime  *float64 `json:"performance_time"`
	PerformanceSize  *float64 `json:"performance_size"`
	PerformanceCPU   *float64 `json:"performance_cpu"`
	PerformanceCache *float64 `json:"performance_cache"`
}

// OwnerName returns the owner display name, or the empty string when the
// owner is unknown. Useful for display code that cannot carry a pointer.
func (s DomainScalars) OwnerName() string {
	if s.Owner == nil {
		return ""
	}
	return *s.Owner
}

// FlatRow is one (domain, category) pair plus the domain's scalar
// attributes. A domain with N category tags produces N FlatRows that differ
// only in Category; a domain with no tags produces exactly one FlatRow with
// Category set to Uncategorized.
type FlatRow struct {
	DomainScalars

	// Category is never empty: it is either a source category tag or the
	// Uncategorized sentinel.
	Category string `json:"category"`
}

// Corpus is the full ordered collection of FlatRows across all domains.
// Order is domain-enumeration order, then category-list order within a
// domain. A Corpus is built once by the aggregator and read-only afterwards.
//
// Design decision: The row slice is unexported so that nothing outside the
// constructor can append to or reorder a built Corpus. Readers iterate via
// Len/At or Rows; Rows returns the backing slice for efficiency and callers
// must treat it as read-only.
type Corpus struct {
	rows []FlatRow
}

// NewCorpus builds a Corpus from rows in their final order.
// The slice is not copied; the caller must not retain it.
func NewCorpus(rows []FlatRow) Corpus {
	return Corpus{rows: rows}
}

// Len returns the number of FlatRows in the corpus.
func (c Corpus) Len() int {
	return len(c.rows)
}

// At returns the FlatRow at index i.
func (c Corpus) At(i int) FlatRow {
	return c.rows[i]
}

// Rows returns the underlying rows in corpus order.
// The returned slice must not be modified.
func (c Corpus) Rows() []FlatRow {
	return c.rows
}
