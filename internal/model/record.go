package model

// FingerprintingLevel indicates how likely a domain is to use
// tracking-oriented browser APIs. It is an ordinal scale from 0 (no
// fingerprinting observed) to 3 (aggressive fingerprinting).
//
// Design decision: We use a dedicated integer type rather than a bare int
// for efficiency in comparisons while still providing a String() method
// for human-readable output.
type FingerprintingLevel int

const (
	// FingerprintingNone indicates no fingerprinting-related API use was observed.
	FingerprintingNone FingerprintingLevel = iota

	// FingerprintingLow indicates occasional use of APIs that could support
	// fingerprinting but are common in benign scripts.
	FingerprintingLow

	// FingerprintingMedium indicates use of several APIs commonly combined
	// for fingerprinting.
	FingerprintingMedium

	// FingerprintingHigh indicates heavy use of APIs with little purpose
	// other than fingerprinting.
	FingerprintingHigh
)

// String returns a human-readable representation of the fingerprinting level.
func (f FingerprintingLevel) String() string {
	switch f {
	case FingerprintingNone:
		return "NONE"
	case FingerprintingLow:
		return "LOW"
	case FingerprintingMedium:
		return "MEDIUM"
	case FingerprintingHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether the level is within the defined 0-3 range.
func (f FingerprintingLevel) Valid() bool {
	return f >= FingerprintingNone && f <= FingerprintingHigh
}

// DomainRecord is one parsed source document describing a third-party
// tracking domain observed in a site crawl.
//
// Optional fields are pointers: nil means the field was absent from the
// source document. A present-but-zero value (e.g. a cookie percentage of 0)
// keeps a non-nil pointer, so "absent" and "zero" are never confused.
//
// DomainRecord instances are transient. They exist between loading and
// category expansion and are discarded once their FlatRows are built.
type DomainRecord struct {
	// Domain is the tracking domain name. Required.
	Domain string

	// Owner is the display name of the organization operating the domain.
	// Optional; nil when the source document has no owner information.
	Owner *string

	// Prevalence is the fraction of crawled sites on which the domain was
	// observed as a third party, in [0, 1]. Required.
	Prevalence float64

	// Sites is the absolute number of sites the domain was observed on.
	// Required, non-negative.
	Sites int64

	// Fingerprinting is the fingerprinting level (0-3). Required.
	Fingerprinting FingerprintingLevel

	// Cookies is the fraction of crawled sites on which the domain set
	// cookies, in [0, 1]. Required.
	Cookies float64

	// PerformanceTime is the measured load-time impact. Optional.
	PerformanceTime *float64

	// PerformanceSize is the measured transfer-size impact. Optional.
	PerformanceSize *float64

	// PerformanceCPU is the measured CPU impact. Optional.
	PerformanceCPU *float64

	// PerformanceCache is the measured cache behavior score. Optional.
	PerformanceCache *float64

	// Categories lists why the domain is used as a third party
	// (e.g. "Advertising", "Audience Measurement"). A domain may have zero,
	// one, or many categories; source order is preserved.
	Categories []string
}
