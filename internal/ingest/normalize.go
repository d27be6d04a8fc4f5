package ingest

import "github.com/trackerlens/trackerlens/internal/model"

// Normalize maps a DomainRecord to its fixed scalar tuple.
//
// This is a pure function. Absent optional fields stay nil pointers; they
// are never coerced to 0, "", or an empty collection, so a legitimate zero
// value (e.g. a cookie percentage of 0) is never confused with "not
// present".
func Normalize(record *model.DomainRecord) model.DomainScalars {
	return model.DomainScalars{
		Domain:           record.Domain,
		Owner:            record.Owner,
		Prevalence:       record.Prevalence,
		Sites:            record.Sites,
		Fingerprinting:   record.Fingerprinting,
		Cookies:          record.Cookies,
		PerformanceTime:  record.PerformanceTime,
		PerformanceSize:  record.PerformanceSize,
		PerformanceCPU:   record.PerformanceCPU,
		PerformanceCache: record.PerformanceCache,
	}
}
