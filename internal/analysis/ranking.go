package analysis

import (
	"sort"

	"github.com/trackerlens/trackerlens/internal/model"
)

// TopDomains returns the n most prevalent distinct domains.
//
// Each FlatRow is projected to its scalar tuple (Category dropped) and rows
// that are then fully identical are collapsed to one: a domain expanded into
// N category rows folds back to a single entry at its first corpus position.
// Rows that still differ in any scalar field stay distinct.
//
// The result is stable-sorted descending by prevalence: entries with equal
// prevalence keep their corpus-relative order. Fewer than n distinct entries
// yields all of them. A negative n disables truncation.
func TopDomains(corpus model.Corpus, n int) []model.DomainScalars {
	// Index kept entries by domain so the identity check only walks the
	// handful of entries sharing a name, not the whole projection.
	kept := make(map[string][]int, corpus.Len())
	domains := make([]model.DomainScalars, 0, corpus.Len())

rows:
	for _, row := range corpus.Rows() {
		for _, i := range kept[row.Domain] {
			if scalarsEqual(domains[i], row.DomainScalars) {
				continue rows
			}
		}
		kept[row.Domain] = append(kept[row.Domain], len(domains))
		domains = append(domains, row.DomainScalars)
	}

	sort.SliceStable(domains, func(i, j int) bool {
		return domains[i].Prevalence > domains[j].Prevalence
	})

	if n >= 0 && len(domains) > n {
		domains = domains[:n]
	}
	return domains
}

// scalarsEqual reports whether two scalar tuples are fully identical.
// Optional fields compare by presence and value, not by pointer identity.
func scalarsEqual(a, b model.DomainScalars) bool {
	return a.Domain == b.Domain &&
		strPtrEqual(a.Owner, b.Owner) &&
		a.Prevalence == b.Prevalence &&
		a.Sites == b.Sites &&
		a.Fingerprinting == b.Fingerprinting &&
		a.Cookies == b.Cookies &&
		floatPtrEqual(a.PerformanceTime, b.PerformanceTime) &&
		floatPtrEqual(a.PerformanceSize, b.PerformanceSize) &&
		floatPtrEqual(a.PerformanceCPU, b.PerformanceCPU) &&
		floatPtrEqual(a.PerformanceCache, b.PerformanceCache)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
