package analysis

import (
	"time"

	"github.com/trackerlens/trackerlens/internal/model"
)

// Default selection sizes for the three queries.
const (
	// DefaultTopDomains is the length of the prevalence ranking.
	DefaultTopDomains = 25

	// DefaultTopCategories is the size of the leading-category subset.
	DefaultTopCategories = 5

	// DefaultPerCategory is the number of domains kept per leading category.
	DefaultPerCategory = 5
)

// Result bundles the output tables of one analysis run.
//
// Design decision: We wrap the three query results in a single struct rather
// than returning them separately because the report writers and the run
// database always consume them together, and the struct doubles as the JSON
// report shape.
type Result struct {
	// AnalyzedAt is the timestamp when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Domains is the number of distinct domains in the corpus.
	Domains int `json:"domains"`

	// Rows is the total number of FlatRows in the corpus.
	Rows int `json:"rows"`

	// TopDomains is the prevalence ranking (descending).
	TopDomains []model.DomainScalars `json:"top_domains"`

	// CategoryCounts is the full category-frequency table (ascending).
	CategoryCounts []CategoryCount `json:"category_counts"`

	// TopCategories is the leading-category subset (descending).
	TopCategories []CategoryCount `json:"top_categories"`

	// TopPerCategory is the top-domains-per-category table, category-major
	// in TopCategories order.
	TopPerCategory []CategoryLeader `json:"top_per_category"`
}

// Options controls the selection sizes of an analysis run.
type Options struct {
	// TopDomains is the prevalence-ranking length. Zero means default.
	TopDomains int

	// TopCategories is the leading-category subset size. Zero means default.
	TopCategories int

	// PerCategory is the per-category selection size. Zero means default.
	PerCategory int
}

// withDefaults fills zero fields with the package defaults.
func (o Options) withDefaults() Options {
	if o.TopDomains == 0 {
		o.TopDomains = DefaultTopDomains
	}
	if o.TopCategories == 0 {
		o.TopCategories = DefaultTopCategories
	}
	if o.PerCategory == 0 {
		o.PerCategory = DefaultPerCategory
	}
	return o
}

// Analyze runs the three queries over the corpus and bundles their results.
// The corpus is read-only throughout; an empty corpus yields empty tables,
// not an error.
func Analyze(corpus model.Corpus, opts Options) *Result {
	opts = opts.withDefaults()

	counts := CategoryCounts(corpus)
	top := TopCategories(counts, opts.TopCategories)

	distinct := make(map[string]bool, corpus.Len())
	for _, row := range corpus.Rows() {
		distinct[row.Domain] = true
	}

	return &Result{
		AnalyzedAt:     time.Now(),
		Domains:        len(distinct),
		Rows:           corpus.Len(),
		TopDomains:     TopDomains(corpus, opts.TopDomains),
		CategoryCounts: counts,
		TopCategories:  top,
		TopPerCategory: TopPerCategory(corpus, top, opts.PerCategory),
	}
}
