package analysis

import (
	"sort"

	"github.com/trackerlens/trackerlens/internal/model"
)

// CategoryLeader is one row of the top-domains-per-category table.
type CategoryLeader struct {
	// Order is a strictly increasing index across the whole table,
	// category-major and prevalence-ascending within a category. It exists
	// for downstream layout and carries no meaning beyond ordering.
	Order int `json:"order"`

	// Category is the category under which the domain was selected.
	Category string `json:"category"`

	// Domain is the tracking domain name.
	Domain string `json:"domain"`

	// Owner is the owner display name, or nil if unknown.
	Owner *string `json:"owner"`

	// Prevalence is the domain's prevalence.
	Prevalence float64 `json:"prevalence"`

	// Fingerprinting is the domain's fingerprinting level.
	Fingerprinting model.FingerprintingLevel `json:"fingerprinting"`

	// Cookies is the domain's cookie percentage.
	Cookies float64 `json:"cookies"`
}

// Key uniquely identifies the entry within the table. A domain selected
// under two distinct categories yields two entries with distinct keys; the
// table never merges them.
func (l CategoryLeader) Key() string {
	return l.Domain + "|" + l.Category
}

// TopPerCategory returns the n highest-prevalence rows within each of the
// given categories, materialized in prevalence-ascending order for
// downstream layout.
//
// Categories are processed in the order given, which is expected to be the
// TopCategories order; rows whose category is not listed are ignored. Within
// a category the rows are stable-sorted ascending by prevalence and the
// trailing n are kept, so when equal-prevalence rows straddle the cutoff the
// later corpus rows win. Categories with fewer than n rows contribute all of
// them.
func TopPerCategory(corpus model.Corpus, categories []CategoryCount, n int) []CategoryLeader {
	wanted := make(map[string]int, len(categories))
	for i, c := range categories {
		wanted[c.Category] = i
	}

	// Bucket rows per category in corpus order.
	buckets := make([][]model.FlatRow, len(categories))
	for _, row := range corpus.Rows() {
		i, ok := wanted[row.Category]
		if !ok {
			continue
		}
		buckets[i] = append(buckets[i], row)
	}

	leaders := make([]CategoryLeader, 0, len(categories)*n)
	order := 0
	for i, c := range categories {
		rows := buckets[i]
		sort.SliceStable(rows, func(a, b int) bool {
			return rows[a].Prevalence < rows[b].Prevalence
		})

		if n >= 0 && len(rows) > n {
			rows = rows[len(rows)-n:]
		}

		for _, row := range rows {
			order++
			leaders = append(leaders, CategoryLeader{
				Order:          order,
				Category:       c.Category,
				Domain:         row.Domain,
				Owner:          row.Owner,
				Prevalence:     row.Prevalence,
				Fingerprinting: row.Fingerprinting,
				Cookies:        row.Cookies,
			})
		}
	}
	return leaders
}
