package analysis

import (
	"sort"

	"github.com/trackerlens/trackerlens/internal/model"
)

// CategoryCount is one entry of the category-frequency table.
type CategoryCount struct {
	// Category is a source category tag. Never the Uncategorized sentinel.
	Category string `json:"category"`

	// Count is the number of FlatRows carrying the category. Always > 0:
	// unobserved categories are not represented.
	Count int `json:"count"`
}

// CategoryCounts returns the frequency of every observed category,
// sorted ascending by count.
//
// Rows carrying the Uncategorized sentinel are excluded entirely; they
// describe the absence of a category, not a category. Ties are broken by
// first-seen corpus order, which together with the stable sort makes the
// ascending presentation order fully deterministic.
func CategoryCounts(corpus model.Corpus) []CategoryCount {
	index := make(map[string]int, 16)
	counts := make([]CategoryCount, 0, 16)

	for _, row := range corpus.Rows() {
		if row.Category == model.Uncategorized {
			continue
		}
		i, ok := index[row.Category]
		if !ok {
			i = len(counts)
			index[row.Category] = i
			counts = append(counts, CategoryCount{Category: row.Category})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count < counts[j].Count
	})
	return counts
}

// TopCategories returns the n most frequent categories, descending by count.
//
// Counts must be the CategoryCounts result (or any slice whose ties are
// already in the desired order); the stable sort preserves the relative
// order of equal counts. Fewer than n categories yields all of them.
func TopCategories(counts []CategoryCount, n int) []CategoryCount {
	// Copy so the caller's ascending presentation is left untouched.
	// Equal counts are already in first-seen order there, and the stable
	// descending sort keeps them that way.
	top := make([]CategoryCount, len(counts))
	copy(top, counts)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})

	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}
