package analysis

import (
	"strings"
	"testing"

	"github.com/trackerlens/trackerlens/internal/model"
)

// row builds a FlatRow with the given domain, prevalence, and category.
func row(domain string, prevalence float64, category string) model.FlatRow {
	return model.FlatRow{
		DomainScalars: model.DomainScalars{Domain: domain, Prevalence: prevalence},
		Category:      category,
	}
}

// expandRows builds the FlatRows for one domain across its categories,
// using the sentinel when the list is empty.
func expandRows(domain string, prevalence float64, categories ...string) []model.FlatRow {
	if len(categories) == 0 {
		return []model.FlatRow{row(domain, prevalence, model.Uncategorized)}
	}
	rows := make([]model.FlatRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, row(domain, prevalence, c))
	}
	return rows
}

// corpusOf concatenates row groups into a corpus.
func corpusOf(groups ...[]model.FlatRow) model.Corpus {
	var rows []model.FlatRow
	for _, g := range groups {
		rows = append(rows, g...)
	}
	return model.NewCorpus(rows)
}

// TestTopDomains tests the prevalence ranking.
func TestTopDomains(t *testing.T) {
	t.Parallel()

	t.Run("multi-category domain collapses to one entry", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("multi.example", 0.5, "Advertising", "Analytics", "Fraud"),
			expandRows("single.example", 0.4, "Advertising"),
		)

		top := TopDomains(corpus, 25)
		if len(top) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(top))
		}
		if top[0].Domain != "multi.example" || top[1].Domain != "single.example" {
			t.Errorf("unexpected ranking: %+v", top)
		}
	})

	t.Run("sorted descending by prevalence", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("low.example", 0.1),
			expandRows("high.example", 0.9),
			expandRows("mid.example", 0.5),
		)

		top := TopDomains(corpus, 25)
		want := []string{"high.example", "mid.example", "low.example"}
		for i, w := range want {
			if top[i].Domain != w {
				t.Errorf("position %d: expected %s, got %s", i, w, top[i].Domain)
			}
		}
	})

	t.Run("equal prevalence retains input order", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("first.example", 0.3),
			expandRows("second.example", 0.3),
			expandRows("third.example", 0.3),
		)

		top := TopDomains(corpus, 25)
		want := []string{"first.example", "second.example", "third.example"}
		for i, w := range want {
			if top[i].Domain != w {
				t.Errorf("position %d: expected %s, got %s", i, w, top[i].Domain)
			}
		}
	})

	t.Run("truncates to n", func(t *testing.T) {
		t.Parallel()

		groups := make([][]model.FlatRow, 0, 30)
		for i := 0; i < 30; i++ {
			groups = append(groups, expandRows(strings.Repeat("x", i+1)+".example", float64(30-i)/100))
		}

		top := TopDomains(corpusOf(groups...), 25)
		if len(top) != 25 {
			t.Errorf("expected 25 entries, got %d", len(top))
		}
	})

	t.Run("fewer eligible rows than n yields all", func(t *testing.T) {
		t.Parallel()

		top := TopDomains(corpusOf(expandRows("only.example", 0.1)), 25)
		if len(top) != 1 {
			t.Errorf("expected 1 entry, got %d", len(top))
		}
	})

	t.Run("empty corpus yields empty ranking", func(t *testing.T) {
		t.Parallel()

		top := TopDomains(model.NewCorpus(nil), 25)
		if len(top) != 0 {
			t.Errorf("expected empty ranking, got %d entries", len(top))
		}
	})

	t.Run("category is dropped from the projection", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(expandRows("x.example", 0.2, "Advertising", "Analytics"))
		top := TopDomains(corpus, 25)
		if len(top) != 1 {
			t.Fatalf("expected projection to dedupe, got %d entries", len(top))
		}
	})
}

// TestCategoryCounts tests the frequency query.
func TestCategoryCounts(t *testing.T) {
	t.Parallel()

	t.Run("sentinel rows are excluded entirely", func(t *testing.T) {
		t.Parallel()

		// Domain A has ["Ads", "Analytics"], domain B has no tags.
		corpus := corpusOf(
			expandRows("a.example", 0.1, "Ads", "Analytics"),
			expandRows("b.example", 0.2),
		)

		counts := CategoryCounts(corpus)
		if len(counts) != 2 {
			t.Fatalf("expected 2 categories, got %d: %+v", len(counts), counts)
		}
		for _, c := range counts {
			if c.Category == model.Uncategorized {
				t.Error("sentinel must not appear in the frequency table")
			}
			if c.Count != 1 {
				t.Errorf("expected count 1 for %s, got %d", c.Category, c.Count)
			}
		}
	})

	t.Run("sorted ascending with first-seen tie-break", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("a.example", 0.1, "Big", "Tie1", "Tie2"),
			expandRows("b.example", 0.1, "Big", "Tie1", "Tie2"),
			expandRows("c.example", 0.1, "Big", "Small"),
		)

		counts := CategoryCounts(corpus)
		want := []CategoryCount{
			{"Small", 1},
			{"Tie1", 2},
			{"Tie2", 2},
			{"Big", 3},
		}
		if len(counts) != len(want) {
			t.Fatalf("expected %d categories, got %d", len(want), len(counts))
		}
		for i, w := range want {
			if counts[i] != w {
				t.Errorf("position %d: expected %+v, got %+v", i, w, counts[i])
			}
		}
	})

	t.Run("sum of counts equals total tags", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("a.example", 0.1, "Ads", "Analytics", "Fraud"),
			expandRows("b.example", 0.2, "Ads"),
			expandRows("c.example", 0.3),
		)

		total := 0
		for _, c := range CategoryCounts(corpus) {
			total += c.Count
		}
		if total != 4 {
			t.Errorf("expected 4 total tags, got %d", total)
		}
	})

	t.Run("empty corpus yields empty counts", func(t *testing.T) {
		t.Parallel()

		if counts := CategoryCounts(model.NewCorpus(nil)); len(counts) != 0 {
			t.Errorf("expected empty counts, got %+v", counts)
		}
	})
}

// TestTopCategories tests the leading-category selection.
func TestTopCategories(t *testing.T) {
	t.Parallel()

	t.Run("descending with ties in original relative order", func(t *testing.T) {
		t.Parallel()

		// Six categories with counts [10, 8, 8, 5, 3, 1]: EightA was seen
		// before EightB, so it must stay ahead after the descending sort.
		groups := make([][]model.FlatRow, 0, 32)
		emit := func(category string, count int) {
			for i := 0; i < count; i++ {
				groups = append(groups, expandRows("d.example", 0.1, category))
			}
		}
		emit("Ten", 10)
		emit("EightA", 8)
		emit("EightB", 8)
		emit("Five", 5)
		emit("Three", 3)
		emit("One", 1)

		counts := CategoryCounts(corpusOf(groups...))
		top := TopCategories(counts, 5)

		want := []CategoryCount{
			{"Ten", 10},
			{"EightA", 8},
			{"EightB", 8},
			{"Five", 5},
			{"Three", 3},
		}
		if len(top) != len(want) {
			t.Fatalf("expected %d categories, got %d", len(want), len(top))
		}
		for i, w := range want {
			if top[i] != w {
				t.Errorf("position %d: expected %+v, got %+v", i, w, top[i])
			}
		}
	})

	t.Run("does not modify the ascending input", func(t *testing.T) {
		t.Parallel()

		counts := []CategoryCount{{"A", 1}, {"B", 2}}
		TopCategories(counts, 5)
		if counts[0].Category != "A" || counts[1].Category != "B" {
			t.Errorf("input was reordered: %+v", counts)
		}
	})

	t.Run("fewer categories than n yields all", func(t *testing.T) {
		t.Parallel()

		top := TopCategories([]CategoryCount{{"A", 1}}, 5)
		if len(top) != 1 {
			t.Errorf("expected 1 category, got %d", len(top))
		}
	})
}

// TestTopPerCategory tests the per-category leader selection.
func TestTopPerCategory(t *testing.T) {
	t.Parallel()

	t.Run("domain under two categories yields two distinct entries", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("x.example", 0.40, "Ads", "Analytics"),
			expandRows("y.example", 0.10, "Ads"),
			expandRows("z.example", 0.20, "Analytics"),
		)
		cats := []CategoryCount{{"Ads", 2}, {"Analytics", 2}}

		leaders := TopPerCategory(corpus, cats, 5)
		keys := make(map[string]bool, len(leaders))
		for _, l := range leaders {
			keys[l.Key()] = true
		}
		if !keys["x.example|Ads"] || !keys["x.example|Analytics"] {
			t.Errorf("expected x.example under both categories, got %v", keys)
		}
		if len(leaders) != 4 {
			t.Errorf("expected 4 entries, got %d", len(leaders))
		}
	})

	t.Run("selects the n highest in ascending order", func(t *testing.T) {
		t.Parallel()

		groups := [][]model.FlatRow{
			expandRows("a.example", 0.1, "Ads"),
			expandRows("b.example", 0.6, "Ads"),
			expandRows("c.example", 0.3, "Ads"),
			expandRows("d.example", 0.5, "Ads"),
			expandRows("e.example", 0.2, "Ads"),
			expandRows("f.example", 0.4, "Ads"),
		}
		leaders := TopPerCategory(corpusOf(groups...), []CategoryCount{{"Ads", 6}}, 5)

		// The lowest-prevalence row (a.example, 0.1) is cut; the rest are
		// materialized ascending.
		want := []string{"e.example", "c.example", "f.example", "d.example", "b.example"}
		if len(leaders) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(leaders))
		}
		for i, w := range want {
			if leaders[i].Domain != w {
				t.Errorf("position %d: expected %s, got %s", i, w, leaders[i].Domain)
			}
		}
	})

	t.Run("order index is strictly increasing category-major", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("a.example", 0.1, "Ads"),
			expandRows("b.example", 0.2, "Ads", "Analytics"),
			expandRows("c.example", 0.3, "Analytics"),
		)
		cats := []CategoryCount{{"Ads", 2}, {"Analytics", 2}}

		leaders := TopPerCategory(corpus, cats, 5)
		for i, l := range leaders {
			if l.Order != i+1 {
				t.Errorf("entry %d: expected order %d, got %d", i, i+1, l.Order)
			}
		}
		// Category-major: all Ads entries precede all Analytics entries.
		if leaders[0].Category != "Ads" || leaders[1].Category != "Ads" ||
			leaders[2].Category != "Analytics" || leaders[3].Category != "Analytics" {
			t.Errorf("expected category-major grouping, got %+v", leaders)
		}
	})

	t.Run("rows outside the category set are ignored", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("a.example", 0.1, "Ads"),
			expandRows("b.example", 0.9, "Obscure"),
			expandRows("c.example", 0.9),
		)

		leaders := TopPerCategory(corpus, []CategoryCount{{"Ads", 1}}, 5)
		if len(leaders) != 1 || leaders[0].Domain != "a.example" {
			t.Errorf("expected only the Ads row, got %+v", leaders)
		}
	})

	t.Run("empty corpus yields empty table", func(t *testing.T) {
		t.Parallel()

		leaders := TopPerCategory(model.NewCorpus(nil), []CategoryCount{{"Ads", 1}}, 5)
		if len(leaders) != 0 {
			t.Errorf("expected empty table, got %+v", leaders)
		}
	})
}

// TestAnalyze tests the bundled run.
func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("empty corpus yields empty tables, not an error", func(t *testing.T) {
		t.Parallel()

		result := Analyze(model.NewCorpus(nil), Options{})
		if result.Rows != 0 || result.Domains != 0 {
			t.Errorf("expected empty counters, got %+v", result)
		}
		if len(result.TopDomains) != 0 || len(result.CategoryCounts) != 0 ||
			len(result.TopCategories) != 0 || len(result.TopPerCategory) != 0 {
			t.Errorf("expected empty tables, got %+v", result)
		}
	})

	t.Run("zero options use the defaults", func(t *testing.T) {
		t.Parallel()

		opts := Options{}.withDefaults()
		if opts.TopDomains != DefaultTopDomains ||
			opts.TopCategories != DefaultTopCategories ||
			opts.PerCategory != DefaultPerCategory {
			t.Errorf("unexpected defaults: %+v", opts)
		}
	})

	t.Run("counts distinct domains and rows", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("a.example", 0.1, "Ads", "Analytics"),
			expandRows("b.example", 0.2),
		)
		result := Analyze(corpus, Options{})
		if result.Domains != 2 {
			t.Errorf("expected 2 domains, got %d", result.Domains)
		}
		if result.Rows != 3 {
			t.Errorf("expected 3 rows, got %d", result.Rows)
		}
	})

	t.Run("per-category table follows top-category order", func(t *testing.T) {
		t.Parallel()

		corpus := corpusOf(
			expandRows("a.example", 0.1, "Rare"),
			expandRows("b.example", 0.2, "Common"),
			expandRows("c.example", 0.3, "Common"),
		)
		result := Analyze(corpus, Options{})

		if len(result.TopPerCategory) == 0 {
			t.Fatal("expected per-category entries")
		}
		// Common (count 2) leads, so its entries come first.
		if result.TopPerCategory[0].Category != "Common" {
			t.Errorf("expected Common first, got %s", result.TopPerCategory[0].Category)
		}
	})
}
