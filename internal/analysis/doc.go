// Package analysis implements the three read-only queries over a corpus of
// flat tracker rows:
//
//   - TopDomains: prevalence ranking of distinct domains
//   - CategoryCounts / TopCategories: category frequency
//   - TopPerCategory: the highest-prevalence rows within each leading category
//
// All queries take the corpus as sole input and never modify it. Ties are
// always broken by stable corpus order, so results are reproducible for a
// fixed corpus. Short or empty corpora degrade to shorter or empty results,
// never to errors.
package analysis
