// Package database provides SQLite-based storage for TrackerLens.
//
// This package implements the RunDB, which stores:
//   - Analysis run summaries (source directory, corpus size, timestamp)
//   - The prevalence ranking of each run
//   - The category-frequency table of each run
//
// Stored runs back the history and compare commands: comparing two runs of
// the same crawl directory shows which domains entered or left the ranking
// and how category counts shifted between dataset refreshes.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
