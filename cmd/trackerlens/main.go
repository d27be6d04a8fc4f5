// Package main provides the entry point for the TrackerLens CLI.
//
// TrackerLens ingests a directory of per-domain crawl documents describing
// third-party web trackers and reports the most prevalent domains, the
// category frequency distribution, and the leading domains per category.
//
// Usage:
//
//	trackerlens analyze <data-dir>
//	trackerlens history
//	trackerlens compare
//
// See --help for all available options.
package main

// main is the entry point for TrackerLens.
func main() {
	Execute()
}
