// Package report renders analysis results as output tables.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with tables and a pie chart
//   - CSVWriter: One CSV file per result table, for external layout tools
//
// Design decision: We separate report writing from the result data
// structures (which live in the analysis package) to follow the single
// responsibility principle. This allows adding new output formats without
// modifying the query engine.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
