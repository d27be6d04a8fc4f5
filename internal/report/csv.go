package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trackerlens/trackerlens/internal/analysis"
)

// CSV file names written by CSVWriter.
const (
	// TopDomainsCSV holds the prevalence ranking.
	TopDomainsCSV = "top_domains.csv"

	// CategoryCountsCSV holds the full category-frequency table,
	// ascending by count.
	CategoryCountsCSV = "category_counts.csv"

	// TopPerCategoryCSV holds the top-domains-per-category table.
	TopPerCategoryCSV = "top_per_category.csv"
)

// CSVWriter writes one CSV file per result table into a directory.
// The files are the hand-off format for external presentation tools
// (spreadsheets, notebooks, chart renderers).
//
// Design decision: Unlike the other writers, CSVWriter owns its destination
// directory instead of an io.Writer: the three tables have different column
// sets and merging them into one stream would force every consumer to split
// them again.
type CSVWriter struct {
	// dir is the destination directory. Created if it does not exist.
	dir string
}

// NewCSVWriter creates a CSVWriter targeting the given directory.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// Write renders the three tables as CSV files in the destination directory.
// Returns the total bytes written across all files.
func (w *CSVWriter) Write(result *analysis.Result) (int, error) {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	var total int

	domainRows := make([][]string, 0, len(result.TopDomains))
	for _, d := range result.TopDomains {
		domainRows = append(domainRows, domainTableRow(d))
	}
	n, err := w.writeFile(TopDomainsCSV, domainTableHeader(), domainRows)
	total += n
	if err != nil {
		return total, err
	}

	countRows := make([][]string, 0, len(result.CategoryCounts))
	for _, c := range result.CategoryCounts {
		countRows = append(countRows, countTableRow(c))
	}
	n, err = w.writeFile(CategoryCountsCSV, countTableHeader(), countRows)
	total += n
	if err != nil {
		return total, err
	}

	leaderRows := make([][]string, 0, len(result.TopPerCategory))
	for _, l := range result.TopPerCategory {
		leaderRows = append(leaderRows, leaderTableRow(l))
	}
	n, err = w.writeFile(TopPerCategoryCSV, leaderTableHeader(), leaderRows)
	total += n
	return total, err
}

// writeFile writes a single CSV file with a header row.
func (w *CSVWriter) writeFile(name string, header []string, rows [][]string) (int, error) {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path) //nolint:gosec // path is derived from user-chosen output dir
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // close error is reported via cw.Error below

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, nil //nolint:nilerr // byte count is best-effort metadata
	}
	return int(info.Size()), nil
}
