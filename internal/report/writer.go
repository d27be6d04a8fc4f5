package report

import (
	"io"
	"strconv"

	"github.com/trackerlens/trackerlens/internal/analysis"
	"github.com/trackerlens/trackerlens/internal/model"
)

// Writer defines the interface for report output.
// Implementations render the three analysis tables in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or multiple
// targets with the same API.
type Writer interface {
	// Write renders the analysis result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *analysis.Result) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than using
// io.MultiWriter because our Writer interface is different from io.Writer -
// we write analysis results, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the result to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *analysis.Result) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Placeholder shown for optional fields that were absent from the source.
// It is distinct from "0", which is a real measured value.
const absentField = "-"

// formatOwner renders an optional owner display name.
func formatOwner(owner *string) string {
	if owner == nil {
		return absentField
	}
	return *owner
}

// formatFraction renders a [0,1] fraction with enough precision for
// prevalence values, which go well below one percent.
func formatFraction(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}

// formatMetric renders an optional performance metric.
func formatMetric(v *float64) string {
	if v == nil {
		return absentField
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// domainTableRow renders one prevalence-ranking entry as table cells in the
// column order shared by all tabular writers.
func domainTableRow(d model.DomainScalars) []string {
	return []string{
		d.Domain,
		formatOwner(d.Owner),
		formatFraction(d.Prevalence),
		strconv.FormatInt(d.Sites, 10),
		strconv.Itoa(int(d.Fingerprinting)),
		formatFraction(d.Cookies),
		formatMetric(d.PerformanceTime),
		formatMetric(d.PerformanceSize),
		formatMetric(d.PerformanceCPU),
		formatMetric(d.PerformanceCache),
	}
}

// domainTableHeader is the column order of the prevalence-ranking table.
func domainTableHeader() []string {
	return []string{
		"domain", "owner", "prevalence", "sites", "fingerprinting", "cookies",
		"performance_time", "performance_size", "performance_cpu", "performance_cache",
	}
}

// leaderTableRow renders one top-per-category entry as table cells.
func leaderTableRow(l analysis.CategoryLeader) []string {
	return []string{
		strconv.Itoa(l.Order),
		l.Category,
		l.Domain,
		formatOwner(l.Owner),
		formatFraction(l.Prevalence),
		strconv.Itoa(int(l.Fingerprinting)),
		formatFraction(l.Cookies),
	}
}

// leaderTableHeader is the column order of the top-per-category table.
func leaderTableHeader() []string {
	return []string{"order", "category", "domain", "owner", "prevalence", "fingerprinting", "cookies"}
}

// countTableRow renders one category-frequency entry as table cells.
func countTableRow(c analysis.CategoryCount) []string {
	return []string{c.Category, strconv.Itoa(c.Count)}
}

// countTableHeader is the column order of the category-frequency table.
func countTableHeader() []string {
	return []string{"category", "count"}
}
