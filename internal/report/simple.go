package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/trackerlens/trackerlens/internal/analysis"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with fixed-width tables and
// clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no rows are shown.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis result in human-readable format.
func (w *SimpleWriter) Write(result *analysis.Result) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeTopDomains(&sb, result)
	w.writeCategoryCounts(&sb, result)
	w.writeTopPerCategory(&sb, result)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *analysis.Result) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        TRACKERLENS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Analyzed:   %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Domains:    %d\n", result.Domains))
	sb.WriteString(fmt.Sprintf("Rows:       %d\n", result.Rows))
	sb.WriteString(fmt.Sprintf("Categories: %d\n", len(result.CategoryCounts)))
	sb.WriteString("\n")
}

// writeTopDomains writes the prevalence-ranking section.
func (w *SimpleWriter) writeTopDomains(sb *strings.Builder, result *analysis.Result) {
	if len(result.TopDomains) == 0 && !w.showEmpty {
		return
	}

	w.writeSectionTitle(sb, fmt.Sprintf("TOP %d DOMAINS BY PREVALENCE", len(result.TopDomains)))

	if len(result.TopDomains) == 0 {
		sb.WriteString("No domains in corpus.\n\n")
		return
	}

	rows := make([][]string, 0, len(result.TopDomains))
	for _, d := range result.TopDomains {
		rows = append(rows, domainTableRow(d))
	}
	writeTextTable(sb, domainTableHeader(), rows)
}

// writeCategoryCounts writes the category-frequency section.
func (w *SimpleWriter) writeCategoryCounts(sb *strings.Builder, result *analysis.Result) {
	if len(result.CategoryCounts) == 0 && !w.showEmpty {
		return
	}

	w.writeSectionTitle(sb, "CATEGORY FREQUENCY")

	if len(result.CategoryCounts) == 0 {
		sb.WriteString("No categorized rows in corpus.\n\n")
		return
	}

	rows := make([][]string, 0, len(result.CategoryCounts))
	for _, c := range result.CategoryCounts {
		rows = append(rows, countTableRow(c))
	}
	writeTextTable(sb, countTableHeader(), rows)

	if len(result.TopCategories) > 0 {
		sb.WriteString(fmt.Sprintf("Top %d categories: ", len(result.TopCategories)))
		names := make([]string, 0, len(result.TopCategories))
		for _, c := range result.TopCategories {
			names = append(names, fmt.Sprintf("%s (%d)", c.Category, c.Count))
		}
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteString("\n\n")
	}
}

// writeTopPerCategory writes the top-domains-per-category section.
func (w *SimpleWriter) writeTopPerCategory(sb *strings.Builder, result *analysis.Result) {
	if len(result.TopPerCategory) == 0 && !w.showEmpty {
		return
	}

	w.writeSectionTitle(sb, "TOP DOMAINS PER CATEGORY")

	if len(result.TopPerCategory) == 0 {
		sb.WriteString("No categorized rows in corpus.\n\n")
		return
	}

	rows := make([][]string, 0, len(result.TopPerCategory))
	for _, l := range result.TopPerCategory {
		rows = append(rows, leaderTableRow(l))
	}
	writeTextTable(sb, leaderTableHeader(), rows)
}

// writeSectionTitle writes a section title with an underline.
func (w *SimpleWriter) writeSectionTitle(sb *strings.Builder, title string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", len(title)))
	sb.WriteString("\n")
}

// writeTextTable writes a fixed-width table with a header row.
// Column widths are derived from the widest cell per column.
func writeTextTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		sb.WriteString("\n")
	}

	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	sb.WriteString("\n")
}
