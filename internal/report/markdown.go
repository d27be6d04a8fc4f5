package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trackerlens/trackerlens/internal/analysis"
)

// MarkdownWriter outputs analysis results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. Mermaid pie charts for the category distribution
type MarkdownWriter struct {
	baseWriter

	// titleCaser normalizes category names for section headings.
	titleCaser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titleCaser: cases.Title(language.English, cases.NoLower),
	}
}

// Write outputs the analysis result in Markdown format.
func (w *MarkdownWriter) Write(result *analysis.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeTopDomains(md, result)
	w.writeCategorySummary(md, result)
	w.writeTopPerCategory(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *analysis.Result) {
	md.H1("TrackerLens Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Analyzed", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Domains", strconv.Itoa(result.Domains)},
			{"Rows", strconv.Itoa(result.Rows)},
			{"Categories", strconv.Itoa(len(result.CategoryCounts))},
		},
	})
	md.PlainText("")

	if result.Rows == 0 {
		md.Note("The corpus is empty; all tables below are empty.")
		md.PlainText("")
	}
}

// writeTopDomains writes the prevalence-ranking table.
func (w *MarkdownWriter) writeTopDomains(md *markdown.Markdown, result *analysis.Result) {
	md.H2("Top Domains by Prevalence")
	md.PlainText("")

	if len(result.TopDomains) == 0 {
		md.PlainText("No domains in corpus.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(result.TopDomains))
	for _, d := range result.TopDomains {
		rows = append(rows, domainTableRow(d))
	}
	md.Table(markdown.TableSet{
		Header: domainTableHeader(),
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCategorySummary writes the category-frequency table and pie chart.
func (w *MarkdownWriter) writeCategorySummary(md *markdown.Markdown, result *analysis.Result) {
	md.H2("Category Frequency")
	md.PlainText("")

	if len(result.CategoryCounts) == 0 {
		md.PlainText("No categorized rows in corpus.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(result.CategoryCounts))
	for _, c := range result.CategoryCounts {
		rows = append(rows, countTableRow(c))
	}
	md.Table(markdown.TableSet{
		Header: countTableHeader(),
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, result.TopCategories)
}

// writePieChart writes a mermaid pie chart of the leading categories.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, top []analysis.CategoryCount) {
	if len(top) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Top Category Distribution"),
		piechart.WithShowData(true),
	)
	for _, c := range top {
		chart.LabelAndIntValue(c.Category, uint64(c.Count)) //nolint:gosec // counts are non-negative
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeTopPerCategory writes one section per leading category with its
// highest-prevalence domains.
func (w *MarkdownWriter) writeTopPerCategory(md *markdown.Markdown, result *analysis.Result) {
	md.H2("Top Domains per Category")
	md.PlainText("")

	if len(result.TopPerCategory) == 0 {
		md.PlainText("No categorized rows in corpus.")
		md.PlainText("")
		return
	}

	// The table is category-major, so one linear pass can split it into
	// per-category sections without reordering anything.
	var current string
	var rows [][]string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		md.H3(w.titleCaser.String(current))
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: leaderTableHeader(),
			Rows:   rows,
		})
		md.PlainText("")
		rows = nil
	}

	for _, l := range result.TopPerCategory {
		if l.Category != current {
			flush()
			current = l.Category
		}
		rows = append(rows, leaderTableRow(l))
	}
	flush()
}
