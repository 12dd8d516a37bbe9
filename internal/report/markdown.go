package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/linkmap/internal/model"
)

// MarkdownWriter renders the crawl report as GitHub Flavored Markdown,
// for documentation and sharing. Built on nao1215/markdown for
// type-safe table and list generation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter with the given output
// filters.
func NewMarkdownWriter(output io.Writer, opts Options) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(report *model.CrawlReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeDiscovered(md, report)
	w.writeSkipped(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.CrawlReport) {
	md.H1("Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", "`" + report.Seed + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.String()},
			{"Pages Fetched", strconv.Itoa(report.PagesFetched)},
			{"URLs Discovered", strconv.Itoa(len(report.Discovered))},
			{"Edges Recorded", strconv.Itoa(len(report.Edges))},
			{"Pages Skipped", strconv.Itoa(len(report.Skipped))},
		},
	})
	md.PlainText("")
}

// writeDiscovered writes the filtered URL list.
func (w *MarkdownWriter) writeDiscovered(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Discovered URLs")
	md.PlainText("")

	urls := w.filtered(report)
	if len(urls) == 0 {
		md.PlainText("No URLs matched the output filters.")
		md.PlainText("")
		return
	}

	md.BulletList(urls...)
	md.PlainText("")
}

// writeSkipped lists pages that failed to fetch, if any.
func (w *MarkdownWriter) writeSkipped(md *markdown.Markdown, report *model.CrawlReport) {
	if len(report.Skipped) == 0 {
		return
	}

	md.H2("Skipped Pages")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Skipped))
	for _, s := range report.Skipped {
		rows = append(rows, []string{"`" + s.URL + "`", s.Reason})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}
