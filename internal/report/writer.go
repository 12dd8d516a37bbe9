package report

import (
	"io"

	"github.com/nao1215/linkmap/internal/model"
)

// Options carries the output filters applied to the discovered list
// before rendering.
type Options struct {
	// DomainSuffix keeps only URLs whose host ends with this suffix.
	// Empty means no domain filtering.
	DomainSuffix string

	// HTMLOnly keeps only URLs that classify as HTML.
	HTMLOnly bool
}

// Writer renders a crawl report to a destination.
//
// An interface keeps the output format pluggable: the same crawl result
// can go to a terminal as a plain URL list, to a file as JSON, or into
// documentation as Markdown.
type Writer interface {
	// Write renders the report. Returns the number of bytes written.
	Write(report *model.CrawlReport) (int, error)
}

// MultiWriter writes a report to several Writers in sequence, stopping
// at the first error. Useful for terminal-plus-file output.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report to every configured Writer.
func (m *MultiWriter) Write(report *model.CrawlReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
	opts   Options
}

// newBaseWriter creates a baseWriter with the given destination and
// output filters.
func newBaseWriter(output io.Writer, opts Options) baseWriter {
	return baseWriter{output: output, opts: opts}
}

// filtered applies the configured filters to the report's discovered
// list.
func (b baseWriter) filtered(report *model.CrawlReport) []string {
	return FilterURLs(report.Discovered, b.opts.DomainSuffix, b.opts.HTMLOnly)
}
