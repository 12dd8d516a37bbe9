package report

import (
	"fmt"
	"io"

	"github.com/nao1215/linkmap/internal/model"
)

// TextWriter renders the crawl result as a newline-delimited, sorted,
// deduplicated list of absolute URLs. This is the default output of the
// crawl command and is meant for piping into other tools.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter with the given output filters.
func NewTextWriter(output io.Writer, opts Options) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output, opts)}
}

// Write implements Writer.
func (w *TextWriter) Write(report *model.CrawlReport) (int, error) {
	var total int
	for _, u := range w.filtered(report) {
		n, err := fmt.Fprintln(w.output, u)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
