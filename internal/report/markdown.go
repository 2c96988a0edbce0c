package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/jonathan/checkhtml/internal/grader"
)

// MarkdownWriter outputs the result as a Markdown table, handy for pasting
// into pull requests or issue comments.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs result in Markdown format.
func (w *MarkdownWriter) Write(result *grader.Result) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("HTML Check Report")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("%d of %d checks present.", result.Present(), result.Len()))
	md.PlainText("")

	if result.Len() > 0 {
		rows := make([][]string, 0, result.Len())
		for _, selector := range result.Keys() {
			present, _ := result.Get(selector)
			rows = append(rows, []string{"`" + escapeCell(selector) + "`", presenceText(present)})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Selector", "Present"},
			Rows:   rows,
		})
	}

	return md.Build()
}

func presenceText(present bool) string {
	if present {
		return "✅ yes"
	}
	return "❌ no"
}

// escapeCell keeps attribute selectors such as [lang|=en] from splitting the table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
