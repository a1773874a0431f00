// ABOUTME: HTML report renderer built from markdown with goldmark
// ABOUTME: Includes the optional topic, volume, and usefulness series the terminal views omit

package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Report accumulates views as markdown and converts them to HTML.
type Report struct {
	title string
	md    bytes.Buffer
}

// NewReport starts a report with the given title.
func NewReport(title string) *Report {
	r := &Report{title: title}
	fmt.Fprintf(&r.md, "# %s\n\n", escapeMarkdown(title))
	return r
}

// RenderSentiment writes a table with a colour swatch per slice.
func (r *Report) RenderSentiment(v SentimentView) error {
	r.md.WriteString("## Sentiment\n\n")
	if len(v.Slices) == 0 {
		r.md.WriteString("_No sentiment data._\n\n")
		return nil
	}
	r.md.WriteString("| | Label | Count |\n|---|---|---:|\n")
	for _, s := range v.Slices {
		fmt.Fprintf(&r.md, "| <span style=\"color:%s\">&#9679;</span> | %s | %s |\n", s.Color, escapeMarkdown(s.Label), FormatCount(s.Count))
	}
	r.md.WriteString("\n")
	return nil
}

// RenderSources writes the source ranking table.
func (r *Report) RenderSources(v SourceView) error {
	fmt.Fprintf(&r.md, "## Sources\n\n")
	r.countsTable(v.Series, v.Rows)
	return nil
}

// RenderEntities writes the organization list or its placeholder.
func (r *Report) RenderEntities(v EntityView) error {
	fmt.Fprintf(&r.md, "## %s\n\n", escapeMarkdown(v.Heading))
	if v.Placeholder != "" {
		fmt.Fprintf(&r.md, "%s\n\n", escapeMarkdown(v.Placeholder))
		return nil
	}
	for _, item := range v.Items {
		fmt.Fprintf(&r.md, "- %s\n", escapeMarkdown(item))
	}
	r.md.WriteString("\n")
	return nil
}

// RenderExtras writes the topic, volume, and usefulness tables when present.
func (r *Report) RenderExtras(p Payload) error {
	sections := []struct {
		title  string
		column string
		rows   Counts
	}{
		{"Top Keywords", "Mentions", p.Topics},
		{"Article Volume", "Articles", p.Volume},
		{"Useful vs Not Useful", "Articles", p.Useful},
	}
	for _, s := range sections {
		if len(s.rows) == 0 {
			continue
		}
		fmt.Fprintf(&r.md, "## %s\n\n", s.title)
		r.countsTable(s.column, s.rows)
	}
	return nil
}

// Markdown returns the report source.
func (r *Report) Markdown() string {
	return r.md.String()
}

// WriteHTML converts the report to a standalone HTML document.
func (r *Report) WriteHTML(w io.Writer) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var body bytes.Buffer
	if err := md.Convert(r.md.Bytes(), &body); err != nil {
		return fmt.Errorf("converting report: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		htmlEscaper.Replace(r.title), body.String())
	return err
}

func (r *Report) countsTable(column string, rows Counts) {
	if len(rows) == 0 {
		r.md.WriteString("_No data._\n\n")
		return
	}
	fmt.Fprintf(&r.md, "| Name | %s |\n|---|---:|\n", column)
	for _, e := range rows {
		fmt.Fprintf(&r.md, "| %s | %s |\n", escapeMarkdown(e.Label), FormatCount(e.Count))
	}
	r.md.WriteString("\n")
}

var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`, `|`, `\|`, `*`, `\*`, `_`, `\_`, "`", "\\`",
		`[`, `\[`, `]`, `\]`, `<`, `&lt;`, `>`, `&gt;`, `#`, `\#`,
	)
	htmlEscaper = strings.NewReplacer(`&`, `&amp;`, `<`, `&lt;`, `>`, `&gt;`, `"`, `&quot;`)
)

// escapeMarkdown keeps backend labels from being read as markup.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
