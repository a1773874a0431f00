// ABOUTME: Terminal renderer drawing the dashboard views as coloured text
// ABOUTME: Used by the line-mode CLI and by the terminal UI's dashboard panel

package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// TextRenderer writes views to an io.Writer.
type TextRenderer struct {
	w        io.Writer
	barWidth int
}

// NewTextRenderer creates a TextRenderer. barWidth is the longest bar in
// cells; zero means 30.
func NewTextRenderer(w io.Writer, barWidth int) *TextRenderer {
	if barWidth <= 0 {
		barWidth = 30
	}
	return &TextRenderer{w: w, barWidth: barWidth}
}

var headingColor = color.New(color.Bold, color.FgCyan)

// RenderSentiment draws one line per slice with its share of the total.
func (t *TextRenderer) RenderSentiment(v SentimentView) error {
	headingColor.Fprintln(t.w, "Sentiment")
	var total float64
	for _, s := range v.Slices {
		total += s.Count
	}
	for _, s := range v.Slices {
		share := 0.0
		if total > 0 {
			share = s.Count / total * 100
		}
		swatch := hexColor(s.Color).Sprint("●")
		if _, err := fmt.Fprintf(t.w, "  %s %-12s %6s  %5.1f%%\n", swatch, s.Label, FormatCount(s.Count), share); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(t.w)
	return err
}

// RenderSources draws a horizontal bar per source, labels padded into the
// left margin.
func (t *TextRenderer) RenderSources(v SourceView) error {
	headingColor.Fprintf(t.w, "Sources (%s)\n", v.Series)

	var peak float64
	labelWidth := 0
	for _, r := range v.Rows {
		if r.Count > peak {
			peak = r.Count
		}
		if n := len([]rune(r.Label)); n > labelWidth {
			labelWidth = n
		}
	}

	bar := hexColor(v.Color)
	for _, r := range v.Rows {
		cells := 0
		if peak > 0 {
			cells = int(r.Count / peak * float64(t.barWidth))
		}
		if cells == 0 && r.Count > 0 {
			cells = 1
		}
		label := r.Label + strings.Repeat(" ", labelWidth-len([]rune(r.Label)))
		if _, err := fmt.Fprintf(t.w, "  %s %s %s\n", label, bar.Sprint(strings.Repeat("█", cells)), FormatCount(r.Count)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(t.w)
	return err
}

// RenderEntities draws the heading and either the items or the placeholder.
func (t *TextRenderer) RenderEntities(v EntityView) error {
	headingColor.Fprintln(t.w, v.Heading)
	if v.Placeholder != "" {
		_, err := fmt.Fprintf(t.w, "  %s\n", color.New(color.Faint).Sprint(v.Placeholder))
		return err
	}
	for i, item := range v.Items {
		if _, err := fmt.Fprintf(t.w, "  %d. %s\n", i+1, item); err != nil {
			return err
		}
	}
	return nil
}

// hexColor turns "#rrggbb" into a 24-bit foreground colour. Malformed input
// falls back to the default foreground.
func hexColor(hex string) *color.Color {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return color.New(color.Reset)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.New(color.Reset)
	}
	return color.RGB(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff))
}
