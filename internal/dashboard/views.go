// ABOUTME: View models for the sentiment, source, and entity panels
// ABOUTME: Pure transforms from a Payload; renderers only draw what these describe

package dashboard

import (
	"fmt"
	"strconv"
)

// SentimentColors are applied to slices by position, cycling.
var SentimentColors = []string{"#f44336", "#ffeb3b", "#4caf50"}

// Source panel geometry.
const (
	SourceRowHeight = 25
	SourceOriginX   = 96
	SourceBarColor  = "#2196f3"
	SourceSeries    = "Articles"
)

// Entity panel text.
const (
	EntityHeading      = "Top Organizations (Entities)"
	EntityType         = "ORG"
	NoOrganizationsMsg = "No organizations found."
	NoEntitiesMsg      = "No entities found."
)

// Slice is one sentiment category.
type Slice struct {
	Label string
	Count float64
	Color string
}

// SentimentView is a proportion chart.
type SentimentView struct {
	Slices []Slice
}

// SourceView is a horizontal bar ranking whose height grows with its rows.
type SourceView struct {
	Rows    Counts
	Height  int
	OriginX int
	Color   string
	Series  string
}

// EntityView is a heading with either items or a placeholder.
type EntityView struct {
	Heading     string
	Items       []string
	Placeholder string
}

// BuildSentiment keeps backend order. A missing mapping gives no slices.
func BuildSentiment(p Payload) SentimentView {
	slices := make([]Slice, 0, len(p.Sentiment))
	for i, e := range p.Sentiment {
		slices = append(slices, Slice{
			Label: e.Label,
			Count: e.Count,
			Color: SentimentColors[i%len(SentimentColors)],
		})
	}
	return SentimentView{Slices: slices}
}

// BuildSources sizes the chart to its rows. A missing mapping gives zero rows.
func BuildSources(p Payload) SourceView {
	return SourceView{
		Rows:    p.Sources,
		Height:  len(p.Sources) * SourceRowHeight,
		OriginX: SourceOriginX,
		Color:   SourceBarColor,
		Series:  SourceSeries,
	}
}

// BuildEntities lists organizations in backend order.
func BuildEntities(p Payload) EntityView {
	v := EntityView{Heading: EntityHeading}
	if !p.HasEntities {
		v.Placeholder = NoEntitiesMsg
		return v
	}

	orgs, ok := p.Entity(EntityType)
	if !ok || len(orgs.Names) == 0 {
		v.Placeholder = NoOrganizationsMsg
		return v
	}

	for _, e := range orgs.Names {
		v.Items = append(v.Items, fmt.Sprintf("%s (%s)", e.Label, FormatCount(e.Count)))
	}
	return v
}

// FormatCount prints whole counts without a fraction.
func FormatCount(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
