// ABOUTME: Decoding of the dashboard aggregate payload with backend key order preserved
// ABOUTME: Every field is optional; absent and empty mappings are kept distinguishable

package dashboard

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Payload errors
var (
	ErrDecode  = errors.New("dashboard payload is not a JSON object")
	ErrPayload = errors.New("dashboard payload reported an error")
)

// Entry is one label/count pair.
type Entry struct {
	Label string
	Count float64
}

// Counts is an ordered mapping from label to count.
type Counts []Entry

// Total sums the counts.
func (c Counts) Total() float64 {
	var sum float64
	for _, e := range c {
		sum += e.Count
	}
	return sum
}

// EntityGroup holds the counted names of one entity type.
type EntityGroup struct {
	Type  string
	Names Counts
}

// Payload is one dashboard snapshot.
type Payload struct {
	Sentiment Counts
	Sources   Counts

	// HasEntities is false when the entities field is absent or null.
	HasEntities bool
	Entities    []EntityGroup

	// Extra series only the report shows.
	Topics Counts
	Volume Counts
	Useful Counts

	// Error is the backend's error field, empty when absent or falsy.
	Error string
}

// Entity returns the group for typ, if present.
func (p Payload) Entity(typ string) (EntityGroup, bool) {
	for _, g := range p.Entities {
		if g.Type == typ {
			return g, true
		}
	}
	return EntityGroup{}, false
}

// ParsePayload decodes raw. Fields of the wrong shape decode as absent.
func ParsePayload(raw []byte) (Payload, error) {
	if !gjson.ValidBytes(raw) {
		return Payload{}, ErrDecode
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Payload{}, fmt.Errorf("%w: got %s", ErrDecode, root.Type)
	}

	p := Payload{
		Sentiment: counts(root.Get("sentiment")),
		Sources:   counts(root.Get("sources")),
		Topics:    counts(root.Get("topics")),
		Volume:    counts(root.Get("volume")),
		Useful:    counts(root.Get("useful")),
	}

	if errField := root.Get("error"); truthy(errField) {
		p.Error = errField.String()
		if p.Error == "" {
			p.Error = errField.Raw
		}
	}

	entities := root.Get("entities")
	if entities.Exists() && entities.Type != gjson.Null {
		p.HasEntities = true
		if entities.IsObject() {
			entities.ForEach(func(k, v gjson.Result) bool {
				p.Entities = append(p.Entities, EntityGroup{Type: k.String(), Names: counts(v)})
				return true
			})
		}
	}

	return p, nil
}

func counts(res gjson.Result) Counts {
	if !res.IsObject() {
		return nil
	}
	var out Counts
	res.ForEach(func(k, v gjson.Result) bool {
		out = append(out, Entry{Label: k.String(), Count: v.Float()})
		return true
	})
	return out
}

// truthy follows the backend's loose notion of a set error field.
func truthy(res gjson.Result) bool {
	switch res.Type {
	case gjson.String:
		return res.Str != ""
	case gjson.Number:
		return res.Num != 0
	case gjson.True:
		return true
	case gjson.JSON:
		return true
	default:
		return false
	}
}
