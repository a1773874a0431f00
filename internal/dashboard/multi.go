// ABOUTME: Fan-out renderer so one fetch can feed several outputs
// ABOUTME: Every renderer sees every view; the first error is returned

package dashboard

type multiRenderer []Renderer

// Multi returns a Renderer that draws each view on all of rs in order. It
// also forwards extras to those of rs that implement ExtrasRenderer.
func Multi(rs ...Renderer) Renderer {
	return multiRenderer(rs)
}

func (m multiRenderer) RenderSentiment(v SentimentView) error {
	return m.each(func(r Renderer) error { return r.RenderSentiment(v) })
}

func (m multiRenderer) RenderSources(v SourceView) error {
	return m.each(func(r Renderer) error { return r.RenderSources(v) })
}

func (m multiRenderer) RenderEntities(v EntityView) error {
	return m.each(func(r Renderer) error { return r.RenderEntities(v) })
}

func (m multiRenderer) RenderExtras(p Payload) error {
	return m.each(func(r Renderer) error {
		if x, ok := r.(ExtrasRenderer); ok {
			return x.RenderExtras(p)
		}
		return nil
	})
}

func (m multiRenderer) each(fn func(Renderer) error) error {
	var first error
	for _, r := range m {
		if err := fn(r); err != nil && first == nil {
			first = err
		}
	}
	return first
}
