// ABOUTME: Dashboard load pipeline: fetch, check the error field, render three views
// ABOUTME: Each view renders inside its own recover boundary so one fault cannot stop the rest

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrViewPanic wraps a panic recovered while rendering a view.
var ErrViewPanic = errors.New("view panicked")

// View names.
const (
	ViewSentiment = "sentiment"
	ViewSources   = "sources"
	ViewEntities  = "entities"
	ViewExtras    = "extras"
)

// Renderer draws the three dashboard views.
type Renderer interface {
	RenderSentiment(v SentimentView) error
	RenderSources(v SourceView) error
	RenderEntities(v EntityView) error
}

// ExtrasRenderer is implemented by renderers that also show the optional
// topic, volume, and usefulness series.
type ExtrasRenderer interface {
	RenderExtras(p Payload) error
}

// ViewResult is the outcome of rendering one view.
type ViewResult struct {
	Name string
	Err  error
}

// Result describes one Load.
type Result struct {
	// Err is the fetch, decode, or payload error. When set nothing rendered.
	Err     error
	Payload Payload
	Views   []ViewResult
}

// Rendered reports whether the views were attempted.
func (r Result) Rendered() bool {
	return r.Err == nil
}

// Failed returns the views that returned an error or panicked.
func (r Result) Failed() []ViewResult {
	var out []ViewResult
	for _, v := range r.Views {
		if v.Err != nil {
			out = append(out, v)
		}
	}
	return out
}

// Controller runs the dashboard pipeline once per Load.
type Controller struct {
	fetcher  Fetcher
	renderer Renderer
	logger   *slog.Logger
}

// NewController creates a Controller. Pass nil logger for default.
func NewController(fetcher Fetcher, renderer Renderer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger.With("component", "dashboard"),
	}
}

// Load fetches the payload and renders it. Failures are logged and reported
// in the Result; Load never panics on behalf of a view.
func (c *Controller) Load(ctx context.Context) Result {
	p, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.logger.Error("error loading dashboard data", "error", err)
		return Result{Err: err}
	}
	if p.Error != "" {
		c.logger.Error("dashboard data unavailable", "error", p.Error)
		return Result{Err: fmt.Errorf("%w: %s", ErrPayload, p.Error), Payload: p}
	}

	res := Result{Payload: p}
	res.Views = append(res.Views,
		c.guard(ViewSentiment, func() error { return c.renderer.RenderSentiment(BuildSentiment(p)) }),
		c.guard(ViewSources, func() error { return c.renderer.RenderSources(BuildSources(p)) }),
		c.guard(ViewEntities, func() error { return c.renderer.RenderEntities(BuildEntities(p)) }),
	)
	if extras, ok := c.renderer.(ExtrasRenderer); ok {
		res.Views = append(res.Views, c.guard(ViewExtras, func() error { return extras.RenderExtras(p) }))
	}
	return res
}

func (c *Controller) guard(name string, render func() error) (vr ViewResult) {
	vr.Name = name
	defer func() {
		if r := recover(); r != nil {
			vr.Err = fmt.Errorf("%w: %s: %v", ErrViewPanic, name, r)
			c.logger.Error("rendering view", "view", name, "error", vr.Err)
		}
	}()

	if err := render(); err != nil {
		vr.Err = err
		c.logger.Error("rendering view", "view", name, "error", err)
	}
	return vr
}
