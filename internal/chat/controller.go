// ABOUTME: Runtime that serialises chat events and carries out handler effects
// ABOUTME: Requests run on goroutines and re-enter the loop as Settled events

package chat

import (
	"context"
	"log/slog"
	"sync"
)

// View is the presentation side of the widget. Methods are called with the
// controller's lock held and must not call Dispatch.
type View interface {
	Render(w Widget)
	FocusInput()
	CaretToEnd()
	ScrollToEnd()
}

// Controller owns one Widget and applies events to it one at a time.
type Controller struct {
	handlers Handlers
	asker    Asker
	view     View
	ctx      context.Context
	logger   *slog.Logger

	mu     sync.Mutex
	widget Widget
	wg     sync.WaitGroup
}

// NewController creates a Controller in the Closed state. ctx is the parent
// of every request; closing the widget does not cancel requests.
func NewController(ctx context.Context, handlers Handlers, asker Asker, view View, logger *slog.Logger) *Controller {
	if view == nil {
		view = nopView{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		handlers: handlers,
		asker:    asker,
		view:     view,
		ctx:      ctx,
		logger:   logger.With("component", "chat"),
	}
}

// Dispatch applies ev and performs the resulting effects. It returns the
// widget after the transition.
func (c *Controller) Dispatch(ev Event) Widget {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, effects := c.handlers.Apply(c.widget, ev)
	c.widget = next
	c.view.Render(next)

	for _, eff := range effects {
		switch e := eff.(type) {
		case FocusInput:
			c.view.FocusInput()
		case CaretToEnd:
			c.view.CaretToEnd()
		case ScrollToEnd:
			c.view.ScrollToEnd()
		case IssueRequest:
			c.issue(e.Query)
		case LogFailure:
			c.logger.Error("chatbot request failed", "error", e.Err)
		}
	}
	return next
}

// Widget returns a snapshot of the current widget.
func (c *Controller) Widget() Widget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.widget
}

// Wait blocks until every issued request has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) issue(q Query) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		reply, err := c.asker.Ask(c.ctx, q)
		c.Dispatch(Settled{Reply: reply, Err: err})
	}()
}

type nopView struct{}

func (nopView) Render(Widget) {}
func (nopView) FocusInput()   {}
func (nopView) CaretToEnd()   {}
func (nopView) ScrollToEnd()  {}
