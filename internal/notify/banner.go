// ABOUTME: Transient status banner keyed by target region with auto-hide
// ABOUTME: Each Show on a region invalidates that region's previous hide timer

package notify

import (
	"sync"
	"time"

	"github.com/newspulse/newspulse-client/internal/clock"
)

// DefaultHideAfter is how long a banner stays visible.
const DefaultHideAfter = 4000 * time.Millisecond

// Style is the visual profile of a banner.
type Style struct {
	Background string
	Foreground string
	IsError    bool
}

// The two fixed style profiles.
var (
	ErrorStyle   = Style{Background: "#3a0d2c", Foreground: "#ff6b81", IsError: true}
	SuccessStyle = Style{Background: "#102d1b", Foreground: "#81ffb4"}
)

// Surface is where banners are drawn. Implementations must be safe to call
// from timer goroutines.
type Surface interface {
	Show(target, message string, style Style)
	Hide(target string)
}

type region struct {
	generation uint64
	timer      clock.Timer
}

// Banner shows messages on a Surface and hides them after a fixed delay.
type Banner struct {
	mu        sync.Mutex
	surface   Surface
	scheduler clock.Scheduler
	hideAfter time.Duration
	regions   map[string]*region
}

// NewBanner creates a Banner. A zero hideAfter uses DefaultHideAfter and a nil
// scheduler uses the real clock.
func NewBanner(surface Surface, scheduler clock.Scheduler, hideAfter time.Duration) *Banner {
	if scheduler == nil {
		scheduler = clock.Real{}
	}
	if hideAfter <= 0 {
		hideAfter = DefaultHideAfter
	}
	return &Banner{
		surface:   surface,
		scheduler: scheduler,
		hideAfter: hideAfter,
		regions:   make(map[string]*region),
	}
}

// Show makes target visible with message in the error or success profile and
// schedules it to be hidden. The last call for a target wins.
func (b *Banner) Show(message, target string, isError bool) {
	style := SuccessStyle
	if isError {
		style = ErrorStyle
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.regions[target]
	if !ok {
		r = &region{}
		b.regions[target] = r
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.generation++
	gen := r.generation

	b.surface.Show(target, message, style)
	r.timer = b.scheduler.AfterFunc(b.hideAfter, func() {
		b.hide(target, gen)
	})
}

func (b *Banner) hide(target string, gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.regions[target]
	if !ok || r.generation != gen {
		// a later Show owns the region now
		return
	}
	delete(b.regions, target)
	b.surface.Hide(target)
}
