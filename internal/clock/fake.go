// ABOUTME: Manually advanced Scheduler for tests
// ABOUTME: Callbacks fire synchronously inside Advance in deadline order

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a Scheduler whose time only moves when Advance is called.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*fakeTimer
}

type fakeTimer struct {
	fake     *Fake
	deadline time.Duration
	seq      int
	f        func()
	stopped  bool
	fired    bool
}

// NewFake creates a Fake scheduler at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// AfterFunc registers f to run once Advance moves past d from now.
func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{fake: c, deadline: c.now + d, seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves the clock forward and fires every due callback.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	now := c.now

	var due, rest []*fakeTimer
	for _, t := range c.pending {
		if t.stopped {
			continue
		}
		if t.deadline <= now {
			t.fired = true
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.pending = rest
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})

	// Callbacks may schedule new timers, so run them without the lock held.
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.fake.mu.Lock()
	defer t.fake.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
