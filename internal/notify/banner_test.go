// ABOUTME: Tests for the auto-hiding notification banner
// ABOUTME: Covers style profiles, hide delay, and last-call-wins timer invalidation

package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newspulse/newspulse-client/internal/clock"
)

type surfaceEvent struct {
	op      string
	target  string
	message string
	style   Style
}

// recordingSurface captures Show/Hide calls and the current visible content.
type recordingSurface struct {
	mu      sync.Mutex
	events  []surfaceEvent
	visible map[string]string
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{visible: make(map[string]string)}
}

func (s *recordingSurface) Show(target, message string, style Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, surfaceEvent{op: "show", target: target, message: message, style: style})
	s.visible[target] = message
}

func (s *recordingSurface) Hide(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, surfaceEvent{op: "hide", target: target})
	delete(s.visible, target)
}

func (s *recordingSurface) Visible(target string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.visible[target]
	return msg, ok
}

func TestBanner_ShowUsesStyleProfiles(t *testing.T) {
	surface := newRecordingSurface()
	b := NewBanner(surface, clock.NewFake(), 0)

	b.Show("bad", "signInMessage", true)
	b.Show("good", "signUpMessage", false)

	require.Len(t, surface.events, 2)
	assert.Equal(t, ErrorStyle, surface.events[0].style)
	assert.True(t, surface.events[0].style.IsError)
	assert.Equal(t, SuccessStyle, surface.events[1].style)
	assert.False(t, surface.events[1].style.IsError)
}

func TestBanner_HidesAfterDelay(t *testing.T) {
	surface := newRecordingSurface()
	fake := clock.NewFake()
	b := NewBanner(surface, fake, 0)

	b.Show("Login successful!", "signInMessage", false)

	fake.Advance(DefaultHideAfter - time.Millisecond)
	msg, ok := surface.Visible("signInMessage")
	require.True(t, ok)
	assert.Equal(t, "Login successful!", msg)

	fake.Advance(time.Millisecond)
	_, ok = surface.Visible("signInMessage")
	assert.False(t, ok)
}

func TestBanner_LastCallWins(t *testing.T) {
	surface := newRecordingSurface()
	fake := clock.NewFake()
	b := NewBanner(surface, fake, 0)

	b.Show("first", "signInMessage", true)
	fake.Advance(3 * time.Second)
	b.Show("second", "signInMessage", true)

	// The first call's deadline passes; the second message must survive it.
	fake.Advance(1500 * time.Millisecond)
	msg, ok := surface.Visible("signInMessage")
	require.True(t, ok)
	assert.Equal(t, "second", msg)

	// Hidden a full delay after the last call.
	fake.Advance(2500 * time.Millisecond)
	_, ok = surface.Visible("signInMessage")
	assert.False(t, ok)
	assert.Equal(t, 0, fake.Pending())
}

func TestBanner_RegionsAreIndependent(t *testing.T) {
	surface := newRecordingSurface()
	fake := clock.NewFake()
	b := NewBanner(surface, fake, time.Second)

	b.Show("a", "signInMessage", true)
	fake.Advance(500 * time.Millisecond)
	b.Show("b", "signUpMessage", false)

	fake.Advance(500 * time.Millisecond)
	_, inVisible := surface.Visible("signInMessage")
	upMsg, upVisible := surface.Visible("signUpMessage")
	assert.False(t, inVisible)
	assert.True(t, upVisible)
	assert.Equal(t, "b", upMsg)
}

func TestBanner_RealClock(t *testing.T) {
	surface := newRecordingSurface()
	b := NewBanner(surface, nil, 10*time.Millisecond)

	b.Show("hello", "signInMessage", false)
	assert.Eventually(t, func() bool {
		_, ok := surface.Visible("signInMessage")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
