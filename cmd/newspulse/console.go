// ABOUTME: Console stand-ins for the banner surface and page navigation
// ABOUTME: Banners print as coloured lines; navigation prints its destination and signals waiters

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/newspulse/newspulse-client/internal/notify"
)

// consoleSurface prints each banner once. Hiding is a no-op since printed
// lines scroll away on their own.
type consoleSurface struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleSurface(w io.Writer) *consoleSurface {
	return &consoleSurface{w: w}
}

func (s *consoleSurface) Show(target, message string, style notify.Style) {
	c := color.New(color.Bold)
	if r, g, b, ok := parseHex(style.Foreground); ok {
		c = color.RGB(r, g, b).Add(color.Bold)
	}
	if r, g, b, ok := parseHex(style.Background); ok {
		c = c.AddBgRGB(r, g, b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s\n", c.Sprint(" "+message+" "))
}

func (s *consoleSurface) Hide(target string) {}

func parseHex(hex string) (r, g, b int, ok bool) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// consoleNavigator records where the client was sent.
type consoleNavigator struct {
	w    io.Writer
	once sync.Once
	done chan struct{}

	mu   sync.Mutex
	last string
}

func newConsoleNavigator(w io.Writer) *consoleNavigator {
	return &consoleNavigator{w: w, done: make(chan struct{})}
}

func (n *consoleNavigator) Navigate(destination string) {
	n.mu.Lock()
	n.last = destination
	n.mu.Unlock()

	if n.w != nil {
		fmt.Fprintf(n.w, "→ %s\n", destination)
	}
	n.once.Do(func() { close(n.done) })
}

// Destination returns the last navigation target, empty if none.
func (n *consoleNavigator) Destination() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// Wait blocks until a navigation happens, ctx ends, or timeout passes.
func (n *consoleNavigator) Wait(ctx context.Context, timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-n.done:
		return true
	case <-ctx.Done():
		return false
	case <-t.C:
		return false
	}
}
