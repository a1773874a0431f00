// ABOUTME: Process-wide session context holding the signed-in user's session id
// ABOUTME: Backed by a persistent state store under a fixed well-known key

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/newspulse/newspulse-client/internal/store"
)

// SessionKey is the well-known key the session id is persisted under.
const SessionKey = "loggedInUserId"

// SessionContext owns the session identifier for the running client.
// It is created once at startup, loaded with Init, and injected into the
// Gateway; nothing else writes the persisted value.
type SessionContext struct {
	mu     sync.RWMutex
	state  store.StateStore
	id     string
	logger *slog.Logger
}

// NewSessionContext creates a SessionContext over state. Pass nil logger for default.
func NewSessionContext(state store.StateStore, logger *slog.Logger) *SessionContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionContext{
		state:  state,
		logger: logger.With("component", "session"),
	}
}

// Init loads the persisted session id, if any.
func (s *SessionContext) Init(ctx context.Context) error {
	id, err := s.state.GetValue(ctx, SessionKey)
	if errors.Is(err, store.ErrNotFound) {
		id = ""
	} else if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	s.mu.Lock()
	s.id = id
	s.mu.Unlock()

	s.logger.Debug("session loaded", "signed_in", id != "")
	return nil
}

// ID returns the current session id and whether one is set.
func (s *SessionContext) ID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.id != ""
}

// Set persists id as the current session.
func (s *SessionContext) Set(ctx context.Context, id string) error {
	if err := s.state.SetValue(ctx, SessionKey, id); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
	return nil
}

// Clear forgets the session. The in-memory id is dropped even when the
// persistent delete fails.
func (s *SessionContext) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.id = ""
	s.mu.Unlock()

	if err := s.state.DeleteValue(ctx, SessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
