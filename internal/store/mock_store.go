// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sync"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu       sync.RWMutex
	state    map[string]string   // keyed by state key
	accounts map[string]*Account // keyed by email
	profiles map[string]*Profile // keyed by uid

	// Fail, when set, is returned by every write.
	Fail error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		state:    make(map[string]string),
		accounts: make(map[string]*Account),
		profiles: make(map[string]*Profile),
	}
}

// GetValue returns the value stored under key.
func (m *MockStore) GetValue(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.state[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// SetValue stores value under key.
func (m *MockStore) SetValue(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail != nil {
		return m.Fail
	}
	m.state[key] = value
	return nil
}

// DeleteValue removes key.
func (m *MockStore) DeleteValue(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail != nil {
		return m.Fail
	}
	delete(m.state, key)
	return nil
}

// CreateAccount stores a new account.
func (m *MockStore) CreateAccount(ctx context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail != nil {
		return m.Fail
	}
	if _, exists := m.accounts[account.Email]; exists {
		return ErrDuplicateEmail
	}

	// Make a copy to avoid external modification
	a := *account
	m.accounts[a.Email] = &a
	return nil
}

// GetAccountByEmail retrieves an account by email.
func (m *MockStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// SaveProfile stores a profile.
func (m *MockStore) SaveProfile(ctx context.Context, profile *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail != nil {
		return m.Fail
	}
	p := *profile
	m.profiles[p.UID] = &p
	return nil
}

// GetProfile retrieves a profile by uid.
func (m *MockStore) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// Close is a no-op for the mock.
func (m *MockStore) Close() error {
	return nil
}
