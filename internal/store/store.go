// ABOUTME: Store interfaces and data types for newspulse client persistence
// ABOUTME: Defines client state, local account, and profile records

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an account with the same email already exists
var ErrDuplicateEmail = errors.New("email already registered")

// Account is a credential record kept by the local identity provider
type Account struct {
	UID          string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile holds the user fields written once at account creation
type Profile struct {
	UID       string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

// StateStore is a small key/value area for client state such as the session id.
type StateStore interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

// AccountStore persists local identity provider accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
}

// ProfileStore persists user profiles keyed by uid.
type ProfileStore interface {
	SaveProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, uid string) (*Profile, error)
}

// Store combines every persistence concern of the client
type Store interface {
	StateStore
	AccountStore
	ProfileStore

	// Close releases any resources held by the store
	Close() error
}
