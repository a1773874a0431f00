// ABOUTME: Tests for SQLite store implementation
// ABOUTME: Covers client state, account uniqueness, and profile persistence

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "client.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestSQLiteStore_ClientState(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetValue(ctx, "loggedInUserId")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SetValue(ctx, "loggedInUserId", "uid-1"))
	v, err := store.GetValue(ctx, "loggedInUserId")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", v)

	// Last write wins
	require.NoError(t, store.SetValue(ctx, "loggedInUserId", "uid-2"))
	v, err = store.GetValue(ctx, "loggedInUserId")
	require.NoError(t, err)
	assert.Equal(t, "uid-2", v)

	require.NoError(t, store.DeleteValue(ctx, "loggedInUserId"))
	_, err = store.GetValue(ctx, "loggedInUserId")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine
	require.NoError(t, store.DeleteValue(ctx, "loggedInUserId"))
}

func TestSQLiteStore_ClientStateSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "client.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.SetValue(ctx, "loggedInUserId", "uid-persisted"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer second.Close()

	v, err := second.GetValue(ctx, "loggedInUserId")
	require.NoError(t, err)
	assert.Equal(t, "uid-persisted", v)
}

func TestSQLiteStore_Accounts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	acct := &Account{
		UID:          "uid-1",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.CreateAccount(ctx, acct))

	got, err := store.GetAccountByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, acct.UID, got.UID)
	assert.Equal(t, acct.PasswordHash, got.PasswordHash)
	assert.True(t, acct.CreatedAt.Equal(got.CreatedAt))

	dup := &Account{UID: "uid-2", Email: "ada@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	err = store.CreateAccount(ctx, dup)
	assert.True(t, errors.Is(err, ErrDuplicateEmail), "expected ErrDuplicateEmail, got %v", err)

	_, err = store.GetAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Profiles(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetProfile(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrNotFound)

	p := &Profile{
		UID:       "uid-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SaveProfile(ctx, p))

	got, err := store.GetProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Equal(t, "ada@example.com", got.Email)
}
