// Package store provides client-side persistence for newspulse.
//
// # Overview
//
// The store holds the state a browser would keep in localStorage, plus the
// records the offline identity provider needs:
//
//   - client_state: small key/value pairs, notably the session identifier
//   - accounts: local identity provider credentials (bcrypt hashes)
//   - profiles: first name, last name, and email written at sign-up
//
// # Implementations
//
// SQLiteStore uses modernc.org/sqlite (pure Go, no cgo):
//
//	s, err := store.NewSQLiteStore("~/.local/share/newspulse/client.db")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
// MockStore keeps everything in memory for tests. Setting MockStore.Fail makes
// every write return that error.
//
// # Errors
//
//   - ErrNotFound: the key, account, or profile does not exist
//   - ErrDuplicateEmail: CreateAccount with an email already registered
package store
