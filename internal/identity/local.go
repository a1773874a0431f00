// ABOUTME: Offline identity provider keeping accounts and profiles in the client store
// ABOUTME: Hashes passwords with bcrypt and gates profile writes on a signed id token

package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/newspulse/newspulse-client/internal/auth"
	"github.com/newspulse/newspulse-client/internal/store"
)

// ErrUnauthorized is returned when a profile write is not backed by a valid
// id token for the target uid.
var ErrUnauthorized = errors.New("unauthorized")

// minPasswordLength matches the hosted provider's own floor.
const minPasswordLength = 6

// LocalStore is the persistence the local provider needs.
type LocalStore interface {
	store.AccountStore
	store.ProfileStore
}

// Local is an identity provider that never leaves the machine.
type Local struct {
	store    LocalStore
	issuer   *auth.TokenIssuer
	tokenTTL time.Duration
	cost     int
	logger   *slog.Logger

	mu      sync.Mutex
	idToken string
}

// LocalOption configures a Local provider.
type LocalOption func(*Local)

// WithBcryptCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) LocalOption {
	return func(l *Local) { l.cost = cost }
}

// NewLocal creates a Local provider. A zero tokenTTL means 24h.
func NewLocal(s LocalStore, issuer *auth.TokenIssuer, tokenTTL time.Duration, logger *slog.Logger, opts ...LocalOption) *Local {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &Local{
		store:    s,
		issuer:   issuer,
		tokenTTL: tokenTTL,
		cost:     bcrypt.DefaultCost,
		logger:   logger.With("component", "local_identity"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateAccount stores a new account and signs it in.
func (l *Local) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return "", &auth.ProviderError{Code: auth.CodeWeakPassword, Message: "Password should be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	account := &store.Account{
		UID:          uuid.New().String(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := l.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", &auth.ProviderError{Code: auth.CodeEmailInUse, Message: "The email address is already in use by another account."}
		}
		return "", fmt.Errorf("creating account: %w", err)
	}

	if err := l.mint(account.UID); err != nil {
		return "", err
	}
	l.logger.Info("account created", "uid", account.UID)
	return account.UID, nil
}

// SignIn checks the password against the stored hash.
func (l *Local) SignIn(ctx context.Context, email, password string) (string, error) {
	account, err := l.store.GetAccountByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", &auth.ProviderError{Code: auth.CodeUserNotFound, Message: "There is no user record corresponding to this identifier."}
	}
	if err != nil {
		return "", fmt.Errorf("looking up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", &auth.ProviderError{Code: auth.CodeWrongPassword, Message: "The password is invalid."}
	}

	if err := l.mint(account.UID); err != nil {
		return "", err
	}
	return account.UID, nil
}

// SignOut discards the id token.
func (l *Local) SignOut(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.idToken = ""
	return nil
}

// WriteProfile stores profile under uid if the held id token belongs to uid.
func (l *Local) WriteProfile(ctx context.Context, uid string, profile auth.Profile) error {
	l.mu.Lock()
	token := l.idToken
	l.mu.Unlock()

	if token == "" {
		return fmt.Errorf("%w: not signed in", ErrUnauthorized)
	}
	sub, err := l.issuer.Verify(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if sub != uid {
		return fmt.Errorf("%w: token subject %s cannot write %s", ErrUnauthorized, sub, uid)
	}

	return l.store.SaveProfile(ctx, &store.Profile{
		UID:       uid,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		CreatedAt: time.Now().UTC(),
	})
}

// Token returns the current id token, empty when signed out.
func (l *Local) Token() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.idToken
}

func (l *Local) mint(uid string) error {
	token, err := l.issuer.Issue(uid, l.tokenTTL)
	if err != nil {
		return fmt.Errorf("issuing id token: %w", err)
	}
	l.mu.Lock()
	l.idToken = token
	l.mu.Unlock()
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
