// ABOUTME: SessionGateway wrapping an identity provider's create, sign-in, and sign-out calls
// ABOUTME: Persists the session id on sign-in and clears it unconditionally on sign-out

package auth

import (
	"context"
	"log/slog"
)

// Provider is the external identity service.
type Provider interface {
	CreateAccount(ctx context.Context, email, password string) (uid string, err error)
	SignIn(ctx context.Context, email, password string) (uid string, err error)
	SignOut(ctx context.Context) error
}

// Profile holds the fields written once when an account is created.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
}

// ProfileWriter stores user profiles keyed by uid.
type ProfileWriter interface {
	WriteProfile(ctx context.Context, uid string, profile Profile) error
}

// Gateway gives the rest of the client one result/error contract over the
// identity provider. It performs no validation of its inputs.
type Gateway struct {
	provider Provider
	profiles ProfileWriter
	session  *SessionContext
	logger   *slog.Logger
}

// NewGateway creates a Gateway. Pass nil logger for default.
func NewGateway(provider Provider, profiles ProfileWriter, session *SessionContext, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		provider: provider,
		profiles: profiles,
		session:  session,
		logger:   logger.With("component", "gateway"),
	}
}

// CreateAccount registers a new account and writes its profile. It returns
// the new session id, or an *AuthError of kind EmailInUse, WeakPassword, or Other.
// A failed profile write is logged and does not fail the call.
func (g *Gateway) CreateAccount(ctx context.Context, firstName, lastName, email, password string) (string, error) {
	uid, err := g.provider.CreateAccount(ctx, email, password)
	if err != nil {
		authErr := classify(err, KindEmailInUse, KindWeakPassword)
		g.logger.Info("account creation rejected", "kind", authErr.Kind.String())
		return "", authErr
	}

	profile := Profile{FirstName: firstName, LastName: lastName, Email: email}
	if err := g.profiles.WriteProfile(ctx, uid, profile); err != nil {
		g.logger.Error("writing profile", "uid", uid, "error", err)
	}

	g.logger.Info("account created", "uid", uid)
	return uid, nil
}

// SignIn authenticates and persists the returned session id. Errors are
// *AuthError of kind UserNotFound, BadCredential, or Other.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (string, error) {
	uid, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		authErr := classify(err, KindUserNotFound, KindBadCredential)
		g.logger.Info("sign-in rejected", "kind", authErr.Kind.String())
		return "", authErr
	}

	if err := g.session.Set(ctx, uid); err != nil {
		return "", &AuthError{Kind: KindOther, Detail: err.Error()}
	}

	g.logger.Info("signed in", "uid", uid)
	return uid, nil
}

// SignOut clears the local session first, whatever the provider later
// reports, then signs out of the provider.
func (g *Gateway) SignOut(ctx context.Context) error {
	if err := g.session.Clear(ctx); err != nil {
		g.logger.Error("clearing local session", "error", err)
	}

	if err := g.provider.SignOut(ctx); err != nil {
		return classify(err)
	}

	g.logger.Info("signed out")
	return nil
}

// Session returns the session context the gateway writes to.
func (g *Gateway) Session() *SessionContext {
	return g.session
}
