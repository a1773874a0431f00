// ABOUTME: Wiring of config, store, identity provider, session, and form flows
// ABOUTME: Shared by every subcommand that touches the user's session

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/newspulse/newspulse-client/internal/auth"
	"github.com/newspulse/newspulse-client/internal/clock"
	"github.com/newspulse/newspulse-client/internal/config"
	"github.com/newspulse/newspulse-client/internal/identity"
	"github.com/newspulse/newspulse-client/internal/notify"
	"github.com/newspulse/newspulse-client/internal/store"
)

// identityProvider is what both identity implementations offer.
type identityProvider interface {
	auth.Provider
	auth.ProfileWriter
}

type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *store.SQLiteStore
	session   *auth.SessionContext
	gateway   *auth.Gateway
	forms     *auth.Forms
	navigator *consoleNavigator
}

// loadConfig reads an explicit path strictly and the default path leniently.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(config.Path())
}

func newApp(ctx context.Context, configPath string, logOut io.Writer, surface notify.Surface, navOut io.Writer) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := setupLogger(cfg.Logging, logOut)

	st, err := store.NewSQLiteStore(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	session := auth.NewSessionContext(st, logger)
	if err := session.Init(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("loading session: %w", err)
	}

	provider, err := newProvider(cfg, st, logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	gw := auth.NewGateway(provider, provider, session, logger)
	banner := notify.NewBanner(surface, clock.Real{}, cfg.Notifications.HideAfter)
	navigator := newConsoleNavigator(navOut)
	forms := auth.NewForms(gw, banner, navigator, clock.Real{}, auth.FormsConfig{
		AppRoot:       cfg.Navigation.AppRoot,
		LoginPage:     cfg.Navigation.LoginPage,
		RedirectDelay: cfg.Navigation.RedirectDelay,
	}, logger)

	logger.Debug("client ready", "provider", cfg.Identity.Provider, "store", cfg.Session.Path)
	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		session:   session,
		gateway:   gw,
		forms:     forms,
		navigator: navigator,
	}, nil
}

func newProvider(cfg *config.Config, st *store.SQLiteStore, logger *slog.Logger) (identityProvider, error) {
	switch cfg.Identity.Provider {
	case config.ProviderFirebase:
		return identity.NewFirebase(identity.FirebaseConfig{
			APIKey:       cfg.Identity.APIKey,
			ProjectID:    cfg.Identity.ProjectID,
			AuthURL:      cfg.Identity.AuthURL,
			FirestoreURL: cfg.Identity.FirestoreURL,
		}, nil, logger), nil
	case config.ProviderLocal:
		issuer, err := auth.NewTokenIssuer([]byte(cfg.Identity.JWTSecret))
		if err != nil {
			return nil, err
		}
		return identity.NewLocal(st, issuer, cfg.Identity.TokenTTL, logger), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.Identity.Provider)
	}
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing store", "error", err)
	}
}

// newConsoleApp wires an app that prints banners and navigation to stdout
// and logs to stderr.
func newConsoleApp(ctx context.Context, configPath string) (*app, error) {
	return newApp(ctx, configPath, os.Stderr, newConsoleSurface(os.Stdout), os.Stdout)
}
