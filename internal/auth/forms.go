// ABOUTME: Sign-up, sign-in, and logout flows driving the Gateway from form input
// ABOUTME: Every outcome ends in a banner; success schedules a deferred navigation

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/newspulse/newspulse-client/internal/clock"
)

// Banner regions the forms report into.
const (
	SignUpRegion = "signUpMessage"
	SignInRegion = "signInMessage"
)

// Outcome messages.
const (
	MsgAccountCreated   = "Account created successfully!"
	MsgEmailExists      = "Email already exists."
	MsgWeakPassword     = "Weak password. Use at least 6 characters."
	MsgLoginSuccessful  = "Login successful!"
	MsgNoAccount        = "No account found with that email."
	MsgWrongCredentials = "Incorrect email or password."
)

// DefaultRedirectDelay is how long a success banner is shown before navigating.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Notifier shows a status message in a region. notify.Banner implements it.
type Notifier interface {
	Show(message, target string, isError bool)
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(destination string)
}

// FormsConfig holds navigation policy for the forms.
type FormsConfig struct {
	AppRoot       string
	LoginPage     string
	RedirectDelay time.Duration
}

// Forms is the caller side of the Gateway: it validates input, reports
// results through the Notifier, and owns the redirect policy.
type Forms struct {
	gateway   *Gateway
	notifier  Notifier
	navigator Navigator
	scheduler clock.Scheduler
	cfg       FormsConfig
	logger    *slog.Logger
}

// NewForms creates Forms. A nil scheduler uses the real clock and a zero
// RedirectDelay uses DefaultRedirectDelay.
func NewForms(gateway *Gateway, notifier Notifier, navigator Navigator, scheduler clock.Scheduler, cfg FormsConfig, logger *slog.Logger) *Forms {
	if scheduler == nil {
		scheduler = clock.Real{}
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Forms{
		gateway:   gateway,
		notifier:  notifier,
		navigator: navigator,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    logger.With("component", "forms"),
	}
}

// SubmitSignUp validates and submits the sign-up form. The returned error is
// the ValidationError or *AuthError that was shown, nil on success.
func (f *Forms) SubmitSignUp(ctx context.Context, form SignUpForm) error {
	form = form.Trimmed()
	if err := ValidateSignUp(form); err != nil {
		f.notifier.Show(err.Error(), SignUpRegion, true)
		return err
	}

	_, err := f.gateway.CreateAccount(ctx, form.FirstName, form.LastName, form.Email, form.Password)
	if err != nil {
		f.notifier.Show(signUpFailure(err), SignUpRegion, true)
		return err
	}

	f.notifier.Show(MsgAccountCreated, SignUpRegion, false)
	f.redirect(f.cfg.AppRoot)
	return nil
}

// SubmitSignIn validates and submits the sign-in form. The returned error is
// the ValidationError or *AuthError that was shown, nil on success.
func (f *Forms) SubmitSignIn(ctx context.Context, form SignInForm) error {
	form = form.Trimmed()
	if err := ValidateSignIn(form); err != nil {
		f.notifier.Show(err.Error(), SignInRegion, true)
		return err
	}

	_, err := f.gateway.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		f.notifier.Show(signInFailure(err), SignInRegion, true)
		return err
	}

	f.notifier.Show(MsgLoginSuccessful, SignInRegion, false)
	f.redirect(f.cfg.AppRoot)
	return nil
}

// Logout signs out and navigates to the login page once the provider
// confirms. On failure the user stays put and the error is only logged.
func (f *Forms) Logout(ctx context.Context) error {
	if err := f.gateway.SignOut(ctx); err != nil {
		f.logger.Error("error signing out", "error", err)
		return err
	}
	f.navigator.Navigate(f.cfg.LoginPage)
	return nil
}

func (f *Forms) redirect(destination string) {
	f.scheduler.AfterFunc(f.cfg.RedirectDelay, func() {
		f.navigator.Navigate(destination)
	})
}

func signUpFailure(err error) string {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return "Error: " + err.Error()
	}
	switch authErr.Kind {
	case KindEmailInUse:
		return MsgEmailExists
	case KindWeakPassword:
		return MsgWeakPassword
	default:
		return "Error: " + authErr.Detail
	}
}

func signInFailure(err error) string {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return "Login failed: " + err.Error()
	}
	switch authErr.Kind {
	case KindUserNotFound:
		return MsgNoAccount
	case KindBadCredential:
		return MsgWrongCredentials
	default:
		return "Login failed: " + authErr.Detail
	}
}
