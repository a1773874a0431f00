// Package auth provides the session layer for the newspulse client.
//
// # Session Gateway
//
// Gateway wraps an identity Provider with a single result/error contract:
//
//	gw := auth.NewGateway(provider, profiles, session, logger)
//	uid, err := gw.SignIn(ctx, email, password)
//
// Provider failures come back as *AuthError with a Kind the forms map onto
// banner text. Codes outside the per-operation set collapse to KindOther and
// keep the provider's message as Detail.
//
// # Session Context
//
// SessionContext holds the signed-in user's id in memory and mirrors it to a
// store.StateStore under SessionKey so it survives restarts. Sign-out clears
// memory and the store before the provider is asked to sign out.
//
// # Forms
//
// Forms trims and validates input, calls the Gateway, reports the outcome in a
// named banner region, and schedules navigation to the app root after
// RedirectDelay on success.
//
// # Tokens
//
// TokenIssuer signs HS256 session tokens for the local identity provider.
// An empty secret gets a random per-process key.
package auth
