// Package identity implements the identity providers behind auth.Gateway.
//
// Firebase talks to the hosted Identity Toolkit and Firestore over REST.
// Local keeps bcrypt-hashed accounts and profiles in the client's SQLite
// store and signs its own id tokens, so the client works without a project.
//
// Both report rejections as *auth.ProviderError with auth/* codes.
package identity
