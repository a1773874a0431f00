// ABOUTME: Error taxonomy for form validation and identity provider failures
// ABOUTME: Maps provider error codes onto the small set of kinds the UI reacts to

package auth

import (
	"errors"
	"fmt"
)

// ValidationError is a form precondition failure. Its text is shown verbatim.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// ErrorKind classifies identity provider failures.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindEmailInUse
	KindWeakPassword
	KindUserNotFound
	KindBadCredential
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmailInUse:
		return "email_in_use"
	case KindWeakPassword:
		return "weak_password"
	case KindUserNotFound:
		return "user_not_found"
	case KindBadCredential:
		return "bad_credential"
	default:
		return "other"
	}
}

// AuthError is what the Gateway returns when the provider rejects a call.
type AuthError struct {
	Kind   ErrorKind
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Provider error codes. Providers report failures as *ProviderError carrying
// one of these codes, or any other code for failures the UI does not single out.
const (
	CodeEmailInUse        = "auth/email-already-in-use"
	CodeWeakPassword      = "auth/weak-password"
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeInvalidCredential = "auth/invalid-credential"
)

// ProviderError is a coded failure from an identity provider.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// classify maps err onto a kind, keeping only the kinds listed in allowed;
// everything else becomes KindOther with the error text as detail.
func classify(err error, allowed ...ErrorKind) *AuthError {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return &AuthError{Kind: KindOther, Detail: err.Error()}
	}

	kind := KindOther
	switch pe.Code {
	case CodeEmailInUse:
		kind = KindEmailInUse
	case CodeWeakPassword:
		kind = KindWeakPassword
	case CodeUserNotFound:
		kind = KindUserNotFound
	case CodeWrongPassword, CodeInvalidCredential:
		kind = KindBadCredential
	}

	for _, k := range allowed {
		if k == kind {
			return &AuthError{Kind: kind, Detail: pe.Error()}
		}
	}
	return &AuthError{Kind: KindOther, Detail: pe.Error()}
}
