// ABOUTME: Stateless precondition checks for the sign-up and sign-in forms
// ABOUTME: Failures are ValidationErrors whose text is shown to the user as-is

package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the sign-up form accepts.
const MinPasswordLength = 6

// Validation messages.
const (
	MsgSignUpMissingFields = "All fields are required."
	MsgSignUpBadEmail      = "Invalid email format."
	MsgSignUpShortPassword = "Password must be at least 6 characters."
	MsgSignInMissingFields = "Please enter both email and password."
	MsgSignInBadEmail      = "Please enter a valid email address."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignUpForm holds the raw sign-up field values.
type SignUpForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// SignInForm holds the raw sign-in field values.
type SignInForm struct {
	Email    string
	Password string
}

// Trimmed returns the form with surrounding whitespace removed from every field.
func (f SignUpForm) Trimmed() SignUpForm {
	return SignUpForm{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Password:  strings.TrimSpace(f.Password),
	}
}

// Trimmed returns the form with surrounding whitespace removed from every field.
func (f SignInForm) Trimmed() SignInForm {
	return SignInForm{
		Email:    strings.TrimSpace(f.Email),
		Password: strings.TrimSpace(f.Password),
	}
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateSignUp checks an already trimmed sign-up form.
func ValidateSignUp(f SignUpForm) error {
	if f.FirstName == "" || f.LastName == "" || f.Email == "" || f.Password == "" {
		return ValidationError(MsgSignUpMissingFields)
	}
	if !ValidEmail(f.Email) {
		return ValidationError(MsgSignUpBadEmail)
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return ValidationError(MsgSignUpShortPassword)
	}
	return nil
}

// ValidateSignIn checks an already trimmed sign-in form.
func ValidateSignIn(f SignInForm) error {
	if f.Email == "" || f.Password == "" {
		return ValidationError(MsgSignInMissingFields)
	}
	if !ValidEmail(f.Email) {
		return ValidationError(MsgSignInBadEmail)
	}
	return nil
}
