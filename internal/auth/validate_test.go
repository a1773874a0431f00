// ABOUTME: Tests for the sign-up and sign-in precondition checks
// ABOUTME: Covers field presence, email shape, password length, and trimming

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ada@example.com", true},
		{"a.b+c@sub.example.co", true},
		{"bad", false},
		{"no-at.example.com", false},
		{"no@dot", false},
		{"two@@example.com", false},
		{"spa ce@example.com", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func TestValidateSignUp(t *testing.T) {
	valid := SignUpForm{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret1"}

	tests := []struct {
		name string
		form SignUpForm
		want error
	}{
		{"valid", valid, nil},
		{"missing first name", SignUpForm{LastName: "L", Email: "a@b.co", Password: "secret1"}, ValidationError(MsgSignUpMissingFields)},
		{"missing password", SignUpForm{FirstName: "A", LastName: "L", Email: "a@b.co"}, ValidationError(MsgSignUpMissingFields)},
		{"bad email", SignUpForm{FirstName: "A", LastName: "L", Email: "bad", Password: "secret1"}, ValidationError(MsgSignUpBadEmail)},
		{"short password", SignUpForm{FirstName: "A", LastName: "L", Email: "a@b.co", Password: "12345"}, ValidationError(MsgSignUpShortPassword)},
		{"six runes", SignUpForm{FirstName: "A", LastName: "L", Email: "a@b.co", Password: "ééééé1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSignUp(tt.form))
		})
	}
}

func TestValidateSignIn(t *testing.T) {
	assert.NoError(t, ValidateSignIn(SignInForm{Email: "a@b.co", Password: "x"}))
	assert.Equal(t, ValidationError(MsgSignInMissingFields), ValidateSignIn(SignInForm{Email: "a@b.co"}))
	assert.Equal(t, ValidationError(MsgSignInMissingFields), ValidateSignIn(SignInForm{Password: "x"}))
	assert.Equal(t, ValidationError(MsgSignInBadEmail), ValidateSignIn(SignInForm{Email: "bad", Password: "x"}))
}

func TestTrimmed(t *testing.T) {
	up := SignUpForm{FirstName: " Ada ", LastName: "\tL\n", Email: " a@b.co ", Password: " pw "}.Trimmed()
	assert.Equal(t, SignUpForm{FirstName: "Ada", LastName: "L", Email: "a@b.co", Password: "pw"}, up)

	in := SignInForm{Email: " a@b.co", Password: "pw "}.Trimmed()
	assert.Equal(t, SignInForm{Email: "a@b.co", Password: "pw"}, in)
}
