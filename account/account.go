// Package account provides a credential holder whose constructor rejects
// weak input with matchable sentinel errors.
package account

import (
	"crypto/subtle"
	"errors"
	"strings"
	"unicode/utf8"
)

// MinPasswordLen is the minimum password length in characters.
const MinPasswordLen = 8

var (
	ErrNameRequired     = errors.New("name is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// Account holds a name and password. The zero value is not usable; build one
// with New.
type Account struct {
	name     string
	password string
}

// New returns an Account, or nil and one of the sentinel errors.
func New(name, password string) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return nil, ErrPasswordTooShort
	}
	return &Account{name: name, password: password}, nil
}

// Name returns the account name.
func (a *Account) Name() string { return a.name }

// VerifyPassword returns ErrPasswordMismatch unless input equals the stored
// password.
func (a *Account) VerifyPassword(input string) error {
	if subtle.ConstantTimeCompare([]byte(a.password), []byte(input)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
