package application

import "errors"

var (
	// ErrInvalidCredentials is deliberately generic: callers must not learn
	// whether the email was unknown or the password wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden means the caller is authenticated but not the owner.
	ErrForbidden = errors.New("forbidden")
)
