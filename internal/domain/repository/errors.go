package repository

import "errors"

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken surfaces the users.email unique constraint.
	ErrEmailTaken = errors.New("email already registered")
)
