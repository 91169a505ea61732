package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrAdminRequired      = errors.New("admin role required")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrNotFound           = errors.New("not found")
	ErrInUse              = errors.New("still referenced")
	ErrAlreadyExists      = errors.New("already exists")
	ErrUnavailable        = errors.New("backing store unavailable")
)
