package domain

import "time"

// Identity is who the caller is once a token has been verified.
// It is never mutated after issuance.
type Identity struct {
	Subject string
	Role    Role
}

// Token describes an issued bearer token.
type Token struct {
	ID        string
	Value     string
	Identity  Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}
