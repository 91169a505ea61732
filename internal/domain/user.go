package domain

import "time"

// User is a stored account able to authenticate against the API.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Firstname    string
	Lastname     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the identity bound to this account. The username is the token subject.
func (u *User) Identity() Identity {
	return Identity{Subject: u.Username, Role: u.Role}
}
