package dto

import "time"

// AuthenticateRequest is the login payload.
type AuthenticateRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// AuthenticateResponse carries the issued token and who it belongs to.
type AuthenticateResponse struct {
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
