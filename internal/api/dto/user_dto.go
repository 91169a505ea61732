package dto

import (
	"time"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// UserRegisterRequest payload for new accounts. Role defaults to USER.
type UserRegisterRequest struct {
	Username  string `json:"username" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,strongpassword,maxbytes=72"`
	Firstname string `json:"firstname" validate:"required,max=255"`
	Lastname  string `json:"lastname" validate:"required,max=255"`
	Role      string `json:"role" validate:"omitempty,role"`
}

// UserResponse is the read-only view of an account.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse maps a stored user, dropping the password hash.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
