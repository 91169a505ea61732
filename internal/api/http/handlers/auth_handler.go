package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aueb-cf/inventory-service/internal/api/dto"
	"github.com/aueb-cf/inventory-service/internal/service"
	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Authenticate handles POST /api/auth/authenticate.
func (h *AuthHandler) Authenticate(c *fiber.Ctx) error {
	var req dto.AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	result, err := h.auth.Authenticate(c.UserContext(), req.Username, req.Password, c.IP())
	if err != nil {
		return serviceError(err, "user")
	}

	return c.JSON(dto.AuthenticateResponse{
		Firstname: result.User.Firstname,
		Lastname:  result.User.Lastname,
		Token:     result.Token.Value,
		ExpiresAt: result.Token.ExpiresAt,
	})
}
