package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aueb-cf/inventory-service/internal/api/dto"
	"github.com/aueb-cf/inventory-service/internal/auth"
	"github.com/aueb-cf/inventory-service/internal/domain"
	"github.com/aueb-cf/inventory-service/internal/service"
	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

// UsersHandler exposes account registration.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/users/register. Anonymous callers may only
// create USER accounts.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	var role domain.Role
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
		}
		role = parsed
	}

	var caller *domain.Identity
	if id, ok := auth.IdentityFromContext(c); ok {
		caller = &id
	}

	user, err := h.auth.Register(c.UserContext(), caller, service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Role:      role,
	})
	if err != nil {
		return serviceError(err, "user")
	}

	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}
