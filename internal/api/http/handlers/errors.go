package handlers

import (
	"context"
	"errors"

	"github.com/aueb-cf/inventory-service/internal/service"
	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

// serviceError maps service sentinels onto API errors. resource names the
// entity for notFound messages.
func serviceError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewNotAuthenticated("bad credentials")
	case errors.Is(err, service.ErrAccountLocked):
		return apperrors.NewTooManyAttempts("account temporarily locked after repeated failed logins")
	case errors.Is(err, service.ErrAdminRequired):
		return apperrors.NewForbidden("only an ADMIN may create ADMIN accounts")
	case errors.Is(err, service.ErrPasswordTooLong):
		return apperrors.NewValidationError("request validation failed", map[string]any{
			"fields": map[string]any{"password": "must be at most 72 bytes"},
		})
	case errors.Is(err, service.ErrUsernameTaken):
		return apperrors.NewConflict("username already registered", nil)
	case errors.Is(err, service.ErrAlreadyExists):
		return apperrors.NewConflict(resource+" already exists", nil)
	case errors.Is(err, service.ErrInUse):
		return apperrors.NewConflict(resource+" is still referenced", nil)
	case errors.Is(err, service.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, service.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewServiceUnavailable(err)
	default:
		return apperrors.NewInternalError(err)
	}
}
