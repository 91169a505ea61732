package http

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aueb-cf/inventory-service/internal/auth"
	"github.com/aueb-cf/inventory-service/internal/observability"
	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

// MiddlewareConfig bundles the global middleware dependencies.
type MiddlewareConfig struct {
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Timeout        time.Duration
	AllowedOrigins []string
	Authentication *auth.AuthMiddleware
	Authorization  *auth.Authorizer
}

// RegisterMiddlewares attaches the global chain in its fixed order: request
// id, request logging, error rendering, timeout, CORS, authentication,
// authorization. Routes registered afterwards sit behind all of them.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg.Logger))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
			AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		}))
	}
	app.Use(cfg.Authentication.Handle)
	app.Use(cfg.Authorization.Handle)
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				err = renderError(c, logger, err)
			}
		}()
		return c.Next()
	}
}

// ErrorHandler is the app-level fallback for errors raised outside the chain.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return renderError(c, logger, err)
	}
}

func renderError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var domainErr *apperrors.DomainError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &domainErr):
	case errors.As(err, &fiberErr):
		domainErr = apperrors.FromStatus(fiberErr.Code, fiberErr.Message)
	default:
		domainErr = apperrors.ToDomainError(err)
	}

	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("code", domainErr.Code),
			zap.String("path", c.Path()),
			zap.Error(domainErr))
	}
	return c.Status(domainErr.HTTPStatus).JSON(domainErr.Body())
}
