package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aueb-cf/inventory-service/internal/domain"
	"github.com/aueb-cf/inventory-service/internal/events"
	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

const bearerScheme = "Bearer"

// TokenValidator turns a raw bearer token into an identity.
type TokenValidator interface {
	Validate(token string) (domain.Identity, error)
}

// Recorder receives auth outcomes for metrics.
type Recorder interface {
	RecordTokenValidation(outcome string)
	RecordAuthzDecision(decision string)
}

// AuthMiddleware validates bearer tokens and installs the caller's identity.
// It never rejects anonymous requests; that is the Authorizer's job.
type AuthMiddleware struct {
	tokens     TokenValidator
	logger     *zap.Logger
	recorder   Recorder
	dispatcher events.Dispatcher
}

// NewAuthMiddleware constructs middleware. recorder and dispatcher may be nil.
func NewAuthMiddleware(tokens TokenValidator, logger *zap.Logger, recorder Recorder, dispatcher events.Dispatcher) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger, recorder: recorder, dispatcher: dispatcher}
}

// Handle runs once per request.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if _, ok := IdentityFromContext(c); ok {
		return c.Next()
	}

	raw, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	identity, err := m.tokens.Validate(raw)
	if err != nil {
		return m.reject(c, err)
	}

	m.record("valid")
	installIdentity(c, identity)
	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, err error) error {
	kind := TokenInvalid
	var tokErr *TokenError
	if errors.As(err, &tokErr) {
		kind = tokErr.Kind
	}

	m.logger.Warn("bearer token rejected",
		zap.String("reason", kind.String()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("ip", c.IP()),
		zap.Error(err))
	m.record(kind.String())

	if m.dispatcher != nil {
		event := events.NewEvent(events.EventTokenRejected, events.Actor{IP: c.IP()}, events.TokenRejectedPayload{
			Reason: kind.String(),
			Method: c.Method(),
			Path:   c.Path(),
		})
		if pubErr := m.dispatcher.Publish(c.UserContext(), event); pubErr != nil {
			m.logger.Warn("publish token_rejected", zap.Error(pubErr))
		}
	}

	if kind == TokenExpired {
		return apperrors.NewExpiredToken()
	}
	return apperrors.NewInvalidToken()
}

func (m *AuthMiddleware) record(outcome string) {
	if m.recorder != nil {
		m.recorder.RecordTokenValidation(outcome)
	}
}

// BearerToken extracts the token from an Authorization header value. Anything
// other than "Bearer <token>" reports false and is treated as no credential.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
