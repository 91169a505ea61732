package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/aueb-cf/inventory-service/internal/domain"
	"github.com/aueb-cf/inventory-service/internal/events"
	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

// Authorizer enforces a Policy after AuthMiddleware has run.
type Authorizer struct {
	policy     *Policy
	logger     *zap.Logger
	recorder   Recorder
	dispatcher events.Dispatcher
}

// NewAuthorizer wraps policy as request middleware. recorder and dispatcher may be nil.
func NewAuthorizer(policy *Policy, logger *zap.Logger, recorder Recorder, dispatcher events.Dispatcher) *Authorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authorizer{policy: policy, logger: logger, recorder: recorder, dispatcher: dispatcher}
}

// Handle allows the request through or stops it with notAuthenticated/forbidden.
func (a *Authorizer) Handle(c *fiber.Ctx) error {
	// The router matches the raw path; refuse paths the policy would read differently.
	requestPath := c.Path()
	if canonical := CanonicalPath(requestPath); canonical != strings.TrimSuffix(requestPath, "/") && canonical != requestPath {
		return apperrors.NewValidationError("request path is not canonical", nil)
	}

	var identity *domain.Identity
	if id, ok := IdentityFromContext(c); ok {
		identity = &id
	}

	decision := a.policy.Evaluate(c.Method(), requestPath, identity)
	if a.recorder != nil {
		a.recorder.RecordAuthzDecision(decision.String())
	}
	if decision == DecisionAllow {
		return c.Next()
	}

	actor := events.Actor{IP: c.IP()}
	if identity != nil {
		actor.Subject = identity.Subject
		actor.Role = identity.Role
	}
	a.logger.Info("access denied",
		zap.String("decision", decision.String()),
		zap.String("method", c.Method()),
		zap.String("path", requestPath),
		zap.String("subject", actor.Subject))

	if a.dispatcher != nil {
		event := events.NewEvent(events.EventAccessDenied, actor, events.AccessDeniedPayload{
			Decision: decision.String(),
			Method:   c.Method(),
			Path:     requestPath,
		})
		if err := a.dispatcher.Publish(c.UserContext(), event); err != nil {
			a.logger.Warn("publish access_denied", zap.Error(err))
		}
	}

	if decision == DecisionUnauthenticated {
		return apperrors.NewNotAuthenticated("authentication required")
	}
	return apperrors.NewForbidden("insufficient role for this resource")
}
