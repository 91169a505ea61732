package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

const identityKey = "auth_identity"

type identityCtxKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromUserContext reads the identity installed for this request, for
// code that only sees a context.Context.
func IdentityFromUserContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return identity, ok
}

// IdentityFromContext retrieves the authenticated caller of this request.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

// installIdentity binds identity to this request only: the fiber locals and
// the request's user context. Both are dropped when the request completes.
func installIdentity(c *fiber.Ctx, identity domain.Identity) {
	c.Locals(identityKey, identity)
	c.SetUserContext(WithIdentity(c.UserContext(), identity))
}
