package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and missing or unknown claims.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for a correctly signed token used after its expiry.
	ErrExpiredToken = errors.New("expired token")
)

// TokenErrorKind classifies a token rejection.
type TokenErrorKind int

const (
	TokenInvalid TokenErrorKind = iota + 1
	TokenExpired
)

func (k TokenErrorKind) String() string {
	if k == TokenExpired {
		return "expired"
	}
	return "invalid"
}

// TokenError is the only error Validate returns. Cause is for logs, never for clients.
type TokenError struct {
	Kind  TokenErrorKind
	Cause error
}

func (e *TokenError) sentinel() error {
	if e.Kind == TokenExpired {
		return ErrExpiredToken
	}
	return ErrInvalidToken
}

func (e *TokenError) Error() string {
	if e.Cause == nil {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.sentinel(), e.Cause)
}

func (e *TokenError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *TokenError) Unwrap() error {
	return e.Cause
}

func invalid(cause error) error {
	return &TokenError{Kind: TokenInvalid, Cause: cause}
}

// Claims describes the JWT payload. Subject, IssuedAt and ExpiresAt live in
// the registered claims.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager handles issuing and validating JWT tokens.
// It holds no mutable state and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithIssuer sets the iss claim on issued tokens and requires it on validation.
func WithIssuer(issuer string) TokenOption {
	return func(tm *TokenManager) { tm.issuer = issuer }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) { tm.now = now }
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Issue builds and signs a token for a verified identity.
func (tm *TokenManager) Issue(identity domain.Identity) (domain.Token, error) {
	if identity.Subject == "" {
		return domain.Token{}, errors.New("identity subject is empty")
	}
	if !identity.Role.Valid() {
		return domain.Token{}, fmt.Errorf("identity role %q is not a known role", identity.Role)
	}

	now := tm.now()
	claims := &Claims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tm.issuer,
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return domain.Token{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.Token{
		ID:        claims.ID,
		Value:     signed,
		Identity:  identity,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Validate checks a token against the current time.
func (tm *TokenManager) Validate(token string) (domain.Identity, error) {
	return tm.ValidateAt(token, tm.now())
}

// ValidateAt checks structure, then signature, then expiry, then the subject
// and role claims. Every failure is a *TokenError.
func (tm *TokenManager) ValidateAt(token string, now time.Time) (domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	}
	if tm.issuer != "" {
		opts = append(opts, jwt.WithIssuer(tm.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, &TokenError{Kind: TokenExpired, Cause: err}
		}
		return domain.Identity{}, invalid(err)
	}

	if claims.Subject == "" {
		return domain.Identity{}, invalid(errors.New("missing subject claim"))
	}
	if claims.Role == "" {
		return domain.Identity{}, invalid(errors.New("missing role claim"))
	}
	if !claims.Role.Valid() {
		return domain.Identity{}, invalid(fmt.Errorf("unknown role claim %q", claims.Role))
	}
	return domain.Identity{Subject: claims.Subject, Role: claims.Role}, nil
}
