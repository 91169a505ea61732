package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aueb-cf/inventory-service/internal/auth"
	"github.com/aueb-cf/inventory-service/internal/domain"
	"github.com/aueb-cf/inventory-service/internal/events"
	"github.com/aueb-cf/inventory-service/internal/repository"
)

// TokenIssuer mints tokens for verified identities.
type TokenIssuer interface {
	Issue(identity domain.Identity) (domain.Token, error)
}

// LoginRecorder receives login outcomes for metrics.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

// AuthService verifies credentials, issues tokens and registers accounts.
type AuthService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	guard      auth.LoginGuard
	dispatcher events.Dispatcher
	recorder   LoginRecorder
	logger     *zap.Logger
	bcryptCost int
	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// AuthDependencies encapsulates collaborators of the auth service.
// Guard, Dispatcher, Recorder and Logger are optional.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     TokenIssuer
	Guard      auth.LoginGuard
	Dispatcher events.Dispatcher
	Recorder   LoginRecorder
	Logger     *zap.Logger
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	cost := auth.ClampCost(deps.BcryptCost)
	dummy, err := auth.HashPassword("inventory-dummy-password", cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	s := &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		guard:      deps.Guard,
		dispatcher: deps.Dispatcher,
		recorder:   deps.Recorder,
		logger:     deps.Logger,
		bcryptCost: cost,
		dummyHash:  dummy,
	}
	if s.guard == nil {
		s.guard = auth.NoopLoginGuard{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// AuthResult is a successful login.
type AuthResult struct {
	User  *domain.User
	Token domain.Token
}

// VerifyCredentials checks username and password against the stored hash.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	switch {
	case err == nil:
	case repository.IsNotFound(err):
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, ErrInvalidCredentials
	case errors.Is(err, repository.ErrUnavailable):
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Error("stored password hash unusable", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}
	if !user.Role.Valid() {
		s.logger.Error("stored role unknown", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Authenticate runs the full login flow: lockout check, credential check,
// token issuance. ip is recorded on audit events only.
func (s *AuthService) Authenticate(ctx context.Context, username, password, ip string) (*AuthResult, error) {
	actor := events.Actor{Subject: username, IP: ip}
	payload := events.LoginPayload{Username: username}

	if s.guard.Locked(ctx, username) {
		s.record("locked")
		s.publish(ctx, events.NewEvent(events.EventLoginLocked, actor, payload))
		return nil, ErrAccountLocked
	}

	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			s.record("error")
			return nil, err
		}
		s.record("failure")
		s.publish(ctx, events.NewEvent(events.EventLoginFailed, actor, payload))
		if s.guard.RecordFailure(ctx, username) {
			s.publish(ctx, events.NewEvent(events.EventLoginLocked, actor, payload))
		}
		return nil, err
	}

	s.guard.Reset(ctx, username)

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		s.record("error")
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.record("success")
	actor.Role = user.Role
	s.publish(ctx, events.NewEvent(events.EventLoginSucceeded, actor, payload))
	return &AuthResult{User: user, Token: token}, nil
}

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Username  string
	Password  string
	Firstname string
	Lastname  string
	Role      domain.Role
}

// Register stores a new account. Creating an ADMIN requires an ADMIN caller;
// caller is nil for anonymous requests.
func (s *AuthService) Register(ctx context.Context, caller *domain.Identity, input RegisterInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if role == domain.RoleAdmin && (caller == nil || caller.Role != domain.RoleAdmin) {
		return nil, ErrAdminRequired
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		Firstname:    strings.TrimSpace(input.Firstname),
		Lastname:     strings.TrimSpace(input.Lastname),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrUnavailable):
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		default:
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	s.logger.Info("user registered", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *AuthService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordLogin(outcome)
	}
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
