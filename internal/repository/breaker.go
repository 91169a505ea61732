package repository

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// BreakerSettings tunes the circuit breaker around the credential store.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings opens after 60% failures over at least 10 calls.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      10,
		FailureThreshold: 0.6,
	}
}

type breakerUserRepository struct {
	next UserRepository
	cb   *gobreaker.CircuitBreaker[*domain.User]
}

// NewBreakerUserRepository wraps next so a failing database rejects logins
// fast with ErrUnavailable instead of piling up on timeouts. Missing rows and
// constraint violations are answers, not failures, and never trip the breaker.
func NewBreakerUserRepository(next UserRepository, settings BreakerSettings, logger *zap.Logger) UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker[*domain.User](gobreaker.Settings{
		Name:        "user-store",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsNotFound(err) || errors.Is(err, ErrDuplicate) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &breakerUserRepository{next: next, cb: cb}
}

func (r *breakerUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.cb.Execute(func() (*domain.User, error) {
		return user, r.next.Create(ctx, user)
	})
	return breakerError(err)
}

func (r *breakerUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := r.cb.Execute(func() (*domain.User, error) {
		return r.next.GetByUsername(ctx, username)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return user, nil
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Join(ErrUnavailable, err)
	}
	return err
}
