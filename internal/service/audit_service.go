package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aueb-cf/inventory-service/internal/events"
)

// AuditService writes security events to a dedicated structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to every security event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLogin)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLogin)
	a.dispatcher.Subscribe(events.EventLoginLocked, a.handleLogin)
	a.dispatcher.Subscribe(events.EventTokenRejected, a.handleRejection)
	a.dispatcher.Subscribe(events.EventAccessDenied, a.handleRejection)
}

func (a *AuditService) handleLogin(_ context.Context, event events.Event) error {
	level := zap.InfoLevel
	if event.Type != events.EventLoginSucceeded {
		level = zap.WarnLevel
	}
	a.logger.Log(level, string(event.Type), a.fields(event)...)
	return nil
}

func (a *AuditService) handleRejection(_ context.Context, event events.Event) error {
	a.logger.Warn(string(event.Type), a.fields(event)...)
	return nil
}

func (a *AuditService) fields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.Time("at", event.Timestamp),
		zap.String("subject", event.Actor.Subject),
		zap.String("role", string(event.Actor.Role)),
		zap.String("ip", event.Actor.IP),
		zap.Any("payload", event.Payload),
	}
}
