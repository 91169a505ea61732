package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventLoginLocked    EventType = "login_locked"
	EventTokenRejected  EventType = "token_rejected"
	EventAccessDenied   EventType = "access_denied"
)

// Actor encapsulates who triggered an event. Subject is empty for anonymous callers.
type Actor struct {
	Subject string      `json:"subject,omitempty"`
	Role    domain.Role `json:"role,omitempty"`
	IP      string      `json:"ip,omitempty"`
}

// Event represents an audit event emitted by the auth pipeline.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginPayload accompanies login events.
type LoginPayload struct {
	Username string `json:"username"`
}

// TokenRejectedPayload accompanies token_rejected.
type TokenRejectedPayload struct {
	Reason string `json:"reason"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// AccessDeniedPayload accompanies access_denied.
type AccessDeniedPayload struct {
	Decision string `json:"decision"`
	Method   string `json:"method"`
	Path     string `json:"path"`
}
