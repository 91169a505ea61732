package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes returned in response bodies.
const (
	CodeValidationFailed   = "validationFailed"
	CodeNotAuthenticated   = "notAuthenticated"
	CodeExpiredToken       = "expiredToken"
	CodeInvalidToken       = "invalidToken"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "notFound"
	CodeConflict           = "conflict"
	CodeTooManyAttempts    = "tooManyAttempts"
	CodeInternal           = "internalError"
	CodeServiceUnavailable = "serviceUnavailable"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error

	// MessageField names the body key carrying Message. Empty means "message".
	MessageField string
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Body renders the client-facing JSON object. Err is never included.
func (e *DomainError) Body() map[string]any {
	field := e.MessageField
	if field == "" {
		field = "message"
	}
	body := map[string]any{
		"code": e.Code,
		field:  e.Message,
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	return body
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, details)
}

// NewNotAuthenticated is returned for failed logins and for anonymous access to
// protected routes. The message never says which credential was wrong.
func NewNotAuthenticated(message string) error {
	return NewDomainError(CodeNotAuthenticated, message, http.StatusUnauthorized, nil)
}

func NewExpiredToken() error {
	return NewDomainError(CodeExpiredToken, "token has expired", http.StatusUnauthorized, nil)
}

func NewInvalidToken() error {
	return &DomainError{
		Code:         CodeInvalidToken,
		Message:      "token is malformed or its signature is invalid",
		HTTPStatus:   http.StatusForbidden,
		MessageField: "description",
	}
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewTooManyAttempts(message string) error {
	return NewDomainError(CodeTooManyAttempts, message, http.StatusTooManyRequests, nil)
}

func NewServiceUnavailable(err error) error {
	return &DomainError{
		Code:       CodeServiceUnavailable,
		Message:    "service temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Anything unrecognized
// becomes an opaque internal error.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err).(*DomainError)
}

// FromStatus maps a bare HTTP status (router errors, body limits) to a DomainError.
func FromStatus(status int, message string) *DomainError {
	switch {
	case status == http.StatusNotFound:
		return NewNotFound("route", nil).(*DomainError)
	case status == http.StatusUnauthorized:
		return NewNotAuthenticated(message).(*DomainError)
	case status == http.StatusForbidden:
		return NewForbidden(message).(*DomainError)
	case status == http.StatusTooManyRequests:
		return NewTooManyAttempts(message).(*DomainError)
	case status >= 400 && status < 500:
		return NewDomainError(CodeValidationFailed, message, status, nil)
	default:
		return NewInternalError(errors.New(message)).(*DomainError)
	}
}
