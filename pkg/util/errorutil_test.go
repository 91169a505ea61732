package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if got := ToDomainError(nil); got != nil {
			t.Errorf("ToDomainError(nil) = %v, want nil", got)
		}
	})

	t.Run("wrapped domain error is preserved", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", NewForbidden("no"))
		got := ToDomainError(wrapped)
		if got.Code != CodeForbidden || got.HTTPStatus != http.StatusForbidden {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("unknown error becomes opaque internal error", func(t *testing.T) {
		got := ToDomainError(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
		if got.Code != CodeInternal || got.HTTPStatus != http.StatusInternalServerError {
			t.Fatalf("got %+v", got)
		}
		body := got.Body()
		if body["message"] != "internal server error" {
			t.Errorf("body leaked internal text: %v", body)
		}
	})
}

func TestBody(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  string
		wantField string
	}{
		{name: "expired token", err: NewExpiredToken(), wantCode: CodeExpiredToken, wantField: "message"},
		{name: "invalid token", err: NewInvalidToken(), wantCode: CodeInvalidToken, wantField: "description"},
		{name: "not authenticated", err: NewNotAuthenticated("bad credentials"), wantCode: CodeNotAuthenticated, wantField: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := ToDomainError(tt.err).Body()
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %v", body["code"], tt.wantCode)
			}
			if _, ok := body[tt.wantField]; !ok {
				t.Errorf("body %v missing %q", body, tt.wantField)
			}
			if _, ok := body["details"]; ok {
				t.Errorf("unexpected details in %v", body)
			}
		})
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status   int
		wantCode string
	}{
		{http.StatusNotFound, CodeNotFound},
		{http.StatusMethodNotAllowed, CodeValidationFailed},
		{http.StatusRequestEntityTooLarge, CodeValidationFailed},
		{http.StatusTooManyRequests, CodeTooManyAttempts},
		{http.StatusBadGateway, CodeInternal},
	}
	for _, tt := range tests {
		if got := FromStatus(tt.status, "x"); got.Code != tt.wantCode {
			t.Errorf("FromStatus(%d).Code = %q, want %q", tt.status, got.Code, tt.wantCode)
		}
	}
}
