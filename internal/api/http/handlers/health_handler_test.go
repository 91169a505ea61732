package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Ready(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		deps       map[string]Pinger
		wantStatus int
		wantDetail map[string]any
	}{
		{name: "no dependencies", deps: nil, wantStatus: http.StatusOK},
		{name: "all up", deps: map[string]Pinger{"postgres": up, "redis": up}, wantStatus: http.StatusOK},
		{name: "nil dependency skipped", deps: map[string]Pinger{"postgres": up, "redis": nil}, wantStatus: http.StatusOK},
		{
			name:       "redis down",
			deps:       map[string]Pinger{"postgres": up, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: map[string]any{"postgres": "ok", "redis": "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rendered *apperrors.DomainError
			app := fiber.New(fiber.Config{
				ErrorHandler: func(c *fiber.Ctx, err error) error {
					rendered = apperrors.ToDomainError(err)
					return c.Status(rendered.HTTPStatus).JSON(rendered.Body())
				},
			})
			h := NewHealthHandler("inventory-test", "test", tt.deps)
			app.Get("/health/ready", h.Ready)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantDetail == nil {
				return
			}
			if rendered == nil || rendered.Code != apperrors.CodeServiceUnavailable {
				t.Fatalf("rendered = %+v", rendered)
			}
			for name, want := range tt.wantDetail {
				if rendered.Details[name] != want {
					t.Errorf("details[%s] = %v, want %v", name, rendered.Details[name], want)
				}
			}
		})
	}
}
