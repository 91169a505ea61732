package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aueb-cf/inventory-service/internal/domain"
	"github.com/aueb-cf/inventory-service/internal/events"
)

func TestAuditService_LogsSecurityEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	ctx := context.Background()
	actor := events.Actor{Subject: "ann@aueb.gr", Role: domain.RoleUser, IP: "10.0.0.1"}
	publish := []events.Event{
		events.NewEvent(events.EventLoginSucceeded, actor, events.LoginPayload{Username: "ann@aueb.gr"}),
		events.NewEvent(events.EventLoginFailed, actor, events.LoginPayload{Username: "ann@aueb.gr"}),
		events.NewEvent(events.EventAccessDenied, actor, events.AccessDeniedPayload{Decision: "forbidden", Method: "GET", Path: "/api/categories/1"}),
	}
	for _, ev := range publish {
		if err := dispatcher.Publish(ctx, ev); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("logged %d entries, want 3", len(entries))
	}
	if entries[0].Level != zap.InfoLevel || entries[1].Level != zap.WarnLevel || entries[2].Level != zap.WarnLevel {
		t.Errorf("levels = %v %v %v", entries[0].Level, entries[1].Level, entries[2].Level)
	}
	if entries[2].Message != string(events.EventAccessDenied) || entries[2].LoggerName != "audit" {
		t.Errorf("entry = %+v", entries[2].Entry)
	}
	if entries[0].ContextMap()["subject"] != "ann@aueb.gr" {
		t.Errorf("fields = %v", entries[0].ContextMap())
	}
}
