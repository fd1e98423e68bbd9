package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/testutil"
)

func setupEventServiceTest() (*EventService, *testutil.MockEventRepository, *testutil.MockProjectRepository) {
	eventRepo := testutil.NewMockEventRepository()
	projectRepo := testutil.NewMockProjectRepository()
	service := NewEventService(eventRepo, projectRepo, zap.NewNop())
	return service, eventRepo, projectRepo
}

func TestEventService_CreateDefaultsSeverity(t *testing.T) {
	service, eventRepo, _ := setupEventServiceTest()

	event, err := service.Create(context.Background(), EventInput{
		Type:    entities.EventSystemStart,
		Message: "engine initialized",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Severity != entities.SeverityInfo {
		t.Errorf("expected info default, got %s", event.Severity)
	}
	if event.ID == "" {
		t.Error("expected generated id")
	}
	if len(eventRepo.Events) != 1 {
		t.Errorf("expected 1 stored event, got %d", len(eventRepo.Events))
	}
}

func TestEventService_CreateValidation(t *testing.T) {
	service, _, _ := setupEventServiceTest()
	ctx := context.Background()

	missing := "missing-project"
	tests := []struct {
		name string
		in   EventInput
	}{
		{"missing type", EventInput{Message: "m"}},
		{"missing message", EventInput{Type: entities.EventSystemStart}},
		{"bad severity", EventInput{Type: entities.EventSystemStart, Message: "m", Severity: "panic"}},
		{"unknown project", EventInput{ProjectID: &missing, Type: entities.EventSystemStart, Message: "m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Create(ctx, tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestEventService_ListRejectsBadSeverityFilter(t *testing.T) {
	service, _, _ := setupEventServiceTest()

	severity := "panic"
	_, err := service.List(context.Background(), entities.EventFilter{Severity: &severity})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
