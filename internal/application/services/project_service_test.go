package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/bus"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/testutil"
)

func setupProjectServiceTest() (*ProjectService, *testutil.MockProjectRepository, *testutil.MockEventRepository) {
	projectRepo := testutil.NewMockProjectRepository()
	tokenRepo := testutil.NewMockTokenRepository()
	holderRepo := testutil.NewMockHolderRepository()
	eventRepo := testutil.NewMockEventRepository()
	logger := zap.NewNop()

	notifications := bus.New(logger)
	notifications.Subscribe(bus.NewRecorder(eventRepo, logger))

	service := NewProjectService(projectRepo, tokenRepo, holderRepo, eventRepo, nil, notifications, logger)
	return service, projectRepo, eventRepo
}

func TestProjectService_Create(t *testing.T) {
	service, projectRepo, eventRepo := setupProjectServiceTest()
	ctx := context.Background()

	supply := "93526183890996"
	project, err := service.Create(ctx, ProjectInput{
		Name:            "Bonk",
		Symbol:          "BONK",
		Chain:           entities.ChainSolana,
		ContractAddress: testutil.BonkMint,
		TotalSupply:     &supply,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if project.ID == "" {
		t.Error("expected generated id")
	}
	if project.Status != entities.ProjectStatusActive {
		t.Errorf("expected default status active, got %s", project.Status)
	}
	if project.Network != "mainnet" {
		t.Errorf("expected default network mainnet, got %s", project.Network)
	}
	if _, ok := projectRepo.Projects[project.ID]; !ok {
		t.Error("project not persisted")
	}

	if len(eventRepo.Events) != 1 {
		t.Fatalf("expected 1 lifecycle event, got %d", len(eventRepo.Events))
	}
	if eventRepo.Events[0].Type != entities.EventProjectCreated {
		t.Errorf("unexpected event type %s", eventRepo.Events[0].Type)
	}
}

func TestProjectService_CreateValidation(t *testing.T) {
	service, _, _ := setupProjectServiceTest()
	ctx := context.Background()

	tests := []struct {
		name string
		in   ProjectInput
	}{
		{"missing name", ProjectInput{Symbol: "X"}},
		{"unknown chain", ProjectInput{Name: "X", Symbol: "X", Chain: "dogechain"}},
		{"bad status", ProjectInput{Name: "X", Symbol: "X", Status: "paused"}},
		{"bad supply", ProjectInput{Name: "X", Symbol: "X", TotalSupply: strPtr("many")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Create(ctx, tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestProjectService_GetNotFound(t *testing.T) {
	service, _, _ := setupProjectServiceTest()

	_, err := service.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectService_GetDetail(t *testing.T) {
	service, projectRepo, _ := setupProjectServiceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	projectRepo.Projects[p.ID] = p

	detail, err := service.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Name != p.Name {
		t.Errorf("expected project %q, got %q", p.Name, detail.Name)
	}
}

func TestProjectService_DeletePublishesEvent(t *testing.T) {
	service, projectRepo, eventRepo := setupProjectServiceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	projectRepo.Projects[p.ID] = p

	if err := service.Delete(ctx, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := projectRepo.Projects[p.ID]; ok {
		t.Error("project should be gone")
	}

	if len(eventRepo.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(eventRepo.Events))
	}
	e := eventRepo.Events[0]
	if e.Type != entities.EventProjectDeleted {
		t.Errorf("unexpected event type %s", e.Type)
	}
	if e.ProjectID != nil {
		t.Error("deleted project event must not reference the row")
	}
}

func TestProjectService_UpdateMissing(t *testing.T) {
	service, _, _ := setupProjectServiceTest()

	_, err := service.Update(context.Background(), "missing", ProjectInput{Name: "X", Symbol: "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func strPtr(s string) *string { return &s }
