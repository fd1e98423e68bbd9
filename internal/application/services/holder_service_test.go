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

func setupHolderServiceTest() (*HolderService, *testutil.MockHolderRepository, *testutil.MockProjectRepository, *testutil.MockEventRepository) {
	holderRepo := testutil.NewMockHolderRepository()
	projectRepo := testutil.NewMockProjectRepository()
	eventRepo := testutil.NewMockEventRepository()
	logger := zap.NewNop()

	notifications := bus.New(logger)
	notifications.Subscribe(bus.NewRecorder(eventRepo, logger))

	service := NewHolderService(holderRepo, projectRepo, nil, notifications, logger)
	return service, holderRepo, projectRepo, eventRepo
}

func TestHolderService_Create(t *testing.T) {
	service, holderRepo, projectRepo, eventRepo := setupHolderServiceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	projectRepo.Projects[p.ID] = p

	pct := "5.34"
	holder, err := service.Create(ctx, HolderInput{
		ProjectID:     p.ID,
		WalletAddress: testutil.SolanaWallet,
		Chain:         entities.ChainSolana,
		Balance:       "5000000000",
		Percentage:    &pct,
		IsWhale:       true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if holder.ID == "" {
		t.Error("expected generated id")
	}
	if _, ok := holderRepo.Holders[holder.ID]; !ok {
		t.Error("holder not persisted")
	}
	if len(eventRepo.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(eventRepo.Events))
	}
	if eventRepo.Events[0].Severity != entities.SeverityWarning {
		t.Errorf("whale add should warn, got %s", eventRepo.Events[0].Severity)
	}
}

func TestHolderService_CreateRejectsUnknownProject(t *testing.T) {
	service, _, _, _ := setupHolderServiceTest()

	_, err := service.Create(context.Background(), HolderInput{
		ProjectID:     "missing",
		WalletAddress: testutil.SolanaWallet,
		Balance:       "100",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestHolderService_CreateValidation(t *testing.T) {
	service, _, projectRepo, _ := setupHolderServiceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	projectRepo.Projects[p.ID] = p

	badPct := "120"
	negPct := "-1"
	tests := []struct {
		name string
		in   HolderInput
	}{
		{"missing wallet", HolderInput{ProjectID: p.ID, Balance: "100"}},
		{"bad balance", HolderInput{ProjectID: p.ID, WalletAddress: "w", Balance: "lots"}},
		{"negative balance", HolderInput{ProjectID: p.ID, WalletAddress: "w", Balance: "-5"}},
		{"percentage above 100", HolderInput{ProjectID: p.ID, WalletAddress: "w", Balance: "100", Percentage: &badPct}},
		{"negative percentage", HolderInput{ProjectID: p.ID, WalletAddress: "w", Balance: "100", Percentage: &negPct}},
		{"unknown chain", HolderInput{ProjectID: p.ID, WalletAddress: "w", Chain: "tron", Balance: "100"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Create(ctx, tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestHolderService_UpdatePreservesRiskFields(t *testing.T) {
	service, holderRepo, projectRepo, _ := setupHolderServiceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	projectRepo.Projects[p.ID] = p

	h := testutil.CreateTestHolder(testutil.WithHolderProject(p.ID))
	score := entities.RiskHigh
	notes := "prior analysis"
	h.RiskScore = &score
	h.AINotes = &notes
	holderRepo.Holders[h.ID] = h

	updated, err := service.Update(ctx, h.ID, HolderInput{
		ProjectID:     p.ID,
		WalletAddress: h.WalletAddress,
		Chain:         h.Chain,
		Balance:       "6000000000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.RiskScore == nil || *updated.RiskScore != entities.RiskHigh {
		t.Error("update must not clear the stored risk score")
	}
	if updated.AINotes == nil || *updated.AINotes != notes {
		t.Error("update must not clear the stored notes")
	}
}

func TestHolderService_ListByProject(t *testing.T) {
	service, holderRepo, projectRepo, _ := setupHolderServiceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	projectRepo.Projects[p.ID] = p
	h := testutil.CreateTestHolder(testutil.WithHolderProject(p.ID))
	holderRepo.Holders[h.ID] = h
	other := testutil.CreateTestHolder(
		testutil.WithHolderID("44444444-4444-4444-4444-444444444444"),
		testutil.WithHolderProject("99999999-9999-9999-9999-999999999999"),
	)
	holderRepo.Holders[other.ID] = other

	holders, err := service.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holders) != 1 || holders[0].ID != h.ID {
		t.Errorf("expected only the project's holder, got %d", len(holders))
	}

	empty, err := service.ListByProject(ctx, "no-holders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty == nil {
		t.Error("missing holders should come back as an empty slice")
	}
}

func TestHolderService_DeletePublishesEvent(t *testing.T) {
	service, holderRepo, projectRepo, eventRepo := setupHolderServiceTest()
	ctx := context.Background()

	p := testutil.CreateTestProject()
	projectRepo.Projects[p.ID] = p
	h := testutil.CreateTestHolder(testutil.WithHolderProject(p.ID))
	holderRepo.Holders[h.ID] = h

	if err := service.Delete(ctx, h.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := holderRepo.Holders[h.ID]; ok {
		t.Error("holder should be gone")
	}

	if len(eventRepo.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(eventRepo.Events))
	}
	e := eventRepo.Events[0]
	if e.Type != entities.EventHolderRemoved {
		t.Errorf("unexpected event type %s", e.Type)
	}
	if e.Severity != entities.SeverityInfo {
		t.Errorf("unexpected severity %s", e.Severity)
	}
	if e.ProjectID == nil || *e.ProjectID != p.ID {
		t.Error("removal event should reference the holder's project")
	}
}

func TestHolderService_DeleteMissing(t *testing.T) {
	service, _, _, _ := setupHolderServiceTest()

	if err := service.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHolderService_GetNotFound(t *testing.T) {
	service, _, _, _ := setupHolderServiceTest()

	_, err := service.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
