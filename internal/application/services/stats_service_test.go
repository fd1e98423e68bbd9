package services

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/testutil"
)

func TestStatsService_Overview(t *testing.T) {
	projectRepo := testutil.NewMockProjectRepository()
	tokenRepo := testutil.NewMockTokenRepository()
	holderRepo := testutil.NewMockHolderRepository()
	eventRepo := testutil.NewMockEventRepository()

	p := testutil.CreateTestProject()
	projectRepo.Projects[p.ID] = p
	h := testutil.CreateTestHolder(testutil.WithHolderProject(p.ID))
	holderRepo.Holders[h.ID] = h
	for i := 0; i < 3; i++ {
		eventRepo.Events = append(eventRepo.Events, entities.Event{
			ID:       string(rune('a' + i)),
			Type:     entities.EventSystemStart,
			Severity: entities.SeverityInfo,
			Message:  "start",
		})
	}

	service := NewStatsService(projectRepo, tokenRepo, holderRepo, eventRepo, nil, zap.NewNop())

	out, err := service.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Projects != 1 || out.Tokens != 0 || out.Holders != 1 || out.Events != 3 {
		t.Errorf("unexpected counts: %+v", out)
	}
	if len(out.RecentEvents) != 3 {
		t.Errorf("expected 3 recent events, got %d", len(out.RecentEvents))
	}
}
