package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/cache"
)

// StatsService aggregates dashboard overview numbers
type StatsService struct {
	projectRepo repositories.ProjectRepository
	tokenRepo   repositories.TokenRepository
	holderRepo  repositories.HolderRepository
	eventRepo   repositories.EventRepository
	cache       *cache.RedisCache
	logger      *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	projectRepo repositories.ProjectRepository,
	tokenRepo repositories.TokenRepository,
	holderRepo repositories.HolderRepository,
	eventRepo repositories.EventRepository,
	cache *cache.RedisCache,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		projectRepo: projectRepo,
		tokenRepo:   tokenRepo,
		holderRepo:  holderRepo,
		eventRepo:   eventRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Overview is the dashboard summary payload
type Overview struct {
	Projects     int64            `json:"projects"`
	Tokens       int64            `json:"tokens"`
	Holders      int64            `json:"holders"`
	Events       int64            `json:"events"`
	RecentEvents []entities.Event `json:"recent_events"`
}

// Overview returns entity counts and the most recent events
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	cacheKey := "stats:overview"

	var cached Overview
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.logger.Debug("Cache hit", zap.String("key", cacheKey))
			return &cached, nil
		}
	}

	var out Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.projectRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count projects: %w", err)
		}
		out.Projects = n
		return nil
	})
	g.Go(func() error {
		n, err := s.tokenRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count tokens: %w", err)
		}
		out.Tokens = n
		return nil
	})
	g.Go(func() error {
		n, err := s.holderRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count holders: %w", err)
		}
		out.Holders = n
		return nil
	})
	g.Go(func() error {
		n, err := s.eventRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count events: %w", err)
		}
		out.Events = n
		return nil
	})
	g.Go(func() error {
		events, err := s.eventRepo.GetRecent(gctx, 10)
		if err != nil {
			return fmt.Errorf("failed to load recent events: %w", err)
		}
		if events == nil {
			events = []entities.Event{}
		}
		out.RecentEvents = events
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, out, 15*time.Second); err != nil {
			s.logger.Warn("Failed to cache response", zap.Error(err))
		}
	}

	return &out, nil
}
