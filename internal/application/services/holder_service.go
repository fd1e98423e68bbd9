package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/bus"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/cache"
)

// HolderService provides business logic for token holders
type HolderService struct {
	holderRepo  repositories.HolderRepository
	projectRepo repositories.ProjectRepository
	cache       *cache.RedisCache
	bus         *bus.Bus
	logger      *zap.Logger
}

// NewHolderService creates a new holder service
func NewHolderService(
	holderRepo repositories.HolderRepository,
	projectRepo repositories.ProjectRepository,
	cache *cache.RedisCache,
	bus *bus.Bus,
	logger *zap.Logger,
) *HolderService {
	return &HolderService{
		holderRepo:  holderRepo,
		projectRepo: projectRepo,
		cache:       cache,
		bus:         bus,
		logger:      logger,
	}
}

// HolderInput carries the writable fields of a holder
type HolderInput struct {
	ProjectID     string  `json:"project_id"`
	WalletAddress string  `json:"wallet_address"`
	Chain         string  `json:"chain"`
	Balance       string  `json:"balance"`
	Percentage    *string `json:"percentage"`
	IsWhale       bool    `json:"is_whale"`
	FirstSeen     *string `json:"first_seen"`
}

// List retrieves holders with pagination
func (s *HolderService) List(ctx context.Context, limit, offset int) ([]entities.Holder, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	holders, err := s.holderRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list holders: %w", err)
	}
	if holders == nil {
		holders = []entities.Holder{}
	}
	return holders, nil
}

// ListByProject retrieves holders of one project ordered by balance
func (s *HolderService) ListByProject(ctx context.Context, projectID string) ([]entities.Holder, error) {
	cacheKey := "holders:project:" + projectID

	var cached []entities.Holder
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.logger.Debug("Cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	holders, err := s.holderRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project holders: %w", err)
	}
	if holders == nil {
		holders = []entities.Holder{}
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, holders, 30*time.Second); err != nil {
			s.logger.Warn("Failed to cache response", zap.Error(err))
		}
	}

	return holders, nil
}

// Get retrieves a holder by id
func (s *HolderService) Get(ctx context.Context, id string) (*entities.Holder, error) {
	holder, err := s.holderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get holder: %w", err)
	}
	if holder == nil {
		return nil, fmt.Errorf("%w: holder %s", ErrNotFound, id)
	}
	return holder, nil
}

// Create registers a new holder wallet on a project
func (s *HolderService) Create(ctx context.Context, in HolderInput) (*entities.Holder, error) {
	holder, err := s.buildHolder(in)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s does not exist", ErrValidation, in.ProjectID)
	}

	holder.ID = uuid.NewString()
	if err := s.holderRepo.Create(ctx, holder); err != nil {
		return nil, fmt.Errorf("failed to create holder: %w", err)
	}

	s.invalidate(ctx)

	severity := entities.SeverityInfo
	message := fmt.Sprintf("Holder %s added to %q", shortAddress(holder.WalletAddress), project.Name)
	if holder.IsWhale {
		severity = entities.SeverityWarning
		message = fmt.Sprintf("Whale wallet %s added to %q", shortAddress(holder.WalletAddress), project.Name)
	}
	s.bus.Publish(ctx, bus.Notification{
		ProjectID: &holder.ProjectID,
		Type:      entities.EventHolderAdded,
		Severity:  severity,
		Message:   message,
	})

	return holder, nil
}

// Update modifies an existing holder
func (s *HolderService) Update(ctx context.Context, id string, in HolderInput) (*entities.Holder, error) {
	existing, err := s.holderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get holder: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: holder %s", ErrNotFound, id)
	}

	holder, err := s.buildHolder(in)
	if err != nil {
		return nil, err
	}
	holder.ID = id
	holder.ProjectID = existing.ProjectID
	holder.RiskScore = existing.RiskScore
	holder.AINotes = existing.AINotes
	if in.FirstSeen == nil {
		holder.FirstSeen = existing.FirstSeen
	}

	if err := s.holderRepo.Update(ctx, holder); err != nil {
		return nil, fmt.Errorf("failed to update holder: %w", err)
	}

	s.invalidate(ctx)
	return holder, nil
}

// Delete removes a holder and records a lifecycle event
func (s *HolderService) Delete(ctx context.Context, id string) error {
	existing, err := s.holderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get holder: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: holder %s", ErrNotFound, id)
	}

	if err := s.holderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete holder: %w", err)
	}

	s.invalidate(ctx)
	s.bus.Publish(ctx, bus.Notification{
		ProjectID: &existing.ProjectID,
		Type:      entities.EventHolderRemoved,
		Severity:  entities.SeverityInfo,
		Message:   fmt.Sprintf("Holder %s was removed", shortAddress(existing.WalletAddress)),
	})

	return nil
}

func (s *HolderService) buildHolder(in HolderInput) (*entities.Holder, error) {
	if in.WalletAddress == "" {
		return nil, fmt.Errorf("%w: wallet_address is required", ErrValidation)
	}
	chain := in.Chain
	if chain == "" {
		chain = entities.ChainSolana
	}
	if !entities.IsSupportedChain(chain) {
		return nil, fmt.Errorf("%w: unsupported chain %q", ErrValidation, chain)
	}

	balance, err := decimal.NewFromString(in.Balance)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid balance %q", ErrValidation, in.Balance)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative", ErrValidation)
	}

	holder := &entities.Holder{
		ProjectID:     in.ProjectID,
		WalletAddress: in.WalletAddress,
		Chain:         chain,
		Balance:       balance,
		IsWhale:       in.IsWhale,
		FirstSeen:     time.Now().UTC(),
	}

	if in.Percentage != nil && *in.Percentage != "" {
		pct, err := decimal.NewFromString(*in.Percentage)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid percentage %q", ErrValidation, *in.Percentage)
		}
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: percentage must be between 0 and 100", ErrValidation)
		}
		holder.Percentage = decimal.NewNullDecimal(pct)
	}

	if in.FirstSeen != nil && *in.FirstSeen != "" {
		ts, err := time.Parse(time.RFC3339, *in.FirstSeen)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid first_seen %q", ErrValidation, *in.FirstSeen)
		}
		holder.FirstSeen = ts.UTC()
	}

	return holder, nil
}

func (s *HolderService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "holders:*"); err != nil {
		s.logger.Warn("Failed to invalidate holder cache", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, "stats:overview"); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}

// shortAddress abbreviates a wallet address for event messages
func shortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
