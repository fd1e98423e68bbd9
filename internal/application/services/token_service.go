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

// TokenService provides business logic for tokens
type TokenService struct {
	tokenRepo   repositories.TokenRepository
	projectRepo repositories.ProjectRepository
	cache       *cache.RedisCache
	bus         *bus.Bus
	logger      *zap.Logger
}

// NewTokenService creates a new token service
func NewTokenService(
	tokenRepo repositories.TokenRepository,
	projectRepo repositories.ProjectRepository,
	cache *cache.RedisCache,
	bus *bus.Bus,
	logger *zap.Logger,
) *TokenService {
	return &TokenService{
		tokenRepo:   tokenRepo,
		projectRepo: projectRepo,
		cache:       cache,
		bus:         bus,
		logger:      logger,
	}
}

// TokenInput carries the writable fields of a token
type TokenInput struct {
	ProjectID       string  `json:"project_id"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	Chain           string  `json:"chain"`
	ContractAddress string  `json:"contract_address"`
	Decimals        int     `json:"decimals"`
	Supply          *string `json:"supply"`
	Price           *string `json:"price"`
	MarketCap       *string `json:"market_cap"`
}

// List retrieves all tokens
func (s *TokenService) List(ctx context.Context) ([]entities.Token, error) {
	cacheKey := "tokens:list"

	var cached []entities.Token
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.logger.Debug("Cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	tokens, err := s.tokenRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	if tokens == nil {
		tokens = []entities.Token{}
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, tokens, 30*time.Second); err != nil {
			s.logger.Warn("Failed to cache response", zap.Error(err))
		}
	}

	return tokens, nil
}

// Get retrieves a token by id
func (s *TokenService) Get(ctx context.Context, id string) (*entities.Token, error) {
	token, err := s.tokenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if token == nil {
		return nil, fmt.Errorf("%w: token %s", ErrNotFound, id)
	}
	return token, nil
}

// Create registers a new token under a project
func (s *TokenService) Create(ctx context.Context, in TokenInput) (*entities.Token, error) {
	token, err := s.buildToken(in)
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

	token.ID = uuid.NewString()
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	s.invalidate(ctx)
	s.bus.Publish(ctx, bus.Notification{
		ProjectID: &token.ProjectID,
		Type:      entities.EventTokenCreated,
		Severity:  entities.SeveritySuccess,
		Message:   fmt.Sprintf("Token %q (%s) on %s registered", token.Name, token.Symbol, token.Chain),
	})

	return token, nil
}

// Update modifies an existing token
func (s *TokenService) Update(ctx context.Context, id string, in TokenInput) (*entities.Token, error) {
	existing, err := s.tokenRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: token %s", ErrNotFound, id)
	}

	token, err := s.buildToken(in)
	if err != nil {
		return nil, err
	}
	token.ID = id
	token.ProjectID = existing.ProjectID
	token.CreatedAt = existing.CreatedAt

	if err := s.tokenRepo.Update(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to update token: %w", err)
	}

	s.invalidate(ctx)
	return token, nil
}

// Delete removes a token and records a lifecycle event
func (s *TokenService) Delete(ctx context.Context, id string) error {
	token, err := s.tokenRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}
	if token == nil {
		return fmt.Errorf("%w: token %s", ErrNotFound, id)
	}

	if err := s.tokenRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	s.invalidate(ctx)
	s.bus.Publish(ctx, bus.Notification{
		ProjectID: &token.ProjectID,
		Type:      entities.EventTokenDeleted,
		Severity:  entities.SeverityWarning,
		Message:   fmt.Sprintf("Token %q (%s) was deleted", token.Name, token.Symbol),
	})

	return nil
}

func (s *TokenService) buildToken(in TokenInput) (*entities.Token, error) {
	if in.Name == "" || in.Symbol == "" {
		return nil, fmt.Errorf("%w: name and symbol are required", ErrValidation)
	}
	chain := in.Chain
	if chain == "" {
		chain = entities.ChainSolana
	}
	if !entities.IsSupportedChain(chain) {
		return nil, fmt.Errorf("%w: unsupported chain %q", ErrValidation, chain)
	}
	if in.Decimals < 0 || in.Decimals > 30 {
		return nil, fmt.Errorf("%w: decimals out of range", ErrValidation)
	}

	token := &entities.Token{
		ProjectID:       in.ProjectID,
		Name:            in.Name,
		Symbol:          in.Symbol,
		Chain:           chain,
		ContractAddress: in.ContractAddress,
		Decimals:        in.Decimals,
	}

	for _, field := range []struct {
		src  *string
		dest *decimal.NullDecimal
		name string
	}{
		{in.Supply, &token.Supply, "supply"},
		{in.Price, &token.Price, "price"},
		{in.MarketCap, &token.MarketCap, "market_cap"},
	} {
		if field.src == nil || *field.src == "" {
			continue
		}
		d, err := decimal.NewFromString(*field.src)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s %q", ErrValidation, field.name, *field.src)
		}
		*field.dest = decimal.NewNullDecimal(d)
	}

	return token, nil
}

func (s *TokenService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "tokens:*"); err != nil {
		s.logger.Warn("Failed to invalidate token cache", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, "stats:overview"); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}
