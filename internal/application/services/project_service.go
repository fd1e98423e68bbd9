package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zotalabs/tokenwatch/internal/application/bus"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/cache"
)

// ProjectService provides business logic for projects
type ProjectService struct {
	projectRepo repositories.ProjectRepository
	tokenRepo   repositories.TokenRepository
	holderRepo  repositories.HolderRepository
	eventRepo   repositories.EventRepository
	cache       *cache.RedisCache
	bus         *bus.Bus
	logger      *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	tokenRepo repositories.TokenRepository,
	holderRepo repositories.HolderRepository,
	eventRepo repositories.EventRepository,
	cache *cache.RedisCache,
	bus *bus.Bus,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		tokenRepo:   tokenRepo,
		holderRepo:  holderRepo,
		eventRepo:   eventRepo,
		cache:       cache,
		bus:         bus,
		logger:      logger,
	}
}

// ProjectDetail is a project with its dependent rows for the detail view
type ProjectDetail struct {
	entities.Project
	Tokens  []entities.Token  `json:"tokens"`
	Holders []entities.Holder `json:"holders"`
	Events  []entities.Event  `json:"events"`
}

// ProjectInput carries the writable fields of a project
type ProjectInput struct {
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	Chain           string  `json:"chain"`
	ContractAddress string  `json:"contract_address"`
	Network         string  `json:"network"`
	Description     *string `json:"description"`
	Website         *string `json:"website"`
	ImageURL        *string `json:"image_url"`
	TotalSupply     *string `json:"total_supply"`
	Status          string  `json:"status"`
}

// List retrieves projects matching the filter
func (s *ProjectService) List(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, error) {
	cacheKey := fmt.Sprintf("projects:list:%s:%s:%s", filter.Status, filter.Chain, filter.Search)

	var cached []entities.Project
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			s.logger.Debug("Cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	projects, err := s.projectRepo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []entities.Project{}
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, projects, 30*time.Second); err != nil {
			s.logger.Warn("Failed to cache response", zap.Error(err))
		}
	}

	return projects, nil
}

// Get retrieves a project with its tokens, holders and recent events
func (s *ProjectService) Get(ctx context.Context, id string) (*ProjectDetail, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}

	detail := &ProjectDetail{Project: *project}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tokens, err := s.tokenRepo.GetByProject(gctx, id)
		if err != nil {
			return err
		}
		detail.Tokens = tokens
		return nil
	})
	g.Go(func() error {
		holders, err := s.holderRepo.GetByProject(gctx, id)
		if err != nil {
			return err
		}
		detail.Holders = holders
		return nil
	})
	g.Go(func() error {
		filter := entities.DefaultEventFilter()
		filter.ProjectID = &id
		filter.Limit = 10
		events, err := s.eventRepo.GetByFilter(gctx, filter)
		if err != nil {
			return err
		}
		detail.Events = events
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load project detail: %w", err)
	}

	if detail.Tokens == nil {
		detail.Tokens = []entities.Token{}
	}
	if detail.Holders == nil {
		detail.Holders = []entities.Holder{}
	}
	if detail.Events == nil {
		detail.Events = []entities.Event{}
	}

	return detail, nil
}

// Create registers a new project and records a lifecycle event
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*entities.Project, error) {
	project, err := s.buildProject(in)
	if err != nil {
		return nil, err
	}
	project.ID = uuid.NewString()

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.invalidate(ctx)
	s.bus.Publish(ctx, bus.Notification{
		ProjectID: &project.ID,
		Type:      entities.EventProjectCreated,
		Severity:  entities.SeveritySuccess,
		Message:   fmt.Sprintf("Project %q (%s) on %s was created", project.Name, project.Symbol, project.Chain),
	})

	return project, nil
}

// Update modifies an existing project
func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput) (*entities.Project, error) {
	existing, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}

	project, err := s.buildProject(in)
	if err != nil {
		return nil, err
	}
	project.ID = id
	project.CreatedAt = existing.CreatedAt

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.invalidate(ctx)
	return project, nil
}

// Delete removes a project and records a lifecycle event
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return fmt.Errorf("%w: project %s", ErrNotFound, id)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.invalidate(ctx)
	// No project reference: the row is gone.
	s.bus.Publish(ctx, bus.Notification{
		Type:     entities.EventProjectDeleted,
		Severity: entities.SeverityWarning,
		Message:  fmt.Sprintf("Project %q (%s) was deleted", project.Name, project.Symbol),
	})

	return nil
}

func (s *ProjectService) buildProject(in ProjectInput) (*entities.Project, error) {
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

	network := in.Network
	if network == "" {
		network = "mainnet"
	}
	status := in.Status
	if status == "" {
		status = entities.ProjectStatusActive
	}
	if status != entities.ProjectStatusActive && status != entities.ProjectStatusInactive {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var totalSupply decimal.NullDecimal
	if in.TotalSupply != nil && *in.TotalSupply != "" {
		d, err := decimal.NewFromString(*in.TotalSupply)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid total supply %q", ErrValidation, *in.TotalSupply)
		}
		totalSupply = decimal.NewNullDecimal(d)
	}

	return &entities.Project{
		Name:            in.Name,
		Symbol:          in.Symbol,
		Chain:           chain,
		ContractAddress: in.ContractAddress,
		Network:         network,
		Description:     in.Description,
		Website:         in.Website,
		ImageURL:        in.ImageURL,
		TotalSupply:     totalSupply,
		Status:          status,
	}, nil
}

func (s *ProjectService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "projects:*"); err != nil {
		s.logger.Warn("Failed to invalidate project cache", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, "stats:overview"); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}
