package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
)

// EventService provides business logic for the event log
type EventService struct {
	eventRepo   repositories.EventRepository
	projectRepo repositories.ProjectRepository
	logger      *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(
	eventRepo repositories.EventRepository,
	projectRepo repositories.ProjectRepository,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// EventInput carries the writable fields of an event
type EventInput struct {
	ProjectID *string `json:"project_id"`
	Type      string  `json:"type"`
	Severity  string  `json:"severity"`
	Message   string  `json:"message"`
}

// List retrieves events matching the filter, newest first
func (s *EventService) List(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Severity != nil && !entities.IsValidSeverity(*filter.Severity) {
		return nil, fmt.Errorf("%w: invalid severity %q", ErrValidation, *filter.Severity)
	}

	events, err := s.eventRepo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []entities.Event{}
	}
	return events, nil
}

// Create appends an event to the log
func (s *EventService) Create(ctx context.Context, in EventInput) (*entities.Event, error) {
	if in.Type == "" {
		return nil, fmt.Errorf("%w: type is required", ErrValidation)
	}
	if in.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrValidation)
	}
	severity := in.Severity
	if severity == "" {
		severity = entities.SeverityInfo
	}
	if !entities.IsValidSeverity(severity) {
		return nil, fmt.Errorf("%w: invalid severity %q", ErrValidation, severity)
	}

	if in.ProjectID != nil && *in.ProjectID != "" {
		project, err := s.projectRepo.GetByID(ctx, *in.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to check project: %w", err)
		}
		if project == nil {
			return nil, fmt.Errorf("%w: project %s does not exist", ErrValidation, *in.ProjectID)
		}
	}

	event := &entities.Event{
		ID:        uuid.NewString(),
		ProjectID: in.ProjectID,
		Type:      in.Type,
		Severity:  severity,
		Message:   in.Message,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// Delete removes a single event from the log
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
