package repositories

import (
	"context"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	// GetByID retrieves a project by id; returns nil when not found
	GetByID(ctx context.Context, id string) (*entities.Project, error)

	// GetByFilter retrieves projects matching the filter, newest first
	GetByFilter(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, error)

	// Count returns the total number of projects
	Count(ctx context.Context) (int64, error)

	// Create inserts a new project
	Create(ctx context.Context, project *entities.Project) error

	// Update modifies an existing project
	Update(ctx context.Context, project *entities.Project) error

	// Delete removes a project and its dependent rows
	Delete(ctx context.Context, id string) error
}
