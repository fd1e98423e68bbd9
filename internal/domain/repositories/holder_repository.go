package repositories

import (
	"context"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// HolderRepository defines the interface for holder data operations
type HolderRepository interface {
	// GetByID retrieves a holder by id; returns nil when not found
	GetByID(ctx context.Context, id string) (*entities.Holder, error)

	// GetByProject retrieves all holders of a project ordered by balance
	// descending
	GetByProject(ctx context.Context, projectID string) ([]entities.Holder, error)

	// GetAll retrieves all holders ordered by balance descending
	GetAll(ctx context.Context, limit, offset int) ([]entities.Holder, error)

	// Count returns the total number of holders
	Count(ctx context.Context) (int64, error)

	// Create inserts a new holder
	Create(ctx context.Context, holder *entities.Holder) error

	// Update modifies an existing holder
	Update(ctx context.Context, holder *entities.Holder) error

	// UpdateRisk stores analysis output on the holder row
	UpdateRisk(ctx context.Context, id string, isWhale bool, riskScore, aiNotes string) error

	// Delete removes a holder
	Delete(ctx context.Context, id string) error
}
