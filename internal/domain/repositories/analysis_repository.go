package repositories

import (
	"context"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// AnalysisRepository defines the interface for the write-once analysis
// audit trail
type AnalysisRepository interface {
	// Create appends one analysis record
	Create(ctx context.Context, analysis *entities.Analysis) error

	// GetByEntity retrieves past analysis runs for an entity, newest first
	GetByEntity(ctx context.Context, entityType, entityID string, limit int) ([]entities.Analysis, error)
}
