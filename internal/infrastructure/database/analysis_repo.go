package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
)

// Ensure AnalysisRepo implements AnalysisRepository
var _ repositories.AnalysisRepository = (*AnalysisRepo)(nil)

// AnalysisRepo implements AnalysisRepository using PostgreSQL
type AnalysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *sqlx.DB) *AnalysisRepo {
	return &AnalysisRepo{db: db}
}

// Create appends one analysis record
func (r *AnalysisRepo) Create(ctx context.Context, analysis *entities.Analysis) error {
	query := `
		INSERT INTO analyses (id, entity_type, entity_id, analysis_type, result, confidence)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		analysis.ID,
		analysis.EntityType,
		analysis.EntityID,
		analysis.AnalysisType,
		analysis.Result,
		analysis.Confidence,
	).Scan(&analysis.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	return nil
}

// GetByEntity retrieves past analysis runs for an entity, newest first
func (r *AnalysisRepo) GetByEntity(ctx context.Context, entityType, entityID string, limit int) ([]entities.Analysis, error) {
	var analyses []entities.Analysis
	query := `
		SELECT * FROM analyses
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	if err := r.db.SelectContext(ctx, &analyses, query, entityType, entityID, limit); err != nil {
		return nil, fmt.Errorf("failed to get analyses: %w", err)
	}

	return analyses, nil
}
