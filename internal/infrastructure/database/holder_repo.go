package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
)

// Ensure HolderRepo implements HolderRepository
var _ repositories.HolderRepository = (*HolderRepo)(nil)

// HolderRepo implements HolderRepository using PostgreSQL
type HolderRepo struct {
	db *sqlx.DB
}

// NewHolderRepo creates a new holder repository
func NewHolderRepo(db *sqlx.DB) *HolderRepo {
	return &HolderRepo{db: db}
}

// GetByID retrieves a holder by id
func (r *HolderRepo) GetByID(ctx context.Context, id string) (*entities.Holder, error) {
	var holder entities.Holder
	query := `SELECT * FROM holders WHERE id = $1`

	if err := r.db.GetContext(ctx, &holder, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holder: %w", err)
	}

	return &holder, nil
}

// GetByProject retrieves all holders of a project ordered by balance desc
func (r *HolderRepo) GetByProject(ctx context.Context, projectID string) ([]entities.Holder, error) {
	var holders []entities.Holder
	query := `SELECT * FROM holders WHERE project_id = $1 ORDER BY balance DESC`

	if err := r.db.SelectContext(ctx, &holders, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to get project holders: %w", err)
	}

	return holders, nil
}

// GetAll retrieves all holders ordered by balance descending
func (r *HolderRepo) GetAll(ctx context.Context, limit, offset int) ([]entities.Holder, error) {
	var holders []entities.Holder
	query := `SELECT * FROM holders ORDER BY balance DESC LIMIT $1 OFFSET $2`

	if err := r.db.SelectContext(ctx, &holders, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get holders: %w", err)
	}

	return holders, nil
}

// Count returns the total number of holders
func (r *HolderRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM holders`); err != nil {
		return 0, fmt.Errorf("failed to count holders: %w", err)
	}
	return count, nil
}

// Create inserts a new holder
func (r *HolderRepo) Create(ctx context.Context, holder *entities.Holder) error {
	query := `
		INSERT INTO holders (id, project_id, wallet_address, chain, balance,
			percentage, is_whale, risk_score, ai_notes, first_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING first_seen, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		holder.ID,
		holder.ProjectID,
		holder.WalletAddress,
		holder.Chain,
		holder.Balance,
		holder.Percentage,
		holder.IsWhale,
		holder.RiskScore,
		holder.AINotes,
		holder.FirstSeen,
	).Scan(&holder.FirstSeen, &holder.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create holder: %w", err)
	}

	return nil
}

// Update modifies an existing holder
func (r *HolderRepo) Update(ctx context.Context, holder *entities.Holder) error {
	query := `
		UPDATE holders SET
			wallet_address = $2,
			chain = $3,
			balance = $4,
			percentage = $5,
			is_whale = $6,
			risk_score = $7,
			ai_notes = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		holder.ID,
		holder.WalletAddress,
		holder.Chain,
		holder.Balance,
		holder.Percentage,
		holder.IsWhale,
		holder.RiskScore,
		holder.AINotes,
	).Scan(&holder.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("holder %s not found", holder.ID)
		}
		return fmt.Errorf("failed to update holder: %w", err)
	}

	return nil
}

// UpdateRisk stores analysis output on the holder row
func (r *HolderRepo) UpdateRisk(ctx context.Context, id string, isWhale bool, riskScore, aiNotes string) error {
	query := `
		UPDATE holders SET
			is_whale = $2,
			risk_score = $3,
			ai_notes = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, id, isWhale, riskScore, aiNotes); err != nil {
		return fmt.Errorf("failed to update holder risk: %w", err)
	}
	return nil
}

// Delete removes a holder
func (r *HolderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete holder: %w", err)
	}
	return nil
}
