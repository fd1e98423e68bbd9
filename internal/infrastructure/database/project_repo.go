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

// Ensure ProjectRepo implements ProjectRepository
var _ repositories.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implements ProjectRepository using PostgreSQL
type ProjectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// GetByID retrieves a project by id
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	var project entities.Project
	query := `SELECT * FROM projects WHERE id = $1`

	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// GetByFilter retrieves projects matching the filter, newest first
func (r *ProjectRepo) GetByFilter(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, error) {
	query := `SELECT * FROM projects WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Chain != "" {
		query += fmt.Sprintf(" AND chain = $%d", argPos)
		args = append(args, filter.Chain)
		argPos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR symbol ILIKE $%d OR contract_address ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	query += " ORDER BY created_at DESC"

	var projects []entities.Project
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	return projects, nil
}

// Count returns the total number of projects
func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM projects`); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// Create inserts a new project
func (r *ProjectRepo) Create(ctx context.Context, project *entities.Project) error {
	query := `
		INSERT INTO projects (id, name, symbol, chain, contract_address, network,
			description, website, image_url, total_supply, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		project.ID,
		project.Name,
		project.Symbol,
		project.Chain,
		project.ContractAddress,
		project.Network,
		project.Description,
		project.Website,
		project.ImageURL,
		project.TotalSupply,
		project.Status,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Update modifies an existing project
func (r *ProjectRepo) Update(ctx context.Context, project *entities.Project) error {
	query := `
		UPDATE projects SET
			name = $2,
			symbol = $3,
			chain = $4,
			contract_address = $5,
			network = $6,
			description = $7,
			website = $8,
			image_url = $9,
			total_supply = $10,
			status = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		project.ID,
		project.Name,
		project.Symbol,
		project.Chain,
		project.ContractAddress,
		project.Network,
		project.Description,
		project.Website,
		project.ImageURL,
		project.TotalSupply,
		project.Status,
	).Scan(&project.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("project %s not found", project.ID)
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// Delete removes a project; dependent tokens and holders cascade
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
