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

// Ensure TokenRepo implements TokenRepository
var _ repositories.TokenRepository = (*TokenRepo)(nil)

// TokenRepo implements TokenRepository using PostgreSQL
type TokenRepo struct {
	db *sqlx.DB
}

// NewTokenRepo creates a new token repository
func NewTokenRepo(db *sqlx.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

// GetByID retrieves a token by id
func (r *TokenRepo) GetByID(ctx context.Context, id string) (*entities.Token, error) {
	var token entities.Token
	query := `SELECT * FROM tokens WHERE id = $1`

	if err := r.db.GetContext(ctx, &token, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &token, nil
}

// GetByContractAddress retrieves a token by its contract address
func (r *TokenRepo) GetByContractAddress(ctx context.Context, address string) (*entities.Token, error) {
	var token entities.Token
	query := `SELECT * FROM tokens WHERE contract_address = $1`

	if err := r.db.GetContext(ctx, &token, query, address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token by contract: %w", err)
	}

	return &token, nil
}

// GetAll retrieves all tokens, newest first
func (r *TokenRepo) GetAll(ctx context.Context) ([]entities.Token, error) {
	var tokens []entities.Token
	query := `SELECT * FROM tokens ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &tokens, query); err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}

	return tokens, nil
}

// GetByProject retrieves all tokens belonging to a project
func (r *TokenRepo) GetByProject(ctx context.Context, projectID string) ([]entities.Token, error) {
	var tokens []entities.Token
	query := `SELECT * FROM tokens WHERE project_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &tokens, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to get project tokens: %w", err)
	}

	return tokens, nil
}

// Count returns the total number of tokens
func (r *TokenRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tokens`); err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}
	return count, nil
}

// Create inserts a new token
func (r *TokenRepo) Create(ctx context.Context, token *entities.Token) error {
	query := `
		INSERT INTO tokens (id, project_id, name, symbol, chain, contract_address,
			decimals, supply, price, market_cap)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		token.ID,
		token.ProjectID,
		token.Name,
		token.Symbol,
		token.Chain,
		token.ContractAddress,
		token.Decimals,
		token.Supply,
		token.Price,
		token.MarketCap,
	).Scan(&token.CreatedAt, &token.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// Update modifies an existing token
func (r *TokenRepo) Update(ctx context.Context, token *entities.Token) error {
	query := `
		UPDATE tokens SET
			name = $2,
			symbol = $3,
			chain = $4,
			contract_address = $5,
			decimals = $6,
			supply = $7,
			price = $8,
			market_cap = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		token.ID,
		token.Name,
		token.Symbol,
		token.Chain,
		token.ContractAddress,
		token.Decimals,
		token.Supply,
		token.Price,
		token.MarketCap,
	).Scan(&token.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("token %s not found", token.ID)
		}
		return fmt.Errorf("failed to update token: %w", err)
	}

	return nil
}

// Delete removes a token
func (r *TokenRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
