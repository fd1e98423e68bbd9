package repositories

import (
	"context"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// TokenRepository defines the interface for token data operations
type TokenRepository interface {
	// GetByID retrieves a token by id; returns nil when not found
	GetByID(ctx context.Context, id string) (*entities.Token, error)

	// GetByContractAddress retrieves a token by its contract address
	GetByContractAddress(ctx context.Context, address string) (*entities.Token, error)

	// GetAll retrieves all tokens, newest first
	GetAll(ctx context.Context) ([]entities.Token, error)

	// GetByProject retrieves all tokens belonging to a project
	GetByProject(ctx context.Context, projectID string) ([]entities.Token, error)

	// Count returns the total number of tokens
	Count(ctx context.Context) (int64, error)

	// Create inserts a new token
	Create(ctx context.Context, token *entities.Token) error

	// Update modifies an existing token
	Update(ctx context.Context, token *entities.Token) error

	// Delete removes a token
	Delete(ctx context.Context, id string) error
}
