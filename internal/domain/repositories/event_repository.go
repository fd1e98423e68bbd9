package repositories

import (
	"context"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// EventRepository defines the interface for the append-only event log.
// Events are only ever created or deleted.
type EventRepository interface {
	// GetByFilter retrieves events matching the filter, newest first
	GetByFilter(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error)

	// GetRecent retrieves the most recent events across all projects
	GetRecent(ctx context.Context, limit int) ([]entities.Event, error)

	// Count returns the total number of events
	Count(ctx context.Context) (int64, error)

	// Create appends a new event
	Create(ctx context.Context, event *entities.Event) error

	// Delete removes a single event
	Delete(ctx context.Context, id string) error
}
