package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
)

// Ensure EventRepo implements EventRepository
var _ repositories.EventRepository = (*EventRepo)(nil)

// EventRepo implements EventRepository using PostgreSQL
type EventRepo struct {
	db *sqlx.DB
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *sqlx.DB) *EventRepo {
	return &EventRepo{db: db}
}

// GetByFilter retrieves events matching the filter, newest first
func (r *EventRepo) GetByFilter(ctx context.Context, filter entities.EventFilter) ([]entities.Event, error) {
	query := `SELECT * FROM events WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.ProjectID != nil {
		query += fmt.Sprintf(" AND project_id = $%d", argPos)
		args = append(args, *filter.ProjectID)
		argPos++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argPos)
		args = append(args, *filter.Type)
		argPos++
	}
	if filter.Severity != nil {
		query += fmt.Sprintf(" AND severity = $%d", argPos)
		args = append(args, *filter.Severity)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var events []entities.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	return events, nil
}

// GetRecent retrieves the most recent events across all projects
func (r *EventRepo) GetRecent(ctx context.Context, limit int) ([]entities.Event, error) {
	var events []entities.Event
	query := `SELECT * FROM events ORDER BY created_at DESC LIMIT $1`

	if err := r.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent events: %w", err)
	}

	return events, nil
}

// Count returns the total number of events
func (r *EventRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events`); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// Create appends a new event
func (r *EventRepo) Create(ctx context.Context, event *entities.Event) error {
	query := `
		INSERT INTO events (id, project_id, type, severity, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		event.ID,
		event.ProjectID,
		event.Type,
		event.Severity,
		event.Message,
	).Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// Delete removes a single event
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
