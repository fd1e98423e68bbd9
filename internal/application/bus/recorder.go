package bus

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/domain/repositories"
)

// NewRecorder returns a handler that persists every notification as one
// row of the append-only event log. Persistence failures are logged, not
// surfaced.
func NewRecorder(events repositories.EventRepository, logger *zap.Logger) Handler {
	return func(ctx context.Context, n Notification) {
		event := &entities.Event{
			ID:        uuid.NewString(),
			ProjectID: n.ProjectID,
			Type:      n.Type,
			Severity:  n.Severity,
			Message:   n.Message,
		}
		if err := events.Create(ctx, event); err != nil {
			logger.Warn("Failed to record event",
				zap.String("type", n.Type),
				zap.Error(err),
			)
		}
	}
}
