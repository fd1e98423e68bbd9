// Package bus provides the in-process notification channel the services
// publish lifecycle events to. Subscribers are registered once at startup;
// the persisting subscriber turns notifications into audit-log rows.
package bus

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Notification is one published lifecycle event.
type Notification struct {
	ProjectID *string
	Type      string
	Severity  string
	Message   string
}

// Handler consumes one notification. Handlers must not block for long;
// Publish calls them synchronously.
type Handler func(ctx context.Context, n Notification)

// Bus is a minimal publish/subscribe fan-out.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *zap.Logger
}

// New creates an empty bus
func New(logger *zap.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers a handler for all future notifications.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers a notification to every subscriber in registration
// order. A panicking subscriber is recovered and logged so one bad handler
// cannot take down the publishing request.
func (b *Bus) Publish(ctx context.Context, n Notification) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("Notification handler panicked",
						zap.String("type", n.Type),
						zap.Any("panic", r),
					)
				}
			}()
			h(ctx, n)
		}()
	}
}
