package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventBus is a simple implementation of the EventBus interface
// that stores registered handlers in memory and dispatches events to them.
type InMemoryEventBus struct {
	handlers []EventHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEventBus creates a new instance of InMemoryEventBus.
func NewInMemoryEventBus(logger *slog.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}

	return &InMemoryEventBus{
		handlers: make([]EventHandler, 0),
		logger:   logger.With("component", "in_memory_event_bus"),
	}
}

// RegisterHandler adds a new event handler to receive published events.
func (b *InMemoryEventBus) RegisterHandler(handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
	b.logger.Debug("registered new event handler", "handler_count", len(b.handlers))
}

// PublishAll publishes the batch to all registered handlers, preserving
// event order within the batch. If a handler returns an error, delivery
// continues to the remaining handlers and the first error encountered is
// returned.
func (b *InMemoryEventBus) PublishAll(ctx context.Context, batch []*TaskEvent) error {
	if len(batch) == 0 {
		return nil
	}

	b.mu.RLock()
	handlers := make([]EventHandler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	b.logger.Debug("publishing event batch",
		"event_count", len(batch),
		"handler_count", len(handlers))

	if len(handlers) == 0 {
		b.logger.Warn("no handlers registered for event batch",
			"event_count", len(batch))
		return nil
	}

	var firstErr error
	for _, event := range batch {
		for i, handler := range handlers {
			if err := handler.HandleEvent(ctx, event); err != nil {
				b.logger.Error("handler failed to process event",
					"error", err,
					"handler_index", i,
					"event_id", event.ID,
					"event_type", event.Type)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	return firstErr
}
