package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"ordermanagement/domain/shared"
)

// EventBus is a synchronous in-process event dispatcher. Handlers
// subscribe by event name and run in registration order; a handler
// failure is logged and never stops the remaining handlers or reaches
// the caller, since the triggering operation has already committed.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	logger   *zap.Logger
}

// NewEventBus creates an empty event bus.
func NewEventBus(logger *zap.Logger) *EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventBus{
		handlers: make(map[string][]shared.EventHandler),
		logger:   logger,
	}
}

// Subscribe registers handler for the named event. Registering the
// same handler name twice for one event is a no-op.
func (bus *EventBus) Subscribe(eventName string, handler shared.EventHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for _, existing := range bus.handlers[eventName] {
		if existing.Name() == handler.Name() {
			return
		}
	}
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
}

// Dispatch delivers each event to its subscribed handlers.
func (bus *EventBus) Dispatch(ctx context.Context, events []shared.DomainEvent) {
	for _, event := range events {
		bus.mu.RLock()
		handlers := make([]shared.EventHandler, len(bus.handlers[event.EventName()]))
		copy(handlers, bus.handlers[event.EventName()])
		bus.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler.Handle(ctx, event); err != nil {
				bus.logger.Error("event handler failed",
					zap.String("event", event.EventName()),
					zap.String("aggregate_id", event.AggregateID()),
					zap.String("handler", handler.Name()),
					zap.Error(err))
			}
		}
	}
}

var _ shared.EventDispatcher = (*EventBus)(nil)
