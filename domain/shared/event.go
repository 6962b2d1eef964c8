package shared

import (
	"context"
	"time"
)

// DomainEvent is an immutable fact recorded by an aggregate mutation.
// Events are buffered on the aggregate, drained by the unit of work at
// commit time and dispatched after the commit succeeds. They are not
// persisted themselves.
type DomainEvent interface {
	// EventName identifies the event type, e.g. "order.created".
	EventName() string

	// OccurredOn is the UTC time the event was raised.
	OccurredOn() time.Time

	// AggregateID is the identity of the aggregate that raised the event.
	AggregateID() string
}

// EventHandler consumes dispatched domain events. Handler failures are
// best-effort side effects: the dispatcher logs them and never lets them
// affect the originating operation.
type EventHandler interface {
	// Name identifies the handler for logging and duplicate registration.
	Name() string

	Handle(ctx context.Context, event DomainEvent) error
}

// EventDispatcher delivers a batch of drained events to the registered
// handlers. Dispatch happens strictly after the unit-of-work commit.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events []DomainEvent)
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc struct {
	name string
	fn   func(ctx context.Context, event DomainEvent) error
}

// NewHandlerFunc wraps fn as a named EventHandler.
func NewHandlerFunc(name string, fn func(ctx context.Context, event DomainEvent) error) HandlerFunc {
	return HandlerFunc{name: name, fn: fn}
}

func (h HandlerFunc) Name() string { return h.name }

func (h HandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return h.fn(ctx, event)
}
