package order

import "time"

// Event names dispatched through the event bus.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// CreatedEvent is raised when a new order enters Pending.
type CreatedEvent struct {
	orderID    string
	customerID string
	occurredOn time.Time
}

// NewCreatedEvent records the fact that orderID was created for customerID.
func NewCreatedEvent(orderID, customerID string) *CreatedEvent {
	return &CreatedEvent{orderID: orderID, customerID: customerID, occurredOn: time.Now().UTC()}
}

func (e *CreatedEvent) EventName() string     { return EventOrderCreated }
func (e *CreatedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *CreatedEvent) AggregateID() string   { return e.orderID }
func (e *CreatedEvent) OrderID() string       { return e.orderID }
func (e *CreatedEvent) CustomerID() string    { return e.customerID }

// StatusChangedEvent is raised on every successful lifecycle transition,
// capturing the previous and the new status.
type StatusChangedEvent struct {
	orderID        string
	previousStatus Status
	newStatus      Status
	occurredOn     time.Time
}

// NewStatusChangedEvent records a transition from previous to new.
func NewStatusChangedEvent(orderID string, previous, next Status) *StatusChangedEvent {
	return &StatusChangedEvent{
		orderID:        orderID,
		previousStatus: previous,
		newStatus:      next,
		occurredOn:     time.Now().UTC(),
	}
}

func (e *StatusChangedEvent) EventName() string      { return EventOrderStatusChanged }
func (e *StatusChangedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *StatusChangedEvent) AggregateID() string    { return e.orderID }
func (e *StatusChangedEvent) OrderID() string        { return e.orderID }
func (e *StatusChangedEvent) PreviousStatus() Status { return e.previousStatus }
func (e *StatusChangedEvent) NewStatus() Status      { return e.newStatus }
