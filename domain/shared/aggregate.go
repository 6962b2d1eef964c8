package shared

// Entity is any domain object with a global identity. Entities compare by
// identity, not by attribute values.
type Entity interface {
	ID() string
}

// AggregateRoot is the entry point of a consistency boundary. The root
// records domain events as its state changes; the persistence boundary
// drains them with PullEvents at commit time and hands them to the
// dispatcher, so entities never depend on any notification mechanism.
type AggregateRoot interface {
	Entity

	// PullEvents returns the buffered domain events and clears the buffer,
	// so a second call after commit dispatches nothing twice.
	PullEvents() []DomainEvent
}
