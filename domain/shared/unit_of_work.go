package shared

import "context"

// UnitOfWork batches the mutations of one use case into a single atomic
// persistence operation with explicit transaction boundaries, and drains
// domain events from registered aggregates at commit time.
//
// Contract:
//   - BeginTransaction returns a context carrying the transaction;
//     repositories called with that context join it. Calling it again
//     while a transaction is open is a no-op that returns the same
//     context, not an error.
//   - CommitTransaction persists pending changes before committing; on
//     any failure it rolls back first and then propagates the error.
//     After a successful commit it drains events from the registered
//     aggregates and hands them to the dispatcher; handler failures are
//     logged, never propagated.
//   - RollbackTransaction always releases the transaction resource, even
//     when the underlying rollback call itself fails.
type UnitOfWork interface {
	BeginTransaction(ctx context.Context) (context.Context, error)
	SaveChanges(ctx context.Context) error
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error

	// Register marks aggregates whose buffered events the unit of work
	// drains and dispatches after a successful commit.
	Register(aggregates ...AggregateRoot)

	// Execute wraps fn in BeginTransaction / CommitTransaction, rolling
	// back when fn returns an error.
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// UnitOfWorkFactory creates one UnitOfWork per use-case invocation;
// concurrent requests must never share an instance.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
