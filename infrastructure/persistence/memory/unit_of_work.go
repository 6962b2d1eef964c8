package memory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ordermanagement/domain/shared"
)

// UnitOfWork provides transaction semantics over the in-memory store by
// snapshotting it at begin and restoring the snapshot on rollback.
// Begin takes the store's transaction lock and holds it until commit or
// rollback, serializing units of work: another request cannot commit
// state between this transaction's snapshot and its restore, so a
// rollback undoes exactly the mutations made by this unit of work.
//
// Like its SQL counterpart it is single-use per request and not safe
// for concurrent use.
type UnitOfWork struct {
	store      *Store
	snap       *storeSnapshot
	aggregates []shared.AggregateRoot
	dispatcher shared.EventDispatcher
	logger     *zap.Logger
}

// NewUnitOfWork creates a unit of work over the store. dispatcher may
// be nil, in which case committed events are dropped.
func NewUnitOfWork(store *Store, dispatcher shared.EventDispatcher, logger *zap.Logger) *UnitOfWork {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitOfWork{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// BeginTransaction takes the store's transaction lock and snapshots the
// store, blocking until any other open unit of work commits or rolls
// back. Calling it with a transaction already open is a no-op that
// returns the same context.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) (context.Context, error) {
	if u.snap != nil {
		return ctx, nil
	}
	u.snap = u.store.beginTx()
	return ctx, nil
}

// SaveChanges is the pre-commit checkpoint. Repository writes mutate
// the store as they are made, so there is nothing left to flush.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if u.snap == nil {
		return fmt.Errorf("save changes called without an open transaction")
	}
	return nil
}

// CommitTransaction releases the transaction lock, discarding the
// snapshot and making the mutations permanent, and then dispatches the
// events drained from the registered aggregates.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if u.snap == nil {
		return fmt.Errorf("commit called without an open transaction")
	}
	u.snap = nil
	u.store.commitTx()

	u.dispatchEvents(ctx)
	return nil
}

// RollbackTransaction restores the snapshot taken at begin, undoing
// every mutation made since, and releases the transaction lock. It is
// safe to call with no transaction open.
func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	if u.snap == nil {
		return nil
	}
	u.store.rollbackTx(u.snap)
	u.snap = nil
	u.aggregates = nil
	return nil
}

// Register marks aggregates whose events are dispatched after commit.
func (u *UnitOfWork) Register(aggregates ...shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregates...)
}

// Execute wraps fn in a transaction. The in-memory store has no
// transient failures, so there is no retry loop here.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	txCtx, err := u.BeginTransaction(ctx)
	if err != nil {
		return err
	}
	if err := fn(txCtx); err != nil {
		_ = u.RollbackTransaction(txCtx)
		return err
	}
	if err := u.SaveChanges(txCtx); err != nil {
		_ = u.RollbackTransaction(txCtx)
		return err
	}
	return u.CommitTransaction(txCtx)
}

func (u *UnitOfWork) dispatchEvents(ctx context.Context) {
	aggregates := u.aggregates
	u.aggregates = nil

	var events []shared.DomainEvent
	for _, aggregate := range aggregates {
		events = append(events, aggregate.PullEvents()...)
	}
	if len(events) == 0 || u.dispatcher == nil {
		return
	}

	u.dispatcher.Dispatch(ctx, events)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWorkFactory hands out a fresh UnitOfWork per use-case
// invocation.
type UnitOfWorkFactory struct {
	store      *Store
	dispatcher shared.EventDispatcher
	logger     *zap.Logger
}

func NewUnitOfWorkFactory(store *Store, dispatcher shared.EventDispatcher, logger *zap.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, dispatcher: dispatcher, logger: logger}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return NewUnitOfWork(f.store, f.dispatcher, f.logger)
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
