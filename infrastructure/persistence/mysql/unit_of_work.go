package mysql

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ordermanagement/domain/shared"
	"ordermanagement/infrastructure/persistence"
	"ordermanagement/infrastructure/persistence/retry"
)

// UnitOfWork manages one GORM transaction and the domain events of the
// aggregates registered during it. Events are dispatched strictly after
// a successful commit; a rolled-back unit of work dispatches nothing.
//
// A UnitOfWork is single-use per request and not safe for concurrent
// use; the factory hands out a fresh instance each time.
type UnitOfWork struct {
	db          *gorm.DB
	tx          *gorm.DB
	aggregates  []shared.AggregateRoot
	dispatcher  shared.EventDispatcher
	retryConfig retry.Config
	logger      *zap.Logger
}

// NewUnitOfWork creates a unit of work over db. dispatcher may be nil,
// in which case committed events are dropped.
func NewUnitOfWork(db *gorm.DB, dispatcher shared.EventDispatcher, logger *zap.Logger) *UnitOfWork {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitOfWork{
		db:          db,
		dispatcher:  dispatcher,
		retryConfig: retry.DefaultConfig,
		logger:      logger,
	}
}

// SetRetryConfig overrides the retry behavior used by Execute.
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// BeginTransaction starts a transaction and returns a context carrying
// it. Calling it with a transaction already open is a no-op that
// returns an equivalent context.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) (context.Context, error) {
	if persistence.TxFromContext(ctx) != nil {
		return ctx, nil
	}
	if u.tx != nil {
		return persistence.ContextWithTx(ctx, u.tx), nil
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	u.tx = tx
	return persistence.ContextWithTx(ctx, tx), nil
}

// SaveChanges is the pre-commit checkpoint. Repository writes execute
// against the transaction as they are made, so there is nothing left to
// flush; failing here means the unit of work was misused.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if u.tx == nil && persistence.TxFromContext(ctx) == nil {
		return fmt.Errorf("save changes called without an open transaction")
	}
	return nil
}

// CommitTransaction commits and then dispatches the events drained from
// the registered aggregates. A failed commit rolls back first.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if u.tx == nil {
		return fmt.Errorf("commit called without an open transaction")
	}

	if err := u.tx.Commit().Error; err != nil {
		u.tx.Rollback()
		u.tx = nil
		u.aggregates = nil
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	u.dispatchEvents(ctx)
	return nil
}

// RollbackTransaction rolls back and releases the transaction. It is
// safe to call with no transaction open.
func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	u.aggregates = nil
	if err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Register marks aggregates whose events are dispatched after commit.
func (u *UnitOfWork) Register(aggregates ...shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregates...)
}

// Execute wraps fn in a transaction, retrying transient database
// failures. Each attempt starts with a clean aggregate registration.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.ExecuteWithRetry(ctx, u.retryConfig, func(ctx context.Context) error {
		u.aggregates = nil

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
	})
}

// dispatchEvents drains the registered aggregates and hands the events
// to the dispatcher outside the transaction. The transaction slot in
// the context is shadowed so handlers run against the base connection.
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

	u.dispatcher.Dispatch(persistence.ContextWithTx(ctx, nil), events)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
