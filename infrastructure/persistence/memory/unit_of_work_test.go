package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/order"
	"ordermanagement/domain/shared"
)

// captureDispatcher records dispatched events for assertions.
type captureDispatcher struct {
	events []shared.DomainEvent
}

func (d *captureDispatcher) Dispatch(ctx context.Context, events []shared.DomainEvent) {
	d.events = append(d.events, events...)
}

func TestUnitOfWorkCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	dispatcher := &captureDispatcher{}
	uow := NewUnitOfWork(store, dispatcher, nil)
	repo := NewCustomerRepository(store)

	txCtx, err := uow.BeginTransaction(ctx)
	if err != nil {
		t.Fatalf("BeginTransaction: %v", err)
	}

	c := newCustomer(t, "Jane", "Doe", "jane@example.com")
	if err := repo.Add(txCtx, c); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := uow.SaveChanges(txCtx); err != nil {
		t.Fatalf("SaveChanges: %v", err)
	}
	if err := uow.CommitTransaction(txCtx); err != nil {
		t.Fatalf("CommitTransaction: %v", err)
	}

	if _, err := repo.GetByID(ctx, c.ID()); err != nil {
		t.Errorf("committed customer should be readable: %v", err)
	}
}

func TestUnitOfWorkRollback(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	uow := NewUnitOfWork(store, nil, nil)
	customers := NewCustomerRepository(store)
	products := NewProductRepository(store)

	keep := newProduct(t, "Hammer", "9.99", 10)
	if err := products.Add(ctx, keep); err != nil {
		t.Fatalf("Add: %v", err)
	}

	txCtx, err := uow.BeginTransaction(ctx)
	if err != nil {
		t.Fatalf("BeginTransaction: %v", err)
	}

	c := newCustomer(t, "Jane", "Doe", "jane@example.com")
	if err := customers.Add(txCtx, c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := keep.UpdateStock(1); err != nil {
		t.Fatalf("UpdateStock: %v", err)
	}
	if err := products.Update(txCtx, keep); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := uow.RollbackTransaction(txCtx); err != nil {
		t.Fatalf("RollbackTransaction: %v", err)
	}

	if _, err := customers.GetByID(ctx, c.ID()); err == nil {
		t.Error("rolled-back insert should be gone")
	}
	got, err := products.GetByID(ctx, keep.ID())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.StockQuantity() != 10 {
		t.Errorf("stock = %d, want the pre-transaction 10", got.StockQuantity())
	}
}

func TestUnitOfWorkSerialization(t *testing.T) {
	ctx := context.Background()

	t.Run("a rollback cannot undo another transaction's commit", func(t *testing.T) {
		store := NewStore()
		repo := NewCustomerRepository(store)

		first := NewUnitOfWork(store, nil, nil)
		txCtx, err := first.BeginTransaction(ctx)
		if err != nil {
			t.Fatalf("BeginTransaction: %v", err)
		}

		// The second unit of work blocks in Begin until the first
		// commits, so its snapshot always includes the commit.
		done := make(chan error, 1)
		go func() {
			second := NewUnitOfWork(store, nil, nil)
			secondCtx, err := second.BeginTransaction(ctx)
			if err != nil {
				done <- err
				return
			}
			done <- second.RollbackTransaction(secondCtx)
		}()

		time.Sleep(10 * time.Millisecond)

		c := newCustomer(t, "Jane", "Doe", "jane@example.com")
		if err := repo.Add(txCtx, c); err != nil {
			t.Fatalf("Add: %v", err)
		}
		if err := first.SaveChanges(txCtx); err != nil {
			t.Fatalf("SaveChanges: %v", err)
		}
		if err := first.CommitTransaction(txCtx); err != nil {
			t.Fatalf("CommitTransaction: %v", err)
		}

		if err := <-done; err != nil {
			t.Fatalf("second unit of work: %v", err)
		}

		if _, err := repo.GetByID(ctx, c.ID()); err != nil {
			t.Errorf("committed customer must survive the other rollback: %v", err)
		}
	})

	t.Run("sequential units of work are independent", func(t *testing.T) {
		store := NewStore()
		repo := NewCustomerRepository(store)

		first := NewUnitOfWork(store, nil, nil)
		c := newCustomer(t, "Jane", "Doe", "jane@example.com")
		err := first.Execute(ctx, func(ctx context.Context) error {
			return repo.Add(ctx, c)
		})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}

		second := NewUnitOfWork(store, nil, nil)
		txCtx, err := second.BeginTransaction(ctx)
		if err != nil {
			t.Fatalf("BeginTransaction: %v", err)
		}
		if err := second.RollbackTransaction(txCtx); err != nil {
			t.Fatalf("RollbackTransaction: %v", err)
		}

		if _, err := repo.GetByID(ctx, c.ID()); err != nil {
			t.Errorf("earlier commit must survive a later rollback: %v", err)
		}
	})
}

func TestUnitOfWorkContract(t *testing.T) {
	ctx := context.Background()

	t.Run("begin is idempotent", func(t *testing.T) {
		uow := NewUnitOfWork(NewStore(), nil, nil)
		txCtx, err := uow.BeginTransaction(ctx)
		if err != nil {
			t.Fatalf("first begin: %v", err)
		}
		if _, err := uow.BeginTransaction(txCtx); err != nil {
			t.Errorf("second begin should be a no-op, got %v", err)
		}
	})

	t.Run("save and commit require an open transaction", func(t *testing.T) {
		uow := NewUnitOfWork(NewStore(), nil, nil)
		if err := uow.SaveChanges(ctx); err == nil {
			t.Error("SaveChanges without a transaction should fail")
		}
		if err := uow.CommitTransaction(ctx); err == nil {
			t.Error("CommitTransaction without a transaction should fail")
		}
	})

	t.Run("rollback without a transaction is safe", func(t *testing.T) {
		uow := NewUnitOfWork(NewStore(), nil, nil)
		if err := uow.RollbackTransaction(ctx); err != nil {
			t.Errorf("RollbackTransaction: %v", err)
		}
	})
}

func TestUnitOfWorkEventDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("events dispatch after commit only", func(t *testing.T) {
		store := NewStore()
		dispatcher := &captureDispatcher{}
		uow := NewUnitOfWork(store, dispatcher, nil)
		repo := NewOrderRepository(store)

		c := newCustomer(t, "Jane", "Doe", "jane@example.com")
		o := newOrderWithEvents(t, c, "ORD-20260815-1000")

		txCtx, err := uow.BeginTransaction(ctx)
		if err != nil {
			t.Fatalf("BeginTransaction: %v", err)
		}
		if err := repo.Add(txCtx, o); err != nil {
			t.Fatalf("Add: %v", err)
		}
		uow.Register(o)

		if len(dispatcher.events) != 0 {
			t.Fatal("nothing may dispatch before commit")
		}
		if err := uow.CommitTransaction(txCtx); err != nil {
			t.Fatalf("CommitTransaction: %v", err)
		}
		if len(dispatcher.events) != 1 {
			t.Fatalf("len(events) = %d, want 1", len(dispatcher.events))
		}
		if dispatcher.events[0].AggregateID() != o.ID() {
			t.Errorf("AggregateID() = %s", dispatcher.events[0].AggregateID())
		}
	})

	t.Run("rollback discards registered events", func(t *testing.T) {
		store := NewStore()
		dispatcher := &captureDispatcher{}
		uow := NewUnitOfWork(store, dispatcher, nil)

		c := newCustomer(t, "Jane", "Doe", "jane@example.com")
		o := newOrderWithEvents(t, c, "ORD-20260815-1000")

		txCtx, err := uow.BeginTransaction(ctx)
		if err != nil {
			t.Fatalf("BeginTransaction: %v", err)
		}
		uow.Register(o)
		if err := uow.RollbackTransaction(txCtx); err != nil {
			t.Fatalf("RollbackTransaction: %v", err)
		}

		if len(dispatcher.events) != 0 {
			t.Error("rolled-back events must not dispatch")
		}
	})
}

func TestUnitOfWorkExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		store := NewStore()
		uow := NewUnitOfWork(store, nil, nil)
		repo := NewCustomerRepository(store)
		c := newCustomer(t, "Jane", "Doe", "jane@example.com")

		err := uow.Execute(ctx, func(ctx context.Context) error {
			return repo.Add(ctx, c)
		})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if _, err := repo.GetByID(ctx, c.ID()); err != nil {
			t.Errorf("committed customer should be readable: %v", err)
		}
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		store := NewStore()
		uow := NewUnitOfWork(store, nil, nil)
		repo := NewCustomerRepository(store)
		c := newCustomer(t, "Jane", "Doe", "jane@example.com")
		boom := errors.New("boom")

		err := uow.Execute(ctx, func(ctx context.Context) error {
			if err := repo.Add(ctx, c); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
		if _, err := repo.GetByID(ctx, c.ID()); err == nil {
			t.Error("failed Execute should roll the insert back")
		}
	})
}

// newOrderWithEvents builds an order keeping its creation event
// buffered, unlike the drained fixture in store_test.
func newOrderWithEvents(t *testing.T, c *customer.Customer, number string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(c, number, "1 Main St", "")
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	return o
}
