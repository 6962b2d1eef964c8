package order

import (
	"errors"
	"testing"
	"time"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
)

func testCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	email, err := customer.NewEmail("jane@example.com")
	if err != nil {
		t.Fatalf("NewEmail: %v", err)
	}
	c, err := customer.NewCustomer("Jane", "Doe", email, "")
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	return c
}

func testProduct(t *testing.T, name, price, currency string, stock int) *product.Product {
	t.Helper()
	money, err := shared.NewMoneyFromString(price, currency)
	if err != nil {
		t.Fatalf("NewMoneyFromString: %v", err)
	}
	p, err := product.NewProduct(name, money, stock, "", "")
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func testOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(testCustomer(t), "ORD-20260815-1234", "1 Main St", "")
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts pending and records the creation event", func(t *testing.T) {
		c := testCustomer(t)
		o, err := NewOrder(c, "ORD-20260815-1234", "1 Main St", "gift wrap")
		if err != nil {
			t.Fatalf("NewOrder: %v", err)
		}
		if o.Status() != StatusPending {
			t.Errorf("Status() = %s, want Pending", o.Status())
		}
		if o.CustomerID() != c.ID() {
			t.Errorf("CustomerID() = %s, want %s", o.CustomerID(), c.ID())
		}

		events := o.PullEvents()
		if len(events) != 1 {
			t.Fatalf("len(events) = %d, want 1", len(events))
		}
		created, ok := events[0].(*CreatedEvent)
		if !ok {
			t.Fatalf("event type = %T, want *CreatedEvent", events[0])
		}
		if created.EventName() != EventOrderCreated {
			t.Errorf("EventName() = %s", created.EventName())
		}
		if created.OrderID() != o.ID() {
			t.Errorf("OrderID() = %s, want %s", created.OrderID(), o.ID())
		}
	})

	t.Run("requires a customer", func(t *testing.T) {
		if _, err := NewOrder(nil, "ORD-20260815-1234", "", ""); !errors.Is(err, ErrNilCustomer) {
			t.Errorf("err = %v, want ErrNilCustomer", err)
		}
	})
}

func TestAddOrderItem(t *testing.T) {
	t.Run("snapshots the price at add time", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 10)

		if err := o.AddOrderItem(p, 2); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		p.UpdatePrice(mustPrice(t, "29.99", "USD"))

		items := o.Items()
		if len(items) != 1 {
			t.Fatalf("len(items) = %d, want 1", len(items))
		}
		if got := items[0].UnitPrice().String(); got != "19.99 USD" {
			t.Errorf("unit price = %s, want the snapshot 19.99 USD", got)
		}
	})

	t.Run("merges lines for the same product", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 10)

		if err := o.AddOrderItem(p, 2); err != nil {
			t.Fatalf("first add: %v", err)
		}
		if err := o.AddOrderItem(p, 3); err != nil {
			t.Fatalf("second add: %v", err)
		}

		items := o.Items()
		if len(items) != 1 {
			t.Fatalf("len(items) = %d, want 1 merged line", len(items))
		}
		if items[0].Quantity() != 5 {
			t.Errorf("quantity = %d, want 5", items[0].Quantity())
		}
	})

	t.Run("checks stock against the merged total", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 5)

		if err := o.AddOrderItem(p, 4); err != nil {
			t.Fatalf("first add: %v", err)
		}
		err := o.AddOrderItem(p, 2)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("err = %v, want ErrInsufficientStock", err)
		}
		if err.Error() != "Insufficient stock for product Widget" {
			t.Errorf("message = %q", err.Error())
		}
		if o.Items()[0].Quantity() != 4 {
			t.Error("failed merge should leave the line unchanged")
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 5)
		if err := o.AddOrderItem(p, 0); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("err = %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		o := testOrder(t)
		if err := o.AddOrderItem(testProduct(t, "Widget", "19.99", "USD", 5), 1); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		err := o.AddOrderItem(testProduct(t, "Gadget", "9.99", "EUR", 5), 1)
		if !errors.Is(err, ErrMixedCurrencies) {
			t.Errorf("err = %v, want ErrMixedCurrencies", err)
		}
	})

	t.Run("rejects mutation after confirmation", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 5)
		if err := o.AddOrderItem(p, 1); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		if err := o.Confirm(); err != nil {
			t.Fatalf("Confirm: %v", err)
		}

		err := o.AddOrderItem(p, 1)
		if !errors.Is(err, ErrNotModifiable) {
			t.Fatalf("err = %v, want ErrNotModifiable", err)
		}
		if err.Error() != "Cannot modify confirmed order" {
			t.Errorf("message = %q", err.Error())
		}
	})
}

func TestRemoveOrderItem(t *testing.T) {
	o := testOrder(t)
	p := testProduct(t, "Widget", "19.99", "USD", 5)
	if err := o.AddOrderItem(p, 1); err != nil {
		t.Fatalf("AddOrderItem: %v", err)
	}

	t.Run("removing an absent product is not an error", func(t *testing.T) {
		if err := o.RemoveOrderItem("no-such-product"); err != nil {
			t.Errorf("RemoveOrderItem: %v", err)
		}
		if len(o.Items()) != 1 {
			t.Error("absent removal should not change the lines")
		}
	})

	t.Run("removes the matching line", func(t *testing.T) {
		if err := o.RemoveOrderItem(p.ID()); err != nil {
			t.Fatalf("RemoveOrderItem: %v", err)
		}
		if len(o.Items()) != 0 {
			t.Errorf("len(items) = %d, want 0", len(o.Items()))
		}
	})
}

func TestUpdateOrderItemQuantity(t *testing.T) {
	t.Run("replaces the quantity", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 10)
		if err := o.AddOrderItem(p, 2); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		if err := o.UpdateOrderItemQuantity(p, 7); err != nil {
			t.Fatalf("UpdateOrderItemQuantity: %v", err)
		}
		if o.Items()[0].Quantity() != 7 {
			t.Errorf("quantity = %d, want 7", o.Items()[0].Quantity())
		}
	})

	t.Run("zero removes the line", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 10)
		if err := o.AddOrderItem(p, 2); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		if err := o.UpdateOrderItemQuantity(p, 0); err != nil {
			t.Fatalf("UpdateOrderItemQuantity: %v", err)
		}
		if len(o.Items()) != 0 {
			t.Error("zero quantity should remove the line")
		}
	})

	t.Run("missing line is an error", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 10)
		if err := o.UpdateOrderItemQuantity(p, 1); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("err = %v, want ErrItemNotFound", err)
		}
	})
}

func TestValidateForConfirmation(t *testing.T) {
	t.Run("empty order", func(t *testing.T) {
		o := testOrder(t)
		err := o.ValidateForConfirmation(nil)
		if !errors.Is(err, ErrEmptyOrder) {
			t.Fatalf("err = %v, want ErrEmptyOrder", err)
		}
		if err.Error() != "Order must have at least one item" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("missing shipping address", func(t *testing.T) {
		o, err := NewOrder(testCustomer(t), "ORD-20260815-1234", "", "")
		if err != nil {
			t.Fatalf("NewOrder: %v", err)
		}
		p := testProduct(t, "Widget", "19.99", "USD", 5)
		if err := o.AddOrderItem(p, 1); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		if err := o.ValidateForConfirmation(map[string]*product.Product{p.ID(): p}); !errors.Is(err, ErrShippingAddressRequired) {
			t.Errorf("err = %v, want ErrShippingAddressRequired", err)
		}
	})

	t.Run("stock shortage since placement", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 5)
		if err := o.AddOrderItem(p, 3); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		if err := p.UpdateStock(2); err != nil {
			t.Fatalf("UpdateStock: %v", err)
		}

		err := o.ValidateForConfirmation(map[string]*product.Product{p.ID(): p})
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("err = %v, want ErrInsufficientStock", err)
		}
		if err.Error() != "Insufficient stock for product Widget" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("passes with address, lines and stock", func(t *testing.T) {
		o := testOrder(t)
		p := testProduct(t, "Widget", "19.99", "USD", 5)
		if err := o.AddOrderItem(p, 3); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		if err := o.ValidateForConfirmation(map[string]*product.Product{p.ID(): p}); err != nil {
			t.Errorf("ValidateForConfirmation: %v", err)
		}
	})
}

func TestLifecycle(t *testing.T) {
	newConfirmable := func(t *testing.T) *Order {
		o := testOrder(t)
		if err := o.AddOrderItem(testProduct(t, "Widget", "19.99", "USD", 10), 1); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		o.PullEvents()
		return o
	}

	t.Run("full happy path", func(t *testing.T) {
		o := newConfirmable(t)

		if err := o.Confirm(); err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if err := o.StartProcessing(); err != nil {
			t.Fatalf("StartProcessing: %v", err)
		}
		if err := o.Ship(time.Time{}); err != nil {
			t.Fatalf("Ship: %v", err)
		}
		if o.ShippedDate() == nil {
			t.Error("Ship should record a shipped date")
		}
		if err := o.Deliver(time.Time{}); err != nil {
			t.Fatalf("Deliver: %v", err)
		}
		if o.DeliveredDate() == nil {
			t.Error("Deliver should record a delivered date")
		}
		if o.Status() != StatusDelivered {
			t.Errorf("final status = %s, want Delivered", o.Status())
		}

		events := o.PullEvents()
		if len(events) != 4 {
			t.Fatalf("len(events) = %d, want 4 transitions", len(events))
		}
		first, ok := events[0].(*StatusChangedEvent)
		if !ok {
			t.Fatalf("event type = %T, want *StatusChangedEvent", events[0])
		}
		if first.PreviousStatus() != StatusPending || first.NewStatus() != StatusConfirmed {
			t.Errorf("first transition = %s -> %s", first.PreviousStatus(), first.NewStatus())
		}
	})

	t.Run("ship uses the explicit date", func(t *testing.T) {
		o := newConfirmable(t)
		if err := o.Confirm(); err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if err := o.StartProcessing(); err != nil {
			t.Fatalf("StartProcessing: %v", err)
		}

		shipped := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
		if err := o.Ship(shipped); err != nil {
			t.Fatalf("Ship: %v", err)
		}
		if !o.ShippedDate().Equal(shipped) {
			t.Errorf("ShippedDate() = %v, want %v", o.ShippedDate(), shipped)
		}
	})

	t.Run("illegal transitions carry the operation and status", func(t *testing.T) {
		tests := []struct {
			name    string
			setup   func(o *Order) error
			run     func(o *Order) error
			message string
		}{
			{"confirm twice", func(o *Order) error {
				return o.Confirm()
			}, func(o *Order) error {
				return o.Confirm()
			}, "Cannot confirm order with status Confirmed"},
			{"process before confirm", nil, func(o *Order) error {
				return o.StartProcessing()
			}, "Cannot process order with status Pending"},
			{"ship before processing", nil, func(o *Order) error {
				return o.Ship(time.Time{})
			}, "Cannot ship order with status Pending"},
			{"deliver before shipping", nil, func(o *Order) error {
				return o.Deliver(time.Time{})
			}, "Cannot deliver order with status Pending"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				o := newConfirmable(t)
				if tt.setup != nil {
					if err := tt.setup(o); err != nil {
						t.Fatalf("setup: %v", err)
					}
				}

				status := o.Status()
				updatedAt := o.UpdatedAt()
				shippedDate := o.ShippedDate()
				deliveredDate := o.DeliveredDate()

				err := tt.run(o)
				if !errors.Is(err, ErrInvalidStateTransition) {
					t.Fatalf("err = %v, want ErrInvalidStateTransition", err)
				}
				if err.Error() != tt.message {
					t.Errorf("message = %q, want %q", err.Error(), tt.message)
				}

				if o.Status() != status {
					t.Errorf("status changed to %s on a failed transition", o.Status())
				}
				if !o.UpdatedAt().Equal(updatedAt) {
					t.Error("updatedAt changed on a failed transition")
				}
				if o.ShippedDate() != shippedDate {
					t.Error("shippedDate changed on a failed transition")
				}
				if o.DeliveredDate() != deliveredDate {
					t.Error("deliveredDate changed on a failed transition")
				}
			})
		}
	})

	t.Run("confirming an empty order", func(t *testing.T) {
		o := testOrder(t)
		err := o.Confirm()
		if !errors.Is(err, ErrEmptyOrder) {
			t.Fatalf("err = %v, want ErrEmptyOrder", err)
		}
		if err.Error() != "Cannot confirm empty order" {
			t.Errorf("message = %q", err.Error())
		}
	})
}

func TestCancel(t *testing.T) {
	newDelivered := func(t *testing.T) *Order {
		o := testOrder(t)
		if err := o.AddOrderItem(testProduct(t, "Widget", "19.99", "USD", 10), 1); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		for _, step := range []func() error{
			o.Confirm,
			o.StartProcessing,
			func() error { return o.Ship(time.Time{}) },
			func() error { return o.Deliver(time.Time{}) },
		} {
			if err := step(); err != nil {
				t.Fatalf("lifecycle step: %v", err)
			}
		}
		return o
	}

	t.Run("cancels from any non-terminal status", func(t *testing.T) {
		o := testOrder(t)
		if !o.CanBeCancelled() {
			t.Error("pending orders should be cancellable")
		}
		if err := o.Cancel(); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if o.Status() != StatusCancelled {
			t.Errorf("Status() = %s, want Cancelled", o.Status())
		}
	})

	t.Run("delivered orders cannot be cancelled", func(t *testing.T) {
		o := newDelivered(t)
		err := o.Cancel()
		if !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("err = %v, want ErrInvalidStateTransition", err)
		}
		if err.Error() != "Cannot cancel delivered order" {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("cancelling twice", func(t *testing.T) {
		o := testOrder(t)
		if err := o.Cancel(); err != nil {
			t.Fatalf("first Cancel: %v", err)
		}
		err := o.Cancel()
		if err == nil || err.Error() != "Order is already cancelled" {
			t.Errorf("second Cancel: err = %v, want %q", err, "Order is already cancelled")
		}
	})
}

func TestUpdateShippingAddress(t *testing.T) {
	o := testOrder(t)
	if err := o.AddOrderItem(testProduct(t, "Widget", "19.99", "USD", 10), 1); err != nil {
		t.Fatalf("AddOrderItem: %v", err)
	}

	if err := o.UpdateShippingAddress("2 Oak Ave"); err != nil {
		t.Fatalf("UpdateShippingAddress: %v", err)
	}
	if o.ShippingAddress() != "2 Oak Ave" {
		t.Errorf("ShippingAddress() = %s", o.ShippingAddress())
	}

	for _, step := range []func() error{
		o.Confirm,
		o.StartProcessing,
		func() error { return o.Ship(time.Time{}) },
	} {
		if err := step(); err != nil {
			t.Fatalf("lifecycle step: %v", err)
		}
	}

	err := o.UpdateShippingAddress("3 Pine Rd")
	if err == nil || err.Error() != "Cannot update shipping address for shipped/delivered order" {
		t.Errorf("err = %v", err)
	}
}

func TestTotals(t *testing.T) {
	t.Run("empty order totals to zero USD", func(t *testing.T) {
		o := testOrder(t)
		if got := o.TotalAmount().String(); got != "0.00 USD" {
			t.Errorf("TotalAmount() = %s, want 0.00 USD", got)
		}
		if o.TotalItems() != 0 {
			t.Errorf("TotalItems() = %d, want 0", o.TotalItems())
		}
	})

	t.Run("sums line totals and quantities", func(t *testing.T) {
		o := testOrder(t)
		if err := o.AddOrderItem(testProduct(t, "Widget", "19.99", "USD", 10), 2); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		if err := o.AddOrderItem(testProduct(t, "Gadget", "5.00", "USD", 10), 3); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}

		if got := o.TotalAmount().String(); got != "54.98 USD" {
			t.Errorf("TotalAmount() = %s, want 54.98 USD", got)
		}
		if o.TotalItems() != 5 {
			t.Errorf("TotalItems() = %d, want 5", o.TotalItems())
		}
	})
}

func TestSummary(t *testing.T) {
	o := testOrder(t)
	if err := o.AddOrderItem(testProduct(t, "Widget", "19.99", "USD", 10), 3); err != nil {
		t.Fatalf("AddOrderItem: %v", err)
	}

	want := "ORD-20260815-1234: 3 items, Total: 59.97 USD, Status: Pending"
	if got := o.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	t.Run("singular item", func(t *testing.T) {
		single := testOrder(t)
		if err := single.AddOrderItem(testProduct(t, "Widget", "19.99", "USD", 10), 1); err != nil {
			t.Fatalf("AddOrderItem: %v", err)
		}
		want := "ORD-20260815-1234: 1 item, Total: 19.99 USD, Status: Pending"
		if got := single.Summary(); got != want {
			t.Errorf("Summary() = %q, want %q", got, want)
		}
	})
}

func TestPullEventsDrains(t *testing.T) {
	o := testOrder(t)
	if len(o.PullEvents()) != 1 {
		t.Fatal("expected the creation event")
	}
	if len(o.PullEvents()) != 0 {
		t.Error("second drain should be empty")
	}
}

func mustPrice(t *testing.T, amount, currency string) shared.Money {
	t.Helper()
	m, err := shared.NewMoneyFromString(amount, currency)
	if err != nil {
		t.Fatalf("NewMoneyFromString: %v", err)
	}
	return m
}
