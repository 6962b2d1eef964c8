package order

import (
	"context"

	"go.uber.org/zap"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/order"
	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
)

// lowStockThreshold triggers a warning log when a created order leaves a
// product at or below this many units.
const lowStockThreshold = 10

// CreatedLogHandler logs every order creation.
type CreatedLogHandler struct {
	logger *zap.Logger
}

// NewCreatedLogHandler creates the order-created audit handler.
func NewCreatedLogHandler(logger *zap.Logger) *CreatedLogHandler {
	return &CreatedLogHandler{logger: logger}
}

func (h *CreatedLogHandler) Name() string { return "order-created-log" }

func (h *CreatedLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*order.CreatedEvent)
	if !ok {
		return nil
	}
	h.logger.Info("order created",
		zap.String("order_id", created.OrderID()),
		zap.String("customer_id", created.CustomerID()),
	)
	return nil
}

// StatusChangedLogHandler logs every lifecycle transition.
type StatusChangedLogHandler struct {
	logger *zap.Logger
}

// NewStatusChangedLogHandler creates the status-transition audit handler.
func NewStatusChangedLogHandler(logger *zap.Logger) *StatusChangedLogHandler {
	return &StatusChangedLogHandler{logger: logger}
}

func (h *StatusChangedLogHandler) Name() string { return "order-status-changed-log" }

func (h *StatusChangedLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*order.StatusChangedEvent)
	if !ok {
		return nil
	}
	h.logger.Info("order status changed",
		zap.String("order_id", changed.OrderID()),
		zap.String("previous_status", changed.PreviousStatus().String()),
		zap.String("new_status", changed.NewStatus().String()),
	)
	return nil
}

// InventoryAlertHandler inspects stock levels after an order is created
// and warns when a product runs low. Stock itself was already reserved
// inside the placement transaction; this handler only observes.
type InventoryAlertHandler struct {
	orders   order.Repository
	products product.Repository
	logger   *zap.Logger
}

// NewInventoryAlertHandler creates the low-stock alert handler.
func NewInventoryAlertHandler(orders order.Repository, products product.Repository, logger *zap.Logger) *InventoryAlertHandler {
	return &InventoryAlertHandler{orders: orders, products: products, logger: logger}
}

func (h *InventoryAlertHandler) Name() string { return "order-inventory-alert" }

func (h *InventoryAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*order.CreatedEvent)
	if !ok {
		return nil
	}

	o, err := h.orders.FindOne(ctx, order.ByIDWithItems(created.OrderID()))
	if err != nil {
		return err
	}

	for _, item := range o.Items() {
		p, err := h.products.GetByID(ctx, item.ProductID())
		if err != nil {
			continue
		}
		if p.StockQuantity() <= lowStockThreshold {
			h.logger.Warn("low stock",
				zap.String("product_id", p.ID()),
				zap.String("product_name", p.Name()),
				zap.Int("stock_quantity", p.StockQuantity()),
			)
		}
	}
	return nil
}

// ConfirmationEmailHandler sends the order confirmation email when an
// order is created. Failures are returned to the dispatcher, which logs
// and swallows them; email must never fail the order.
type ConfirmationEmailHandler struct {
	orders    order.Repository
	customers customer.Repository
	email     EmailService
	logger    *zap.Logger
}

// NewConfirmationEmailHandler creates the confirmation email handler.
func NewConfirmationEmailHandler(orders order.Repository, customers customer.Repository, email EmailService, logger *zap.Logger) *ConfirmationEmailHandler {
	return &ConfirmationEmailHandler{orders: orders, customers: customers, email: email, logger: logger}
}

func (h *ConfirmationEmailHandler) Name() string { return "order-confirmation-email" }

func (h *ConfirmationEmailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*order.CreatedEvent)
	if !ok {
		return nil
	}

	o, err := h.orders.FindOne(ctx, order.ByIDWithItems(created.OrderID()))
	if err != nil {
		return err
	}
	c, err := h.customers.GetByID(ctx, o.CustomerID())
	if err != nil {
		return err
	}

	if err := h.email.SendOrderConfirmation(ctx, c.Email().Value(), c.FullName(), o.OrderNumber(), o.TotalAmount().String()); err != nil {
		return err
	}

	h.logger.Info("order confirmation email sent",
		zap.String("order_id", o.ID()),
		zap.String("to", c.Email().Value()),
	)
	return nil
}

// StatusEmailHandler notifies the customer of lifecycle transitions.
type StatusEmailHandler struct {
	orders    order.Repository
	customers customer.Repository
	email     EmailService
}

// NewStatusEmailHandler creates the status-update email handler.
func NewStatusEmailHandler(orders order.Repository, customers customer.Repository, email EmailService) *StatusEmailHandler {
	return &StatusEmailHandler{orders: orders, customers: customers, email: email}
}

func (h *StatusEmailHandler) Name() string { return "order-status-email" }

func (h *StatusEmailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*order.StatusChangedEvent)
	if !ok {
		return nil
	}

	o, err := h.orders.FindOne(ctx, order.ByIDWithItems(changed.OrderID()))
	if err != nil {
		return err
	}
	c, err := h.customers.GetByID(ctx, o.CustomerID())
	if err != nil {
		return err
	}

	return h.email.SendOrderStatusUpdate(ctx, c.Email().Value(), c.FullName(), o.OrderNumber(), changed.NewStatus().String())
}
