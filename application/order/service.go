/*
Package order orchestrates the order lifecycle: placement with eager
stock reservation, confirmation, status transitions and the read-side
order queries.

CreateOrder drives the unit of work explicitly so the whole placement
(customer check, stock decrements, order insert) commits or rolls back
as one transaction; the simpler single-aggregate use cases go through
Execute. Domain events buffered on the aggregate are dispatched by the
unit of work after a successful commit, never before.
*/
package order

import (
	"context"
	"fmt"
	"time"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/order"
	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
)

// Service coordinates order business processes.
type Service struct {
	orders     order.Repository
	customers  customer.Repository
	products   product.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewService creates an order application service.
func NewService(
	orders order.Repository,
	customers customer.Repository,
	products product.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *Service {
	return &Service{
		orders:     orders,
		customers:  customers,
		products:   products,
		uowFactory: uowFactory,
	}
}

// CreateOrder places a new Pending order. Stock is reserved eagerly:
// each line decrements its product's stock inside the same transaction
// that inserts the order, so a failing line rolls everything back.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if err := validateCreateOrder(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	txCtx, err := uow.BeginTransaction(ctx)
	if err != nil {
		return nil, err
	}

	o, err := s.placeOrder(txCtx, uow, req)
	if err != nil {
		_ = uow.RollbackTransaction(txCtx)
		return nil, err
	}

	return toResponse(o), nil
}

// placeOrder runs the placement inside the transaction carried by ctx
// and commits. The caller rolls back on error.
func (s *Service) placeOrder(ctx context.Context, uow shared.UnitOfWork, req CreateOrderRequest) (*order.Order, error) {
	c, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	orderNumber, err := order.UniqueOrderNumber(ctx, func(ctx context.Context, number string) (bool, error) {
		return s.orders.Exists(ctx, order.ByOrderNumber(number))
	})
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(c, orderNumber, req.ShippingAddress, req.Notes)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if err := o.AddOrderItem(p, item.Quantity); err != nil {
			return nil, err
		}
		if err := p.UpdateStock(p.StockQuantity() - item.Quantity); err != nil {
			return nil, err
		}
		if err := s.products.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Add(ctx, o); err != nil {
		return nil, err
	}

	uow.Register(o)

	if err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	if err := uow.CommitTransaction(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// ConfirmOrder validates and confirms a Pending order: at least one
// line, a shipping address, and stock cover for every line.
func (s *Service) ConfirmOrder(ctx context.Context, orderID string) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindOne(ctx, order.ByIDWithItems(orderID))
		if err != nil {
			return err
		}

		products := make(map[string]*product.Product, len(o.Items()))
		for _, item := range o.Items() {
			p, err := s.products.GetByID(ctx, item.ProductID())
			if err != nil {
				return err
			}
			products[p.ID()] = p
		}

		if err := o.ValidateForConfirmation(products); err != nil {
			return err
		}
		if err := o.Confirm(); err != nil {
			return err
		}

		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		uow.Register(o)
		return nil
	})
}

// UpdateOrderStatus moves the order to the requested lifecycle status.
// Pending is never a valid target; the aggregate rejects every other
// illegal transition itself.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, req UpdateOrderStatusRequest) error {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return shared.NewValidationError("order", "status", err.Error())
	}

	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindOne(ctx, order.ByIDWithItems(orderID))
		if err != nil {
			return err
		}

		switch target {
		case order.StatusConfirmed:
			err = o.Confirm()
		case order.StatusProcessing:
			err = o.StartProcessing()
		case order.StatusShipped:
			err = o.Ship(time.Time{})
		case order.StatusDelivered:
			err = o.Deliver(time.Time{})
		case order.StatusCancelled:
			err = o.Cancel()
		default:
			err = shared.NewInvariantError("order",
				fmt.Sprintf("Invalid status transition to %s", target))
		}
		if err != nil {
			return err
		}

		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		uow.Register(o)
		return nil
	})
}

// CancelOrder cancels the order unless it is already delivered or
// cancelled.
func (s *Service) CancelOrder(ctx context.Context, orderID string) error {
	return s.UpdateOrderStatus(ctx, orderID, UpdateOrderStatusRequest{Status: string(order.StatusCancelled)})
}

// GetOrder returns a single order with its lines.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orders.FindOne(ctx, order.ByIDWithItems(orderID))
	if err != nil {
		return nil, err
	}
	return toResponse(o), nil
}

// GetOrderByNumber returns a single order by its human-readable number.
func (s *Service) GetOrderByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orders.FindOne(ctx, order.ByOrderNumber(orderNumber))
	if err != nil {
		return nil, err
	}
	return toResponse(o), nil
}

// GetCustomerOrders returns every order placed by the customer.
func (s *Service) GetCustomerOrders(ctx context.Context, customerID string) ([]*OrderResponse, error) {
	orders, err := s.orders.Find(ctx, order.ByCustomer(customerID))
	if err != nil {
		return nil, err
	}
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toResponse(o)
	}
	return responses, nil
}

// SearchOrders returns one page of order summaries matching the
// filters, newest first. Customer names are resolved for the page.
func (s *Service) SearchOrders(ctx context.Context, req SearchOrdersRequest) (*shared.PaginatedList[*OrderSummaryResponse], error) {
	if err := checkPaging(req.PageNumber, req.PageSize); err != nil {
		return nil, err
	}

	filter := order.Filter{
		CustomerID: req.CustomerID,
		From:       req.FromDate,
		To:         req.ToDate,
	}
	if req.Status != "" {
		status, err := order.ParseStatus(req.Status)
		if err != nil {
			return nil, shared.NewValidationError("order", "status", err.Error())
		}
		filter.Status = &status
	}

	spec, err := order.SearchPage(filter, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	totalCount, err := s.orders.Count(ctx, order.Filtered(filter))
	if err != nil {
		return nil, err
	}

	names := s.customerNames(ctx, orders)
	items := make([]*OrderSummaryResponse, len(orders))
	for i, o := range orders {
		items[i] = toSummary(o, names[o.CustomerID()])
	}

	page := shared.NewPaginatedList(items, totalCount, req.PageNumber, req.PageSize)
	return &page, nil
}

// customerNames resolves full names for the customers appearing on the
// page. A missing customer leaves its name empty rather than failing
// the listing.
func (s *Service) customerNames(ctx context.Context, orders []*order.Order) map[string]string {
	names := make(map[string]string)
	for _, o := range orders {
		if _, seen := names[o.CustomerID()]; seen {
			continue
		}
		c, err := s.customers.GetByID(ctx, o.CustomerID())
		if err != nil {
			names[o.CustomerID()] = ""
			continue
		}
		names[o.CustomerID()] = c.FullName()
	}
	return names
}

func validateCreateOrder(req CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return order.ErrEmptyOrder
	}
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return order.ErrInvalidQuantity
		}
		if _, dup := seen[item.ProductID]; dup {
			return shared.NewValidationError("order", "items",
				fmt.Sprintf("Duplicate product %s in order items", item.ProductID))
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}

func checkPaging(pageNumber, pageSize int) error {
	if pageNumber < 1 {
		return shared.NewValidationError("order", "page_number", "Page number must be at least 1")
	}
	if pageSize < 1 || pageSize > 100 {
		return shared.NewValidationError("order", "page_size", "Page size must be between 1 and 100")
	}
	return nil
}

func toResponse(o *order.Order) *OrderResponse {
	total := o.TotalAmount()
	items := make([]OrderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount().StringFixed(2),
			TotalPrice:  item.TotalPrice().Amount().StringFixed(2),
			Currency:    item.UnitPrice().Currency(),
		}
	}

	return &OrderResponse{
		ID:              o.ID(),
		OrderNumber:     o.OrderNumber(),
		CustomerID:      o.CustomerID(),
		Status:          o.Status().String(),
		OrderDate:       o.OrderDate(),
		ShippedDate:     o.ShippedDate(),
		DeliveredDate:   o.DeliveredDate(),
		ShippingAddress: o.ShippingAddress(),
		Notes:           o.Notes(),
		Items:           items,
		TotalAmount:     total.Amount().StringFixed(2),
		Currency:        total.Currency(),
		TotalItems:      o.TotalItems(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func toSummary(o *order.Order, customerName string) *OrderSummaryResponse {
	total := o.TotalAmount()
	return &OrderSummaryResponse{
		ID:           o.ID(),
		OrderNumber:  o.OrderNumber(),
		CustomerID:   o.CustomerID(),
		CustomerName: customerName,
		Status:       o.Status().String(),
		OrderDate:    o.OrderDate(),
		TotalAmount:  total.Amount().StringFixed(2),
		Currency:     total.Currency(),
		TotalItems:   o.TotalItems(),
	}
}
