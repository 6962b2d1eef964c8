package order

import (
	"time"

	"ordermanagement/domain/shared"
)

// Field keys understood by the specification evaluators for orders.
const (
	FieldID          = "id"
	FieldCustomerID  = "customer_id"
	FieldStatus      = "status"
	FieldOrderDate   = "order_date"
	FieldOrderNumber = "order_number"
	FieldCreatedAt   = "created_at"
)

// Include keys for eager loading order relations.
const (
	IncludeItems        = "OrderItems"
	IncludeItemProducts = "OrderItems.Product"
	IncludeCustomer     = "Customer"
)

// WithItems eager-loads the order lines and their product snapshots
// plus the owning customer. Every write-side load goes through this:
// the aggregate is only consistent with its items attached.
func WithItems() shared.Specification[*Order] {
	return shared.NewSpecification[*Order]().
		Include(IncludeItems).
		Include(IncludeItemProducts).
		Include(IncludeCustomer)
}

// ByIDWithItems matches a single order by id with its lines loaded.
func ByIDWithItems(orderID string) shared.Specification[*Order] {
	return WithItems().Where(FieldID, shared.OpEqual, orderID)
}

// ByCustomer matches all orders placed by the customer.
func ByCustomer(customerID string) shared.Specification[*Order] {
	return WithItems().Where(FieldCustomerID, shared.OpEqual, customerID)
}

// ByStatus matches all orders in the given status.
func ByStatus(status Status) shared.Specification[*Order] {
	return WithItems().Where(FieldStatus, shared.OpEqual, string(status))
}

// ByOrderNumber matches the order carrying the human-readable number.
func ByOrderNumber(orderNumber string) shared.Specification[*Order] {
	return WithItems().Where(FieldOrderNumber, shared.OpEqual, orderNumber)
}

// DateRange matches orders placed in [from, to], inclusive on both ends.
func DateRange(from, to time.Time) shared.Specification[*Order] {
	return WithItems().
		Where(FieldOrderDate, shared.OpGreaterOrEqual, from).
		Where(FieldOrderDate, shared.OpLessOrEqual, to)
}

// Filter describes the optional order listing filters; zero values mean
// "no filter" and combine conjunctively.
type Filter struct {
	CustomerID string
	Status     *Status
	From       *time.Time
	To         *time.Time
}

// Filtered applies the filters conjunctively, without ordering or
// paging. Count queries use it directly.
func Filtered(f Filter) shared.Specification[*Order] {
	spec := WithItems()
	if f.CustomerID != "" {
		spec = spec.Where(FieldCustomerID, shared.OpEqual, f.CustomerID)
	}
	if f.Status != nil {
		spec = spec.Where(FieldStatus, shared.OpEqual, string(*f.Status))
	}
	if f.From != nil {
		spec = spec.Where(FieldOrderDate, shared.OpGreaterOrEqual, *f.From)
	}
	if f.To != nil {
		spec = spec.Where(FieldOrderDate, shared.OpLessOrEqual, *f.To)
	}
	return spec
}

// SearchPage is the read-side listing: filters applied conjunctively,
// newest orders first, paged. pageNumber and pageSize are validated by
// the caller.
func SearchPage(f Filter, pageNumber, pageSize int) (shared.Specification[*Order], error) {
	return Filtered(f).
		OrderByDescending(FieldOrderDate).
		Paginate((pageNumber-1)*pageSize, pageSize)
}
