package order

import (
	"errors"
	"fmt"

	"ordermanagement/domain/shared"
)

// Message texts are part of the external contract; the orchestration
// layer surfaces them verbatim as failure messages.
var (
	// ErrOrderNotFound matches via errors.Is for any order lookup miss.
	ErrOrderNotFound = errors.New("Order not found")

	// ErrInvalidStateTransition classifies every illegal status change;
	// the concrete error message names the operation and current status.
	ErrInvalidStateTransition = errors.New("invalid order state transition")

	// ErrInsufficientStock classifies stock shortages; the concrete error
	// message names the product.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNotModifiable rejects item mutation once an order left Pending.
	ErrNotModifiable = errors.New("Cannot modify confirmed order")

	ErrEmptyOrder              = errors.New("Order must have at least one item")
	ErrItemNotFound            = errors.New("Order item not found")
	ErrInvalidQuantity         = errors.New("Quantity must be positive")
	ErrShippingAddressRequired = errors.New("Shipping address is required for confirmation")
	ErrNilCustomer             = errors.New("Order requires a customer")
	ErrNilProduct              = errors.New("Order item requires a product")
	ErrMixedCurrencies         = errors.New("Order items must share a single currency")
)

// NewNotFoundError creates an order-not-found error carrying the id.
func NewNotFoundError(orderID string) error {
	return shared.NewDomainError(ErrOrderNotFound, "order", orderID, ErrOrderNotFound.Error())
}

// NewInvalidStateError creates an illegal-transition error, e.g.
// "Cannot confirm order with status Confirmed".
func NewInvalidStateError(operation string, current Status) error {
	return shared.NewDomainError(ErrInvalidStateTransition, "order", "",
		fmt.Sprintf("Cannot %s order with status %s", operation, current))
}

// NewInsufficientStockError creates a stock-shortage error naming the
// product, e.g. "Insufficient stock for product Widget".
func NewInsufficientStockError(productName string) error {
	return shared.NewDomainError(ErrInsufficientStock, "order", productName,
		fmt.Sprintf("Insufficient stock for product %s", productName))
}
