package product

import (
	"errors"
	"fmt"

	"ordermanagement/domain/shared"
)

var (
	// ErrProductNotFound matches via errors.Is for any product lookup miss.
	ErrProductNotFound = errors.New("Product not found")

	ErrEmptyName     = errors.New("Product name cannot be empty")
	ErrNegativeStock = errors.New("Stock quantity cannot be negative")
)

// NewNotFoundError creates a product-not-found error naming the id, as in
// "Product with ID 42 not found".
func NewNotFoundError(productID string) error {
	return shared.NewDomainError(ErrProductNotFound, "product", productID,
		fmt.Sprintf("Product with ID %s not found", productID))
}
