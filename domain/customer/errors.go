package customer

import (
	"errors"

	"ordermanagement/domain/shared"
)

// Message texts are part of the external contract and keep their original
// casing; the API layer surfaces them verbatim.
var (
	// ErrCustomerNotFound matches via errors.Is for any customer lookup miss.
	ErrCustomerNotFound = errors.New("Customer not found")

	// ErrEmailExists rejects registration of an already-used address.
	ErrEmailExists = errors.New("A customer with this email already exists")

	ErrEmptyFirstName = errors.New("First name cannot be empty")
	ErrEmptyLastName  = errors.New("Last name cannot be empty")
	ErrEmptyEmail     = errors.New("Email cannot be empty")
	ErrInvalidEmail   = errors.New("Invalid email format")
)

// NewNotFoundError creates a customer-not-found error carrying the id and
// the creation stack. errors.Is(err, ErrCustomerNotFound) holds.
func NewNotFoundError(customerID string) error {
	return shared.NewDomainError(ErrCustomerNotFound, "customer", customerID, ErrCustomerNotFound.Error())
}

// NewEmailExistsError creates a duplicate-email conflict error.
func NewEmailExistsError(email string) error {
	return shared.NewDomainError(ErrEmailExists, "customer", email, ErrEmailExists.Error())
}
