/*
Package customer holds the Customer aggregate and its Email value object.

Customer is a simple aggregate with no child entities. Orders reference
a customer through their own foreign key; the aggregate deliberately
carries no back-reference collection, the read side queries orders with
order.ByCustomer instead.
*/
package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer aggregate root. All fields are private; state changes go
// through behavior methods which maintain updatedAt themselves.
type Customer struct {
	id          string
	firstName   string
	lastName    string
	email       Email
	phoneNumber string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCustomer validates and creates a customer. First and last name must
// be non-blank; phoneNumber is optional.
func NewCustomer(firstName, lastName string, email Email, phoneNumber string) (*Customer, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, ErrEmptyFirstName
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, ErrEmptyLastName
	}

	now := time.Now().UTC()
	return &Customer{
		id:          uuid.New().String(),
		firstName:   firstName,
		lastName:    lastName,
		email:       email,
		phoneNumber: phoneNumber,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// UpdateContactInfo is the only mutation a customer supports.
func (c *Customer) UpdateContactInfo(firstName, lastName string, email Email, phoneNumber string) error {
	if strings.TrimSpace(firstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(lastName) == "" {
		return ErrEmptyLastName
	}

	c.firstName = firstName
	c.lastName = lastName
	c.email = email
	c.phoneNumber = phoneNumber
	c.updatedAt = time.Now().UTC()
	return nil
}

// FullName joins first and last name with a single space.
func (c *Customer) FullName() string { return c.firstName + " " + c.lastName }

func (c *Customer) ID() string           { return c.id }
func (c *Customer) FirstName() string    { return c.firstName }
func (c *Customer) LastName() string     { return c.lastName }
func (c *Customer) Email() Email         { return c.email }
func (c *Customer) PhoneNumber() string  { return c.phoneNumber }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

// ReconstructionDTO rebuilds a customer from storage. Repository use only.
type ReconstructionDTO struct {
	ID          string
	FirstName   string
	LastName    string
	Email       Email
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO reconstructs the aggregate without re-running creation
// validation. Repository use only.
func RebuildFromDTO(dto ReconstructionDTO) *Customer {
	return &Customer{
		id:          dto.ID,
		firstName:   dto.FirstName,
		lastName:    dto.LastName,
		email:       dto.Email,
		phoneNumber: dto.PhoneNumber,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}
