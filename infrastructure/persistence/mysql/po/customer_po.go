// Package po holds the persistence objects: plain structs mapped to
// tables, free of business logic. Aggregates are rebuilt from them
// through the domain reconstruction DTOs.
package po

import (
	"time"

	"ordermanagement/domain/customer"
)

// CustomerPO maps the customers table. The unique index on email backs
// the unique-email rule against concurrent registrations.
type CustomerPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	FirstName   string    `gorm:"size:100;not null"`
	LastName    string    `gorm:"size:100;not null"`
	Email       string    `gorm:"size:255;uniqueIndex;not null"`
	PhoneNumber string    `gorm:"size:32"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (CustomerPO) TableName() string {
	return "customers"
}

// FromCustomerDomain converts the aggregate to its persistence object.
func FromCustomerDomain(c *customer.Customer) *CustomerPO {
	return &CustomerPO{
		ID:          c.ID(),
		FirstName:   c.FirstName(),
		LastName:    c.LastName(),
		Email:       c.Email().Value(),
		PhoneNumber: c.PhoneNumber(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

// ToDomain rebuilds the aggregate from the persistence object.
func (p *CustomerPO) ToDomain() (*customer.Customer, error) {
	email, err := customer.NewEmail(p.Email)
	if err != nil {
		return nil, err
	}
	return customer.RebuildFromDTO(customer.ReconstructionDTO{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       email,
		PhoneNumber: p.PhoneNumber,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}), nil
}
