/*
Package customer orchestrates customer use cases: registration with the
unique-email rule, contact updates and the paged customer listing.

Services receive plain request DTOs, run the domain behavior inside a
unit of work and map aggregates back to response DTOs. They never reach
into storage directly; repositories and the unit of work are ports.
*/
package customer

import (
	"context"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/shared"
)

// Service coordinates customer business processes.
type Service struct {
	customers  customer.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewService creates a customer application service.
func NewService(customers customer.Repository, uowFactory shared.UnitOfWorkFactory) *Service {
	return &Service{customers: customers, uowFactory: uowFactory}
}

// CreateCustomer registers a new customer. The email must not be in use.
func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	email, err := customer.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}

	taken, err := s.customers.Exists(ctx, customer.ByEmail(email.Value()))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, customer.NewEmailExistsError(email.Value())
	}

	c, err := customer.NewCustomer(req.FirstName, req.LastName, email, req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		return s.customers.Add(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(c), nil
}

// UpdateCustomer replaces the customer's contact information. Changing
// the email to one held by another customer is rejected.
func (s *Service) UpdateCustomer(ctx context.Context, customerID string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	email, err := customer.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}

	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !c.Email().Equals(email) {
		taken, err := s.customers.Exists(ctx, customer.ByEmail(email.Value()))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, customer.NewEmailExistsError(email.Value())
		}
	}

	if err := c.UpdateContactInfo(req.FirstName, req.LastName, email, req.PhoneNumber); err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		return s.customers.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(c), nil
}

// GetCustomer returns a single customer by id.
func (s *Service) GetCustomer(ctx context.Context, customerID string) (*CustomerResponse, error) {
	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// SearchCustomers returns one page of customers matching the optional
// search term, newest first.
func (s *Service) SearchCustomers(ctx context.Context, req SearchCustomersRequest) (*shared.PaginatedList[*CustomerResponse], error) {
	if err := checkPaging(req.PageNumber, req.PageSize); err != nil {
		return nil, err
	}

	spec, err := customer.SearchPage(req.SearchTerm, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, err
	}

	customers, err := s.customers.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	totalCount, err := s.customers.Count(ctx, customer.Search(req.SearchTerm))
	if err != nil {
		return nil, err
	}

	items := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		items[i] = toResponse(c)
	}

	page := shared.NewPaginatedList(items, totalCount, req.PageNumber, req.PageSize)
	return &page, nil
}

func checkPaging(pageNumber, pageSize int) error {
	if pageNumber < 1 {
		return shared.NewValidationError("customer", "page_number", "Page number must be at least 1")
	}
	if pageSize < 1 || pageSize > 100 {
		return shared.NewValidationError("customer", "page_size", "Page size must be between 1 and 100")
	}
	return nil
}

func toResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID(),
		FirstName:   c.FirstName(),
		LastName:    c.LastName(),
		FullName:    c.FullName(),
		Email:       c.Email().Value(),
		PhoneNumber: c.PhoneNumber(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}
