package memory

import (
	"context"

	"ordermanagement/domain/customer"
	"ordermanagement/domain/shared"
)

type (
	customerRow   = *customer.Customer
	customerTable = table[*customer.Customer]
)

func newCustomerTable() *customerTable {
	return newTable[*customer.Customer](cloneCustomer, map[string]resolver[*customer.Customer]{
		customer.FieldFirstName: func(c *customer.Customer) any { return c.FirstName() },
		customer.FieldLastName:  func(c *customer.Customer) any { return c.LastName() },
		customer.FieldEmail:     func(c *customer.Customer) any { return c.Email().Value() },
		customer.FieldCreatedAt: func(c *customer.Customer) any { return c.CreatedAt() },
	})
}

func cloneCustomer(c *customer.Customer) *customer.Customer {
	return customer.RebuildFromDTO(customer.ReconstructionDTO{
		ID:          c.ID(),
		FirstName:   c.FirstName(),
		LastName:    c.LastName(),
		Email:       c.Email(),
		PhoneNumber: c.PhoneNumber(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	})
}

// CustomerRepository is the in-memory customer store.
type CustomerRepository struct {
	store *Store
}

// NewCustomerRepository creates a customer repository over the store.
func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.customers.get(id)
	if !ok {
		return nil, customer.NewNotFoundError(id)
	}
	return c, nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.customers.list(), nil
}

func (r *CustomerRepository) Find(ctx context.Context, spec shared.Specification[*customer.Customer]) ([]*customer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.customers.query(spec)
}

func (r *CustomerRepository) FindOne(ctx context.Context, spec shared.Specification[*customer.Customer]) (*customer.Customer, error) {
	customers, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, customer.ErrCustomerNotFound
	}
	return customers[0], nil
}

func (r *CustomerRepository) Count(ctx context.Context, spec shared.Specification[*customer.Customer]) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.customers.count(spec)
}

func (r *CustomerRepository) Exists(ctx context.Context, spec shared.Specification[*customer.Customer]) (bool, error) {
	count, err := r.Count(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add stores the customer, enforcing the unique email the way the SQL
// backend's unique index does.
func (r *CustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.emailTakenLocked(c.Email().Value(), c.ID()) {
		return customer.NewEmailExistsError(c.Email().Value())
	}
	r.store.customers.put(c)
	return nil
}

func (r *CustomerRepository) AddRange(ctx context.Context, customers []*customer.Customer) error {
	for _, c := range customers {
		if err := r.Add(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.customers.get(c.ID()); !ok {
		return customer.NewNotFoundError(c.ID())
	}
	if r.emailTakenLocked(c.Email().Value(), c.ID()) {
		return customer.NewEmailExistsError(c.Email().Value())
	}
	r.store.customers.put(c)
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, c *customer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.customers.delete(c.ID())
	return nil
}

func (r *CustomerRepository) emailTakenLocked(email, exceptID string) bool {
	for _, row := range r.store.customers.rows {
		if row.ID() != exceptID && row.Email().Value() == email {
			return true
		}
	}
	return false
}

var _ customer.Repository = (*CustomerRepository)(nil)
