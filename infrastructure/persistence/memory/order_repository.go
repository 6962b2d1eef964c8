package memory

import (
	"context"
	"time"

	"ordermanagement/domain/order"
	"ordermanagement/domain/shared"
)

type (
	orderRow   = *order.Order
	orderTable = table[*order.Order]
)

func newOrderTable() *orderTable {
	return newTable[*order.Order](cloneOrder, map[string]resolver[*order.Order]{
		order.FieldID:          func(o *order.Order) any { return o.ID() },
		order.FieldCustomerID:  func(o *order.Order) any { return o.CustomerID() },
		order.FieldStatus:      func(o *order.Order) any { return o.Status().String() },
		order.FieldOrderDate:   func(o *order.Order) any { return o.OrderDate() },
		order.FieldOrderNumber: func(o *order.Order) any { return o.OrderNumber() },
		order.FieldCreatedAt:   func(o *order.Order) any { return o.CreatedAt() },
	})
}

func cloneOrder(o *order.Order) *order.Order {
	items := o.Items()
	itemDTOs := make([]order.ItemReconstructionDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = order.ItemReconstructionDTO{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
		}
	}
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:              o.ID(),
		OrderNumber:     o.OrderNumber(),
		CustomerID:      o.CustomerID(),
		Status:          o.Status(),
		OrderDate:       o.OrderDate(),
		ShippedDate:     cloneTime(o.ShippedDate()),
		DeliveredDate:   cloneTime(o.DeliveredDate()),
		ShippingAddress: o.ShippingAddress(),
		Notes:           o.Notes(),
		Items:           itemDTOs,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	})
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// OrderRepository is the in-memory order store. Aggregates are stored
// whole, so include paths need no handling here.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository creates an order repository over the store.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	o, ok := r.store.orders.get(id)
	if !ok {
		return nil, order.NewNotFoundError(id)
	}
	return o, nil
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.orders.list(), nil
}

func (r *OrderRepository) Find(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.orders.query(spec)
}

func (r *OrderRepository) FindOne(ctx context.Context, spec shared.Specification[*order.Order]) (*order.Order, error) {
	orders, err := r.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, order.ErrOrderNotFound
	}
	return orders[0], nil
}

func (r *OrderRepository) Count(ctx context.Context, spec shared.Specification[*order.Order]) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.orders.count(spec)
}

func (r *OrderRepository) Exists(ctx context.Context, spec shared.Specification[*order.Order]) (bool, error) {
	count, err := r.Count(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add stores the order, enforcing order number uniqueness the way the
// SQL backend's unique index does.
func (r *OrderRepository) Add(ctx context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, row := range r.store.orders.rows {
		if row.OrderNumber() == o.OrderNumber() {
			return shared.NewConflictError("order", "order number already exists")
		}
	}
	r.store.orders.put(o)
	return nil
}

func (r *OrderRepository) AddRange(ctx context.Context, orders []*order.Order) error {
	for _, o := range orders {
		if err := r.Add(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders.get(o.ID()); !ok {
		return order.NewNotFoundError(o.ID())
	}
	r.store.orders.put(o)
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders.delete(o.ID())
	return nil
}

var _ order.Repository = (*OrderRepository)(nil)
