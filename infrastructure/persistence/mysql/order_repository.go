package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ordermanagement/domain/order"
	"ordermanagement/domain/shared"
	"ordermanagement/infrastructure/persistence"
	"ordermanagement/infrastructure/persistence/mysql/po"
)

var orderColumns = columnMap{
	order.FieldID:          "id",
	order.FieldCustomerID:  "customer_id",
	order.FieldStatus:      "status",
	order.FieldOrderDate:   "order_date",
	order.FieldOrderNumber: "order_number",
	order.FieldCreatedAt:   "created_at",
}

// Product snapshots live on the items and customers are a separate
// aggregate, so only the item include maps to a preload.
var orderIncludes = includeMap{
	order.IncludeItems:        "OrderItems",
	order.IncludeItemProducts: "",
	order.IncludeCustomer:     "",
}

// OrderRepository is the MySQL order store. It persists the whole
// aggregate: order rows plus their item rows, replaced wholesale on
// update.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var orderPO po.OrderPO
	if err := r.getDB(ctx).Preload("OrderItems").First(&orderPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewNotFoundError(id)
		}
		return nil, err
	}
	return orderPO.ToDomain(orderPO.OrderItems)
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var orderPOs []po.OrderPO
	if err := r.getDB(ctx).Preload("OrderItems").Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(orderPOs)
}

func (r *OrderRepository) Find(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	db, err := applySpec(r.getDB(ctx), spec, orderColumns, orderIncludes)
	if err != nil {
		return nil, err
	}
	var orderPOs []po.OrderPO
	if err := db.Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.toDomainList(orderPOs)
}

func (r *OrderRepository) FindOne(ctx context.Context, spec shared.Specification[*order.Order]) (*order.Order, error) {
	db, err := applySpec(r.getDB(ctx), spec, orderColumns, orderIncludes)
	if err != nil {
		return nil, err
	}
	var orderPO po.OrderPO
	if err := db.First(&orderPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return orderPO.ToDomain(orderPO.OrderItems)
}

func (r *OrderRepository) Count(ctx context.Context, spec shared.Specification[*order.Order]) (int64, error) {
	db, err := applyCriteria(r.getDB(ctx).Model(&po.OrderPO{}), spec, orderColumns)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrderRepository) Exists(ctx context.Context, spec shared.Specification[*order.Order]) (bool, error) {
	count, err := r.Count(ctx, spec)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OrderRepository) Add(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)
	db := r.getDB(ctx)
	if err := db.Omit("OrderItems").Create(orderPO).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("order", "order number already exists")
		}
		return err
	}
	if len(itemPOs) > 0 {
		if err := db.Create(&itemPOs).Error; err != nil {
			return err
		}
	}
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

// Update saves the order row and replaces its item rows. Delete then
// insert keeps removed lines from lingering.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)
	db := r.getDB(ctx)

	if err := db.Omit("OrderItems").Save(orderPO).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := db.Create(&itemPOs).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, o *order.Order) error {
	db := r.getDB(ctx)
	if err := db.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	return db.Delete(&po.OrderPO{}, "id = ?", o.ID()).Error
}

func (r *OrderRepository) toDomainList(orderPOs []po.OrderPO) ([]*order.Order, error) {
	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		o, err := orderPOs[i].ToDomain(orderPOs[i].OrderItems)
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}
	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)
