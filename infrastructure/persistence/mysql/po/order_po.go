package po

import (
	"time"

	"github.com/shopspring/decimal"

	"ordermanagement/domain/order"
	"ordermanagement/domain/shared"
)

// OrderPO maps the orders table. The unique index on order_number is
// the backstop for the generate-and-check allocation; order items are
// an owned association the evaluator eager-loads on request.
type OrderPO struct {
	ID              string     `gorm:"primaryKey;size:64"`
	OrderNumber     string     `gorm:"size:32;uniqueIndex;not null"`
	CustomerID      string     `gorm:"size:64;index;not null"`
	Status          string     `gorm:"size:20;not null;index"`
	OrderDate       time.Time  `gorm:"not null;index"`
	ShippedDate     *time.Time `gorm:""`
	DeliveredDate   *time.Time `gorm:""`
	ShippingAddress string     `gorm:"type:text"`
	Notes           string     `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	OrderItems []OrderItemPO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO maps the order_items table. The unit price is the
// snapshot taken at add time, not a product reference.
type OrderItemPO struct {
	ID                string          `gorm:"primaryKey;size:64"`
	OrderID           string          `gorm:"size:64;index;not null"`
	ProductID         string          `gorm:"size:64;not null"`
	ProductName       string          `gorm:"size:255;not null"`
	Quantity          int             `gorm:"not null"`
	UnitPriceAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitPriceCurrency string          `gorm:"size:3;not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts the aggregate to its persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:                item.ID(),
			OrderID:           o.ID(),
			ProductID:         item.ProductID(),
			ProductName:       item.ProductName(),
			Quantity:          item.Quantity(),
			UnitPriceAmount:   item.UnitPrice().Amount(),
			UnitPriceCurrency: item.UnitPrice().Currency(),
		}
	}

	orderPO := &OrderPO{
		ID:              o.ID(),
		OrderNumber:     o.OrderNumber(),
		CustomerID:      o.CustomerID(),
		Status:          o.Status().String(),
		OrderDate:       o.OrderDate(),
		ShippedDate:     o.ShippedDate(),
		DeliveredDate:   o.DeliveredDate(),
		ShippingAddress: o.ShippingAddress(),
		Notes:           o.Notes(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
	return orderPO, itemPOs
}

// ToDomain rebuilds the aggregate from the persistence objects.
func (p *OrderPO) ToDomain(itemPOs []OrderItemPO) (*order.Order, error) {
	items := make([]order.ItemReconstructionDTO, len(itemPOs))
	for i, itemPO := range itemPOs {
		unitPrice, err := shared.NewMoney(itemPO.UnitPriceAmount, itemPO.UnitPriceCurrency)
		if err != nil {
			return nil, err
		}
		items[i] = order.ItemReconstructionDTO{
			ID:          itemPO.ID,
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			Quantity:    itemPO.Quantity,
			UnitPrice:   unitPrice,
		}
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:              p.ID,
		OrderNumber:     p.OrderNumber,
		CustomerID:      p.CustomerID,
		Status:          order.Status(p.Status),
		OrderDate:       p.OrderDate,
		ShippedDate:     p.ShippedDate,
		DeliveredDate:   p.DeliveredDate,
		ShippingAddress: p.ShippingAddress,
		Notes:           p.Notes,
		Items:           items,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}), nil
}
