// Package product holds the Product aggregate: catalog data plus the
// stock bookkeeping orders reserve against.
package product

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ordermanagement/domain/shared"
)

// Product aggregate root. Stock is decremented at order-creation time;
// IsInStock is the single place the availability rule lives.
type Product struct {
	id            string
	name          string
	description   string
	category      string
	price         shared.Money
	stockQuantity int
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

// NewProduct validates and creates a product. Description and category
// are optional; products start active.
func NewProduct(name string, price shared.Money, stockQuantity int, description, category string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if stockQuantity < 0 {
		return nil, ErrNegativeStock
	}

	now := time.Now().UTC()
	return &Product{
		id:            uuid.New().String(),
		name:          name,
		description:   description,
		category:      category,
		price:         price,
		stockQuantity: stockQuantity,
		isActive:      true,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// IsInStock reports whether the product is active and holds at least the
// requested quantity.
func (p *Product) IsInStock(requestedQuantity int) bool {
	return p.isActive && p.stockQuantity >= requestedQuantity
}

// UpdateStock replaces the stock level. Negative levels are rejected.
func (p *Product) UpdateStock(newQuantity int) error {
	if newQuantity < 0 {
		return ErrNegativeStock
	}
	p.stockQuantity = newQuantity
	p.updatedAt = time.Now().UTC()
	return nil
}

// UpdatePrice replaces the price. Existing order lines keep the price
// they snapshotted at add time.
func (p *Product) UpdatePrice(newPrice shared.Money) {
	p.price = newPrice
	p.updatedAt = time.Now().UTC()
}

// Activate makes the product orderable again.
func (p *Product) Activate() {
	p.isActive = true
	p.updatedAt = time.Now().UTC()
}

// Deactivate removes the product from availability without deleting it;
// IsInStock is false for inactive products regardless of stock.
func (p *Product) Deactivate() {
	p.isActive = false
	p.updatedAt = time.Now().UTC()
}

func (p *Product) ID() string           { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Category() string     { return p.category }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) StockQuantity() int   { return p.stockQuantity }
func (p *Product) IsActive() bool       { return p.isActive }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// ReconstructionDTO rebuilds a product from storage. Repository use only.
type ReconstructionDTO struct {
	ID            string
	Name          string
	Description   string
	Category      string
	Price         shared.Money
	StockQuantity int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO reconstructs the aggregate without re-running creation
// validation. Repository use only.
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:            dto.ID,
		name:          dto.Name,
		description:   dto.Description,
		category:      dto.Category,
		price:         dto.Price,
		stockQuantity: dto.StockQuantity,
		isActive:      dto.IsActive,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}
