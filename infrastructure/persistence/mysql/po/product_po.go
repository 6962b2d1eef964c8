package po

import (
	"time"

	"github.com/shopspring/decimal"

	"ordermanagement/domain/product"
	"ordermanagement/domain/shared"
)

// ProductPO maps the products table. The price is split into an exact
// decimal amount and its currency code.
type ProductPO struct {
	ID            string          `gorm:"primaryKey;size:64"`
	Name          string          `gorm:"size:255;not null;index"`
	Description   string          `gorm:"type:text"`
	Category      string          `gorm:"size:100;index"`
	PriceAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PriceCurrency string          `gorm:"size:3;not null"`
	StockQuantity int             `gorm:"not null"`
	IsActive      bool            `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ProductPO) TableName() string {
	return "products"
}

// FromProductDomain converts the aggregate to its persistence object.
func FromProductDomain(p *product.Product) *ProductPO {
	return &ProductPO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Category:      p.Category(),
		PriceAmount:   p.Price().Amount(),
		PriceCurrency: p.Price().Currency(),
		StockQuantity: p.StockQuantity(),
		IsActive:      p.IsActive(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// ToDomain rebuilds the aggregate from the persistence object.
func (p *ProductPO) ToDomain() (*product.Product, error) {
	price, err := shared.NewMoney(p.PriceAmount, p.PriceCurrency)
	if err != nil {
		return nil, err
	}
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         price,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}), nil
}
