package product

import "time"

// CreateProductRequest carries the catalog-entry input. Price is a
// decimal string to keep exactness across the wire.
type CreateProductRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Price         string `json:"price" binding:"required"`
	Currency      string `json:"currency" binding:"required"`
	StockQuantity int    `json:"stock_quantity" binding:"min=0"`
}

// UpdateStockRequest carries a stock-level replacement.
type UpdateStockRequest struct {
	StockQuantity int `json:"stock_quantity"`
}

// SearchProductsRequest carries the paged listing input. Optional
// filters combine conjunctively.
type SearchProductsRequest struct {
	SearchTerm string `form:"search_term"`
	Category   string `form:"category"`
	IsActive   *bool  `form:"is_active"`
	MinPrice   string `form:"min_price"`
	MaxPrice   string `form:"max_price"`
	PageNumber int    `form:"page_number,default=1"`
	PageSize   int    `form:"page_size,default=10"`
}

// ProductResponse is the read model returned to callers.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Price         string    `json:"price"`
	Currency      string    `json:"currency"`
	StockQuantity int       `json:"stock_quantity"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
