package order

import "time"

// CreateOrderRequest carries the order placement input.
type CreateOrderRequest struct {
	CustomerID      string             `json:"customer_id" binding:"required"`
	ShippingAddress string             `json:"shipping_address"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderStatusRequest carries the target lifecycle status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SearchOrdersRequest carries the paged listing input. Optional filters
// combine conjunctively; dates are RFC 3339.
type SearchOrdersRequest struct {
	CustomerID string     `form:"customer_id"`
	Status     string     `form:"status"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02T15:04:05Z07:00"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02T15:04:05Z07:00"`
	PageNumber int        `form:"page_number,default=1"`
	PageSize   int        `form:"page_size,default=10"`
}

// OrderResponse is the full order read model including its lines.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerID      string              `json:"customer_id"`
	Status          string              `json:"status"`
	OrderDate       time.Time           `json:"order_date"`
	ShippedDate     *time.Time          `json:"shipped_date,omitempty"`
	DeliveredDate   *time.Time          `json:"delivered_date,omitempty"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     string              `json:"total_amount"`
	Currency        string              `json:"currency"`
	TotalItems      int                 `json:"total_items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderItemResponse is one line of an order read model.
type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalPrice  string `json:"total_price"`
	Currency    string `json:"currency"`
}

// OrderSummaryResponse is the condensed listing read model.
type OrderSummaryResponse struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	Status       string    `json:"status"`
	OrderDate    time.Time `json:"order_date"`
	TotalAmount  string    `json:"total_amount"`
	Currency     string    `json:"currency"`
	TotalItems   int       `json:"total_items"`
}
