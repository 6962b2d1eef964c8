// Package order exposes the order lifecycle over HTTP.
package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordermanagement/api/response"
	orderapp "ordermanagement/application/order"
	"ordermanagement/pkg/errors"
)

// Controller handles order endpoints.
type Controller struct {
	orderService *orderapp.Service
}

// NewController creates an order controller.
func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes mounts the order routes on router.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.POST("", c.CreateOrder)
		orders.GET("", c.SearchOrders)
		orders.GET("/:id", c.GetOrder)
		orders.GET("/number/:number", c.GetOrderByNumber)
		orders.GET("/customer/:customerId", c.GetCustomerOrders)
		orders.POST("/:id/confirm", c.ConfirmOrder)
		orders.PUT("/:id/status", c.UpdateOrderStatus)
		orders.POST("/:id/cancel", c.CancelOrder)
	}
}

// CreateOrder places an order, reserving stock for every line.
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created successfully")
}

// GetOrder returns one order with its lines.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// GetOrderByNumber returns one order by its business number.
// GET /api/v1/orders/number/:number
func (c *Controller) GetOrderByNumber(ctx *gin.Context) {
	orderNumber := ctx.Param("number")
	if orderNumber == "" {
		response.HandleError(ctx, errors.BadRequest("order number is required"), "order number is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.GetOrderByNumber(ctx.Request.Context(), orderNumber)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// GetCustomerOrders returns all orders of one customer.
// GET /api/v1/orders/customer/:customerId
func (c *Controller) GetCustomerOrders(ctx *gin.Context) {
	customerID := ctx.Param("customerId")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.GetCustomerOrders(ctx.Request.Context(), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "customer orders retrieved successfully")
}

// ConfirmOrder moves a pending order to Confirmed after revalidating
// stock.
// POST /api/v1/orders/:id/confirm
func (c *Controller) ConfirmOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	if err := c.orderService.ConfirmOrder(ctx.Request.Context(), orderID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order confirmed successfully")
}

// UpdateOrderStatus moves the order to the requested lifecycle status.
// PUT /api/v1/orders/:id/status
func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var req orderapp.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.orderService.UpdateOrderStatus(ctx.Request.Context(), orderID, req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order status updated successfully")
}

// CancelOrder cancels an order that has not been delivered.
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	if err := c.orderService.CancelOrder(ctx.Request.Context(), orderID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order cancelled successfully")
}

// SearchOrders returns a filtered page of order summaries.
// GET /api/v1/orders?customer_id=&status=&from_date=&to_date=
func (c *Controller) SearchOrders(ctx *gin.Context) {
	var req orderapp.SearchOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.orderService.SearchOrders(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Items, response.Pagination{
		Page:       page.PageNumber,
		PageSize:   page.PageSize,
		TotalItems: page.TotalCount,
		TotalPages: page.TotalPages,
	}, "orders retrieved successfully")
}
