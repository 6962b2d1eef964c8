// Package customer exposes customer management over HTTP. Controllers
// parse and bind input, delegate to the application service and let
// the response package map errors.
package customer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordermanagement/api/response"
	customerapp "ordermanagement/application/customer"
	"ordermanagement/pkg/errors"
)

// Controller handles customer endpoints.
type Controller struct {
	customerService *customerapp.Service
}

// NewController creates a customer controller.
func NewController(customerService *customerapp.Service) *Controller {
	return &Controller{customerService: customerService}
}

// RegisterRoutes mounts the customer routes on router.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	customers := router.Group("/customers")
	{
		customers.POST("", c.CreateCustomer)
		customers.GET("", c.SearchCustomers)
		customers.GET("/:id", c.GetCustomer)
		customers.PUT("/:id", c.UpdateCustomer)
	}
}

// CreateCustomer registers a customer.
// POST /api/v1/customers
func (c *Controller) CreateCustomer(ctx *gin.Context) {
	var req customerapp.CreateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customer, err := c.customerService.CreateCustomer(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, customer, "customer created successfully")
}

// GetCustomer returns one customer by id.
// GET /api/v1/customers/:id
func (c *Controller) GetCustomer(ctx *gin.Context) {
	customerID := ctx.Param("id")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	customer, err := c.customerService.GetCustomer(ctx.Request.Context(), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, customer, "customer retrieved successfully")
}

// UpdateCustomer replaces a customer's contact information.
// PUT /api/v1/customers/:id
func (c *Controller) UpdateCustomer(ctx *gin.Context) {
	customerID := ctx.Param("id")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	var req customerapp.UpdateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	customer, err := c.customerService.UpdateCustomer(ctx.Request.Context(), customerID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, customer, "customer updated successfully")
}

// SearchCustomers returns a filtered page of customers.
// GET /api/v1/customers?search_term=&page_number=&page_size=
func (c *Controller) SearchCustomers(ctx *gin.Context) {
	var req customerapp.SearchCustomersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.customerService.SearchCustomers(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Items, response.Pagination{
		Page:       page.PageNumber,
		PageSize:   page.PageSize,
		TotalItems: page.TotalCount,
		TotalPages: page.TotalPages,
	}, "customers retrieved successfully")
}
