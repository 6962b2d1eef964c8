// Package product exposes catalog management over HTTP.
package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordermanagement/api/response"
	productapp "ordermanagement/application/product"
	"ordermanagement/pkg/errors"
)

// Controller handles product endpoints.
type Controller struct {
	productService *productapp.Service
}

// NewController creates a product controller.
func NewController(productService *productapp.Service) *Controller {
	return &Controller{productService: productService}
}

// RegisterRoutes mounts the product routes on router.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("", c.CreateProduct)
		products.GET("", c.SearchProducts)
		products.GET("/:id", c.GetProduct)
		products.PUT("/:id/stock", c.UpdateStock)
		products.POST("/:id/activate", c.Activate)
		products.POST("/:id/deactivate", c.Deactivate)
	}
}

// CreateProduct adds a catalog entry.
// POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req productapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// GetProduct returns one product by id.
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	product, err := c.productService.GetProduct(ctx.Request.Context(), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// UpdateStock replaces the stock level.
// PUT /api/v1/products/:id/stock
func (c *Controller) UpdateStock(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	var req productapp.UpdateStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.UpdateStock(ctx.Request.Context(), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product stock updated successfully")
}

// Activate makes the product orderable.
// POST /api/v1/products/:id/activate
func (c *Controller) Activate(ctx *gin.Context) {
	c.setActive(ctx, true, "product activated successfully")
}

// Deactivate removes the product from sale without deleting it.
// POST /api/v1/products/:id/deactivate
func (c *Controller) Deactivate(ctx *gin.Context) {
	c.setActive(ctx, false, "product deactivated successfully")
}

func (c *Controller) setActive(ctx *gin.Context, active bool, message string) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	product, err := c.productService.SetActive(ctx.Request.Context(), productID, active)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, message)
}

// SearchProducts returns a filtered page of products.
// GET /api/v1/products?search_term=&category=&is_active=&min_price=&max_price=
func (c *Controller) SearchProducts(ctx *gin.Context) {
	var req productapp.SearchProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.productService.SearchProducts(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Items, response.Pagination{
		Page:       page.PageNumber,
		PageSize:   page.PageSize,
		TotalItems: page.TotalCount,
		TotalPages: page.TotalPages,
	}, "products retrieved successfully")
}
