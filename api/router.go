// Package api wires the HTTP surface: middleware chain, route groups
// and controllers.
package api

import (
	"github.com/gin-gonic/gin"

	"ordermanagement/api/customer"
	"ordermanagement/api/health"
	"ordermanagement/api/middleware"
	"ordermanagement/api/order"
	"ordermanagement/api/product"
	"ordermanagement/config"
)

// Router owns the gin engine and the controllers mounted on it.
type Router struct {
	engine             *gin.Engine
	config             *config.Config
	healthController   *health.Controller
	customerController *customer.Controller
	productController  *product.Controller
	orderController    *order.Controller
}

// NewRouter builds the engine with the standard middleware chain.
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	customerController *customer.Controller,
	productController *product.Controller,
	orderController *order.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before
	// anything logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))

	return &Router{
		engine:             engine,
		config:             cfg,
		healthController:   healthController,
		customerController: customerController,
		productController:  productController,
		orderController:    orderController,
	}
}

// SetupRoutes mounts every controller under /api/v1.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.customerController.RegisterRoutes(apiGroup)
		r.productController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
