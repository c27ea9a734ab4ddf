package handler

import (
	"net/http"

	mid "store-service/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the echo instance with every route and middleware wired.
// Shared between main and the handler tests so both exercise the same stack.
func NewRouter() *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Login gate
	e.POST("/api/login", Login)

	// Everything below requires the admin JWT
	api := e.Group("/api", mid.AuthMiddleware)

	// Product routes
	api.GET("/products", ListProducts)
	api.GET("/products/deleted", ListDeletedProducts)
	api.GET("/products/updates", ListProductUpdates)
	api.GET("/products/:id", GetProduct)
	api.POST("/products", CreateProduct)
	api.PUT("/products/:id", UpdateProduct)
	api.DELETE("/products/:id", DeleteProduct)
	api.POST("/products/:id/restore", RestoreProduct)

	// Category routes
	api.GET("/categories", ListCategories)
	api.POST("/categories", CreateCategory)

	// Supplier routes
	api.GET("/suppliers", ListSuppliers)
	api.GET("/suppliers/:id", GetSupplier)
	api.GET("/suppliers/:id/products", ListSupplierProducts)
	api.POST("/suppliers", CreateSupplier)
	api.PUT("/suppliers/:id", UpdateSupplier)
	api.DELETE("/suppliers/:id", DeleteSupplier)

	// Cart and billing routes
	api.GET("/cart", GetCart)
	api.POST("/cart/items", AddToCart)
	api.DELETE("/cart", ClearCart)
	api.POST("/bills", CommitBill)

	return e
}
