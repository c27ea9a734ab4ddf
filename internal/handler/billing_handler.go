package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"store-service/internal/billing"
	"store-service/internal/cart"
	"store-service/internal/inventory"
	"store-service/pkg/database"
	"store-service/pkg/logger"
	"store-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Carts holds every session's pending bill. Process-local on purpose; a
// restart drops them.
var Carts = cart.NewStore()

// AddToCartRequest defines the structure for cart add requests
type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
}

// sessionID scopes a cart to the caller. Clients that want several concurrent
// carts send X-Session-ID; otherwise the authenticated username is the scope.
func sessionID(c echo.Context) string {
	if sid := c.Request().Header.Get("X-Session-ID"); sid != "" {
		return sid
	}
	if username, ok := c.Get("username").(string); ok && username != "" {
		return username
	}
	return "default"
}

// GetCart returns the session's pending bill lines and their running total.
func GetCart(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("get")

	sid := sessionID(c)
	items := Carts.Items(sid)
	total := Carts.Total(sid)

	log.Info("Cart retrieved", zap.Int("items", len(items)), zap.Float64("total", total))
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
	})
}

// AddToCart snapshots the product's current name and price into a new
// quantity-1 line. Adding the same product twice yields two lines.
func AddToCart(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("add")

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	product, err := inventory.Get(database.GetDB(), req.ProductID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			log.Warn("Product not found for cart", zap.Uint("product_id", req.ProductID))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to get product", zap.Uint("product_id", req.ProductID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve product",
		})
	}

	sid := sessionID(c)
	item := Carts.AddItem(sid, product)

	log.Info("Item added to cart",
		zap.Uint("product_id", item.ProductID),
		zap.String("name", item.Name),
		zap.Float64("unit_price", item.UnitPrice))
	return c.JSON(http.StatusOK, echo.Map{
		"items": Carts.Items(sid),
		"total": Carts.Total(sid),
	})
}

// ClearCart discards the session's pending bill.
func ClearCart(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("clear")

	Carts.Clear(sessionID(c))

	log.Info("Cart cleared")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Cart cleared",
	})
}

// CommitBill commits the session's cart as one bill, debiting stock inside the
// same transaction, and clears the cart on success.
func CommitBill(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("commit")

	sid := sessionID(c)
	items := Carts.Items(sid)

	defer prometheus.TrackDBOperation("transaction")(time.Now())

	bill, err := billing.Commit(database.GetDB(), nil, items)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrEmptyBill):
			log.Warn("Commit attempted with empty cart")
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Cart is empty",
			})
		case errors.Is(err, billing.ErrInvalidItem):
			log.Warn("Commit attempted with invalid cart line", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		case errors.Is(err, inventory.ErrNotFound):
			log.Warn("Cart references a missing product", zap.Error(err))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Cart references a product that does not exist",
			})
		default:
			log.Error("Failed to commit bill", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to save bill",
			})
		}
	}

	Carts.Clear(sid)
	prometheus.RecordBillCommitted(bill.TotalAmount)

	// Refresh the stock gauge for the debited products. Advisory only.
	for _, line := range bill.Items {
		if product, err := inventory.Get(database.GetDB(), line.ProductID); err == nil {
			prometheus.UpdateProductInventory(
				strconv.FormatUint(uint64(product.ID), 10), product.Name, float64(product.Quantity))
		}
	}

	log.Info("Bill committed successfully",
		zap.Uint("bill_id", bill.ID),
		zap.String("receipt_no", bill.ReceiptNo),
		zap.Float64("total_amount", bill.TotalAmount),
		zap.Int("items", len(bill.Items)))
	return c.JSON(http.StatusCreated, echo.Map{
		"bill_id":      bill.ID,
		"receipt_no":   bill.ReceiptNo,
		"total_amount": bill.TotalAmount,
	})
}
