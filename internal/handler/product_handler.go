package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"store-service/internal/inventory"
	"store-service/internal/model"
	"store-service/pkg/database"
	"store-service/pkg/logger"
	"store-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests.
// ImageURL is an opaque reference produced by the upload collaborator; the
// service stores and returns it without inspecting it.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Colour      string  `json:"colour"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	CategoryID  *uint   `json:"category_id"`
	SupplierID  *uint   `json:"supplier_id"`
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// ListProducts retrieves all active products, optionally filtered by the q
// query parameter (case-insensitive substring of name or brand).
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("list")

	search := c.QueryParam("q")
	log.Info("Listing active products", zap.String("q", search))

	defer prometheus.TrackDBOperation("query")(time.Now())

	products, err := inventory.ListActive(database.GetDB(), search)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a single product by ID. Soft-deleted products resolve
// too, so historical bills and the deletion log can display them.
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("get")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product ID",
		})
	}
	log.Info("Getting product by ID", zap.Uint("product_id", id))

	defer prometheus.TrackDBOperation("query")(time.Now())

	product, err := inventory.Get(database.GetDB(), id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			log.Warn("Product not found", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve product",
		})
	}

	log.Info("Product retrieved successfully",
		zap.Uint("product_id", id),
		zap.String("product_name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	log.Info("Product creation request",
		zap.String("name", req.Name),
		zap.Float64("price", req.Price),
		zap.Int("quantity", req.Quantity))

	product := model.Product{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Colour:      req.Colour,
		Brand:       req.Brand,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := inventory.Create(database.GetDB(), &product); err != nil {
		if errors.Is(err, inventory.ErrInvalid) {
			log.Warn("Product failed validation", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}
		log.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10), product.Name, float64(product.Quantity))

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces the mutable fields of an existing product. The
// pre-update snapshot lands in the update log as a side effect.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("update")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product ID",
		})
	}
	log.Info("Updating product", zap.Uint("product_id", id))

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	fields := model.Product{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Colour:      req.Colour,
		Brand:       req.Brand,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	product, err := inventory.Update(database.GetDB(), id, &fields)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound):
			log.Warn("Product not found for update", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		case errors.Is(err, inventory.ErrInvalid):
			log.Warn("Product failed validation", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		default:
			log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to update product",
			})
		}
	}

	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10), product.Name, float64(product.Quantity))

	log.Info("Product updated successfully",
		zap.Uint("product_id", id),
		zap.String("name", product.Name),
		zap.Float64("new_price", product.Price))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes a product. The row stays in place with its
// tombstone set, and a snapshot is appended to the deletion log.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("delete")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product ID",
		})
	}
	log.Info("Soft-deleting product", zap.Uint("product_id", id))

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := inventory.SoftDelete(database.GetDB(), id); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			log.Warn("Product not found for deletion", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product moved to deleted products",
	})
}

// RestoreProduct clears a product's tombstone and returns it to the active
// catalog. Deletion log entries from earlier deletes are left untouched.
func RestoreProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("restore")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product ID",
		})
	}
	log.Info("Restoring product", zap.Uint("product_id", id))

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := inventory.Restore(database.GetDB(), id); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			log.Warn("Product not found for restore", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to restore product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to restore product",
		})
	}

	log.Info("Product restored successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product restored successfully",
	})
}
