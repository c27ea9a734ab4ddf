package handler

import (
	"errors"
	"net/http"
	"time"

	"store-service/internal/inventory"
	"store-service/internal/model"
	"store-service/pkg/database"
	"store-service/pkg/logger"
	"store-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SupplierRequest defines the structure for supplier creation/update requests
type SupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// ListSuppliers retrieves all suppliers, newest first.
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("list")
	log.Info("Listing suppliers")

	defer prometheus.TrackDBOperation("query")(time.Now())

	var suppliers []model.Supplier
	result := database.GetDB().Order("id desc").Find(&suppliers)
	if result.Error != nil {
		log.Error("Failed to retrieve suppliers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve suppliers",
		})
	}

	log.Info("Suppliers retrieved successfully", zap.Int("count", len(suppliers)))
	return c.JSON(http.StatusOK, suppliers)
}

// GetSupplier retrieves a supplier by ID
func GetSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("get")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier ID",
		})
	}
	log.Info("Getting supplier by ID", zap.Uint("supplier_id", id))

	defer prometheus.TrackDBOperation("query")(time.Now())

	var supplier model.Supplier
	result := database.GetDB().First(&supplier, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Supplier not found", zap.Uint("supplier_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Supplier not found",
			})
		}
		log.Error("Failed to get supplier", zap.Uint("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve supplier",
		})
	}

	log.Info("Supplier retrieved successfully",
		zap.Uint("supplier_id", id),
		zap.String("supplier_name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// ListSupplierProducts retrieves the active products of one supplier.
func ListSupplierProducts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("list_products")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier ID",
		})
	}
	log.Info("Listing supplier products", zap.Uint("supplier_id", id))

	var supplier model.Supplier
	result := database.GetDB().First(&supplier, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Supplier not found", zap.Uint("supplier_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Supplier not found",
			})
		}
		log.Error("Failed to get supplier", zap.Uint("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve supplier",
		})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	products, err := inventory.ListActiveBySupplier(database.GetDB(), id)
	if err != nil {
		log.Error("Failed to list supplier products", zap.Uint("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Supplier products retrieved successfully",
		zap.Uint("supplier_id", id),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, echo.Map{
		"supplier": supplier,
		"products": products,
	})
}

// CreateSupplier creates a new supplier
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("create")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		log.Warn("Supplier name is required")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Supplier name is required",
		})
	}

	log.Info("Supplier creation request", zap.String("name", req.Name))

	supplier := model.Supplier{
		Name:      req.Name,
		Contact:   req.Contact,
		Address:   req.Address,
		DateAdded: time.Now().UTC(),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&supplier)
	if result.Error != nil {
		log.Error("Failed to create supplier", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create supplier",
		})
	}

	log.Info("Supplier created successfully",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier updates an existing supplier
func UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("update")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier ID",
		})
	}
	log.Info("Updating supplier", zap.Uint("supplier_id", id))

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var supplier model.Supplier
	result := database.GetDB().First(&supplier, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Warn("Supplier not found for update", zap.Uint("supplier_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Supplier not found",
			})
		}
		log.Error("Failed to get supplier", zap.Uint("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve supplier",
		})
	}

	supplier.Name = req.Name
	supplier.Contact = req.Contact
	supplier.Address = req.Address

	defer prometheus.TrackDBOperation("update")(time.Now())

	result = database.GetDB().Save(&supplier)
	if result.Error != nil {
		log.Error("Failed to update supplier", zap.Uint("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update supplier",
		})
	}

	log.Info("Supplier updated successfully",
		zap.Uint("supplier_id", id),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier row outright. Products keep their
// supplier_id; dangling references are tolerated by every reader.
func DeleteSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("delete")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier ID",
		})
	}
	log.Info("Deleting supplier", zap.Uint("supplier_id", id))

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := database.GetDB().Delete(&model.Supplier{}, id)
	if result.Error != nil {
		log.Error("Failed to delete supplier", zap.Uint("supplier_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete supplier",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Supplier not found for deletion", zap.Uint("supplier_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Supplier not found",
		})
	}

	log.Info("Supplier deleted successfully",
		zap.Uint("supplier_id", id),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Supplier deleted successfully",
	})
}
