package handler

import (
	"errors"
	"net/http"
	"time"

	"store-service/internal/inventory"
	"store-service/pkg/database"
	"store-service/pkg/logger"
	"store-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category creation requests
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListCategories returns every category with its count of active products and
// their summed quantity. Categories with no active products still appear with
// zeros.
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("list")
	log.Info("Listing categories with product totals")

	defer prometheus.TrackDBOperation("query")(time.Now())

	totals, err := inventory.ListCategoryTotals(database.GetDB())
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	log.Info("Categories retrieved successfully", zap.Int("count", len(totals)))
	return c.JSON(http.StatusOK, totals)
}

// CreateCategory adds a new category. Duplicate names are not rejected here.
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("create")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	log.Info("Category creation request", zap.String("name", req.Name))

	defer prometheus.TrackDBOperation("insert")(time.Now())

	category, err := inventory.CreateCategory(database.GetDB(), req.Name)
	if err != nil {
		if errors.Is(err, inventory.ErrInvalid) {
			log.Warn("Category failed validation", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create category",
		})
	}

	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}
