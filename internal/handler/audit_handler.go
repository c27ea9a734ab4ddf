package handler

import (
	"net/http"
	"time"

	"store-service/internal/audit"
	"store-service/pkg/database"
	"store-service/pkg/logger"
	"store-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListDeletedProducts returns the deletion log, newest first. The log is
// historical: entries stay even after the product is restored.
func ListDeletedProducts(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing deletion log")

	defer prometheus.TrackDBOperation("query")(time.Now())

	entries, err := audit.ListDeletions(database.GetDB())
	if err != nil {
		log.Error("Failed to retrieve deletion log", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve deletion log",
		})
	}

	log.Info("Deletion log retrieved successfully", zap.Int("count", len(entries)))
	return c.JSON(http.StatusOK, entries)
}

// ListProductUpdates returns the update log, newest first.
func ListProductUpdates(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing update log")

	defer prometheus.TrackDBOperation("query")(time.Now())

	entries, err := audit.ListUpdates(database.GetDB())
	if err != nil {
		log.Error("Failed to retrieve update log", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve update log",
		})
	}

	log.Info("Update log retrieved successfully", zap.Int("count", len(entries)))
	return c.JSON(http.StatusOK, entries)
}
