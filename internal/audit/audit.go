// Package audit keeps the append-only deletion and update logs. Entries are
// snapshots taken at mutation time and are never deduplicated: a product that
// is soft-deleted twice gets two rows.
package audit

import (
	"time"

	"gorm.io/gorm"

	"store-service/internal/model"
)

// RecordDeletion appends a deletion-log entry snapshotting the product's
// pre-delete state.
func RecordDeletion(db *gorm.DB, p *model.Product, deletedOn time.Time) error {
	entry := model.ProductDeleteLog{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		DeletedOn: deletedOn,
	}
	return db.Create(&entry).Error
}

// RecordUpdate appends an update-log entry snapshotting the product's
// pre-update state.
func RecordUpdate(db *gorm.DB, p *model.Product, updatedOn time.Time) error {
	entry := model.ProductUpdateLog{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		UpdatedOn: updatedOn,
	}
	return db.Create(&entry).Error
}

// ListDeletions returns all deletion-log entries, newest first.
func ListDeletions(db *gorm.DB) ([]model.ProductDeleteLog, error) {
	var entries []model.ProductDeleteLog
	if err := db.Order("deleted_on desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListUpdates returns all update-log entries, newest first.
func ListUpdates(db *gorm.DB) ([]model.ProductUpdateLog, error) {
	var entries []model.ProductUpdateLog
	if err := db.Order("updated_on desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
