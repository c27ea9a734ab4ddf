// Package inventory is the catalog store: product CRUD, the soft-delete
// tombstone lifecycle, the floor-at-zero stock decrement used by billing, and
// the per-category aggregate view.
package inventory

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-service/internal/audit"
	"store-service/internal/model"
	"store-service/pkg/logger"
	"store-service/prometheus"
)

var (
	// ErrNotFound reports that a product id does not resolve to a row.
	ErrNotFound = errors.New("product not found")
	// ErrInvalid reports a product failing field validation.
	ErrInvalid = errors.New("invalid product fields")
)

// ListActive returns all non-deleted products. A non-empty search term matches
// case-insensitively as a substring of name or brand. Ordered by id so the
// listing is stable across calls.
func ListActive(db *gorm.DB, search string) ([]model.Product, error) {
	query := db.Where("is_deleted = ?", false)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("lower(name) LIKE lower(?) OR lower(brand) LIKE lower(?)", pattern, pattern)
	}

	var products []model.Product
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListActiveBySupplier returns the non-deleted products of one supplier.
func ListActiveBySupplier(db *gorm.DB, supplierID uint) ([]model.Product, error) {
	var products []model.Product
	err := db.Where("supplier_id = ? AND is_deleted = ?", supplierID, false).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns a product by id regardless of its deleted state, so historical
// bill lines and deletion-log entries stay resolvable.
func Get(db *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Create validates and inserts a new product. Category and supplier references
// are optional and deliberately not existence-checked.
func Create(db *gorm.DB, p *model.Product) error {
	if p.Price < 0 || p.Quantity < 0 {
		return fmt.Errorf("%w: price and quantity must be non-negative", ErrInvalid)
	}
	p.IsDeleted = false
	return db.Create(p).Error
}

// Update replaces the mutable fields of a product. The tombstone flag is never
// touched here. A pre-update snapshot goes to the update log as an advisory
// side effect: a failed log write is logged and swallowed, the edit stands.
func Update(db *gorm.DB, id uint, fields *model.Product) (*model.Product, error) {
	if fields.Price < 0 || fields.Quantity < 0 {
		return nil, fmt.Errorf("%w: price and quantity must be non-negative", ErrInvalid)
	}

	product, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	snapshot := *product

	product.Name = fields.Name
	product.Price = fields.Price
	product.Quantity = fields.Quantity
	product.Colour = fields.Colour
	product.Brand = fields.Brand
	product.Description = fields.Description
	product.ImageURL = fields.ImageURL
	product.CategoryID = fields.CategoryID
	product.SupplierID = fields.SupplierID

	if err := db.Save(product).Error; err != nil {
		return nil, err
	}

	if err := audit.RecordUpdate(db, &snapshot, time.Now().UTC()); err != nil {
		logger.GetLogger().Warn("update log write failed",
			zap.Uint("product_id", id),
			zap.Error(err))
		prometheus.RecordAuditWriteFailure("update")
	}

	return product, nil
}

// SoftDelete tombstones a product and appends a deletion-log snapshot of its
// pre-delete state. Repeated deletes append repeated log rows. The log write
// is advisory: its failure never rolls back or fails the delete.
func SoftDelete(db *gorm.DB, id uint) error {
	product, err := Get(db, id)
	if err != nil {
		return err
	}
	snapshot := *product

	product.IsDeleted = true
	if err := db.Save(product).Error; err != nil {
		return err
	}

	if err := audit.RecordDeletion(db, &snapshot, time.Now().UTC()); err != nil {
		logger.GetLogger().Warn("deletion log write failed",
			zap.Uint("product_id", id),
			zap.Error(err))
		prometheus.RecordAuditWriteFailure("deletion")
	}

	return nil
}

// Restore clears the tombstone flag. Existing deletion-log entries are left
// alone.
func Restore(db *gorm.DB, id uint) error {
	product, err := Get(db, id)
	if err != nil {
		return err
	}
	product.IsDeleted = false
	return db.Save(product).Error
}

// DecrementQuantity lowers a product's stock by amount, flooring at zero, and
// returns the new quantity. Overselling relative to recorded stock is silently
// floored, never rejected. Run this inside the caller's transaction so the
// read-modify-write pairs with the bill rows it belongs to.
func DecrementQuantity(tx *gorm.DB, id uint, amount int) (int, error) {
	product, err := Get(tx, id)
	if err != nil {
		return 0, err
	}

	newQty := product.Quantity - amount
	if newQty < 0 {
		newQty = 0
	}

	err = tx.Model(&model.Product{}).Where("id = ?", id).
		Update("quantity", newQty).Error
	if err != nil {
		return 0, err
	}
	return newQty, nil
}
