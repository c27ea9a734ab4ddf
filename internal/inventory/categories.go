package inventory

import (
	"fmt"

	"gorm.io/gorm"

	"store-service/internal/model"
)

// CategoryTotals is one row of the per-category aggregate view.
type CategoryTotals struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	TotalProducts int64  `json:"total_products"`
	TotalQuantity int64  `json:"total_quantity"`
}

// ListCategoryTotals joins categories against their non-deleted products and
// returns product count and summed quantity per category, ordered by name.
// Left-join semantics: a category with no active products appears with 0/0.
func ListCategoryTotals(db *gorm.DB) ([]CategoryTotals, error) {
	var totals []CategoryTotals
	err := db.Model(&model.Category{}).
		Select("categories.id, categories.name, COUNT(products.id) AS total_products, COALESCE(SUM(products.quantity), 0) AS total_quantity").
		Joins("LEFT JOIN products ON products.category_id = categories.id AND products.is_deleted = ?", false).
		Group("categories.id, categories.name").
		Order("categories.name").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// CreateCategory inserts a new category. Duplicate names are allowed at this
// layer; any uniqueness is the storage schema's business.
func CreateCategory(db *gorm.DB, name string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalid)
	}
	category := model.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
