package model

import "time"

// Product represents the product master data. A deleted product is tombstoned
// with IsDeleted rather than removed: historical bills and the deletion log
// keep referencing the row, and a restore only clears the flag. Category and
// supplier references are plain nullable ids, never existence-checked here.
type Product struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	Colour      string    `json:"colour" gorm:"type:varchar(50)"`
	Brand       string    `json:"brand" gorm:"type:varchar(100)"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(500)"`
	CategoryID  *uint     `json:"category_id" gorm:"index"`
	SupplierID  *uint     `json:"supplier_id" gorm:"index"`
	IsDeleted   bool      `json:"is_deleted" gorm:"index;not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category is a named grouping for products. Categories are never deleted.
type Category struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
