package model

import "time"

// Supplier represents a product supplier. Suppliers are hard-deleted; products
// keep their supplier_id and readers tolerate the dangling reference.
type Supplier struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Contact   string    `json:"contact" gorm:"type:varchar(100)"`
	Address   string    `json:"address" gorm:"type:text"`
	DateAdded time.Time `json:"date_added"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
