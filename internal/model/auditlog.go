package model

import "time"

// ProductDeleteLog is an append-only snapshot taken at soft-delete time. Its
// lifetime is independent of the product row; a restore does not touch it.
type ProductDeleteLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255)"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	DeletedOn time.Time `json:"deleted_on" gorm:"index"`
}

// ProductUpdateLog is the analogous snapshot taken before a product edit.
type ProductUpdateLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255)"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	UpdatedOn time.Time `json:"updated_on" gorm:"index"`
}
