package model

import "time"

// Bill is the durable record of one committed sale. Items are created together
// with the bill inside one transaction and never independently.
type Bill struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	ReceiptNo   string     `json:"receipt_no" gorm:"type:varchar(36);index"`
	CustomerID  *uint      `json:"customer_id"`
	TotalAmount float64    `json:"total_amount" gorm:"not null"`
	Items       []BillItem `json:"items" gorm:"foreignKey:BillID"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BillItem is one line of a bill. ProductID is a weak reference: the product
// may be soft-deleted later and the line stays valid.
type BillItem struct {
	ID        uint    `json:"id" gorm:"primarykey"`
	BillID    uint    `json:"bill_id" gorm:"index;not null"`
	ProductID uint    `json:"product_id" gorm:"index;not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Subtotal  float64 `json:"subtotal" gorm:"not null"`
}
