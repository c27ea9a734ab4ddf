// Package billing commits a cart into a durable bill and debits stock, all as
// one transaction.
package billing

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"store-service/internal/cart"
	"store-service/internal/inventory"
	"store-service/internal/model"
)

var (
	// ErrEmptyBill reports a commit attempted with no items.
	ErrEmptyBill = errors.New("bill has no items")
	// ErrInvalidItem reports a line with a non-positive quantity or a subtotal
	// that does not match quantity times unit price.
	ErrInvalidItem = errors.New("invalid bill item")
)

// Commit validates the cart lines and, inside one transaction, inserts the
// bill, inserts its items in input order, and floor-decrements each referenced
// product's stock. Any failure rolls the whole thing back: no partial bill, no
// partial decrement.
//
// Unit prices and subtotals are the cart's add-time snapshots and are trusted
// as-is; the bill total is their sum, not a re-read of current product prices.
func Commit(db *gorm.DB, customerID *uint, items []cart.Item) (*model.Bill, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBill
	}

	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %d has quantity %d", ErrInvalidItem, item.ProductID, item.Quantity)
		}
		if math.Abs(item.Subtotal-item.UnitPrice*float64(item.Quantity)) > 1e-9 {
			return nil, fmt.Errorf("%w: product %d subtotal %.2f does not match %.2f x %d",
				ErrInvalidItem, item.ProductID, item.Subtotal, item.UnitPrice, item.Quantity)
		}
		total += item.Subtotal
	}

	bill := model.Bill{
		ReceiptNo:   uuid.New().String(),
		CustomerID:  customerID,
		TotalAmount: total,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}

		for _, item := range items {
			line := model.BillItem{
				BillID:    bill.ID,
				ProductID: item.ProductID,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
				Subtotal:  item.Subtotal,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			bill.Items = append(bill.Items, line)

			if _, err := inventory.DecrementQuantity(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &bill, nil
}
