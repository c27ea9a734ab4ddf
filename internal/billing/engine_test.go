package billing

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"store-service/internal/cart"
	"store-service/internal/inventory"
	"store-service/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Bill{},
		&model.BillItem{},
		&model.ProductDeleteLog{},
		&model.ProductUpdateLog{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, p model.Product) model.Product {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return p
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(m).Count(&count).Error)
	return count
}

// The same product added twice stays two independent lines and both debit
// stock: price 20, quantity 5 becomes one bill of 40 and stock 3.
func TestCommitDoubleAddScenario(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, model.Product{Name: "Blue Shirt", Price: 20, Quantity: 5})

	carts := cart.NewStore()
	carts.AddItem("sess", &p)
	carts.AddItem("sess", &p)

	bill, err := Commit(db, nil, carts.Items("sess"))
	require.NoError(t, err)
	assert.Equal(t, 40.0, bill.TotalAmount)
	require.Len(t, bill.Items, 2)

	var stored model.Bill
	require.NoError(t, db.Preload("Items").First(&stored, bill.ID).Error)
	assert.Equal(t, 40.0, stored.TotalAmount)
	require.Len(t, stored.Items, 2)

	var sum float64
	for _, line := range stored.Items {
		assert.Equal(t, 20.0, line.UnitPrice)
		assert.Equal(t, 1, line.Quantity)
		sum += line.Subtotal
	}
	assert.Equal(t, stored.TotalAmount, sum)

	product, err := inventory.Get(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, product.Quantity)
}

// Overselling floors stock at zero and the commit still succeeds.
func TestCommitOversellFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, model.Product{Name: "Scarce", Price: 10, Quantity: 2})

	items := []cart.Item{{ProductID: p.ID, Name: p.Name, UnitPrice: 10, Quantity: 5, Subtotal: 50}}
	bill, err := Commit(db, nil, items)
	require.NoError(t, err)
	assert.Equal(t, 50.0, bill.TotalAmount)

	product, err := inventory.Get(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
}

func TestCommitEmptyCart(t *testing.T) {
	db := newTestDB(t)

	_, err := Commit(db, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyBill)

	assert.Zero(t, countRows(t, db, &model.Bill{}))
	assert.Zero(t, countRows(t, db, &model.BillItem{}))
}

func TestCommitUnknownProductRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, model.Product{Name: "Blue Shirt", Price: 20, Quantity: 5})

	items := []cart.Item{
		{ProductID: p.ID, Name: p.Name, UnitPrice: 20, Quantity: 1, Subtotal: 20},
		{ProductID: 9999, Name: "Ghost", UnitPrice: 5, Quantity: 1, Subtotal: 5},
	}
	_, err := Commit(db, nil, items)
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrNotFound)

	// No partial bill, no partial decrement.
	assert.Zero(t, countRows(t, db, &model.Bill{}))
	assert.Zero(t, countRows(t, db, &model.BillItem{}))

	product, err := inventory.Get(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Quantity)
}

func TestCommitRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, model.Product{Name: "Blue Shirt", Price: 20, Quantity: 5})

	items := []cart.Item{{ProductID: p.ID, UnitPrice: 20, Quantity: 0, Subtotal: 0}}
	_, err := Commit(db, nil, items)
	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Zero(t, countRows(t, db, &model.Bill{}))
}

func TestCommitRejectsInconsistentSubtotal(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, model.Product{Name: "Blue Shirt", Price: 20, Quantity: 5})

	items := []cart.Item{{ProductID: p.ID, UnitPrice: 20, Quantity: 2, Subtotal: 25}}
	_, err := Commit(db, nil, items)
	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Zero(t, countRows(t, db, &model.Bill{}))
}

// A soft-deleted product still resolves for billing; the cart snapshot was
// taken while it was active and the line stays valid.
func TestCommitAgainstSoftDeletedProduct(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, model.Product{Name: "Last One", Price: 15, Quantity: 1})

	items := []cart.Item{{ProductID: p.ID, Name: p.Name, UnitPrice: 15, Quantity: 1, Subtotal: 15}}
	require.NoError(t, inventory.SoftDelete(db, p.ID))

	bill, err := Commit(db, nil, items)
	require.NoError(t, err)
	assert.Equal(t, 15.0, bill.TotalAmount)
}

func TestCommitUsesSnapshotPricesNotCurrent(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, model.Product{Name: "Blue Shirt", Price: 20, Quantity: 5})

	carts := cart.NewStore()
	carts.AddItem("sess", &p)

	// Reprice after the snapshot; the bill must carry the add-time price.
	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", p.ID).Update("price", 35).Error)

	bill, err := Commit(db, nil, carts.Items("sess"))
	require.NoError(t, err)
	assert.Equal(t, 20.0, bill.TotalAmount)
	assert.Equal(t, 20.0, bill.Items[0].UnitPrice)
}
