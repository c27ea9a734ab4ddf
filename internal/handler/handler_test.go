package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"store-service/internal/model"
	"store-service/pkg/config"
	"store-service/pkg/database"
	"store-service/pkg/jwtutil"
	"store-service/prometheus"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{
		Admin:   config.AdminConfig{Username: "admin", Password: "admin123"},
		JWT:     config.JWTConfig{SigningKey: "test-signing-key", ExpirationTime: time.Hour},
		Metrics: config.MetricsConfig{Prefix: "storetest"},
	}
	jwtutil.Initialize(&cfg.JWT)
	if err := InitAuth(&cfg.Admin); err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Set(db)
	return db
}

func authToken(t *testing.T) string {
	t.Helper()
	token, err := jwtutil.GenerateToken("admin")
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, e http.Handler, method, path, token, session string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	newTestDB(t)
	e := NewRouter()

	w := doJSON(t, e, "POST", "/api/login", "", "", map[string]string{
		"username": "admin", "password": "admin123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	w = doJSON(t, e, "POST", "/api/login", "", "", map[string]string{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	newTestDB(t)
	e := NewRouter()

	w := doJSON(t, e, "GET", "/api/products", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductLifecycle(t *testing.T) {
	newTestDB(t)
	e := NewRouter()
	token := authToken(t)

	// Create
	w := doJSON(t, e, "POST", "/api/products", token, "", map[string]interface{}{
		"name": "Blue Shirt", "price": 20.0, "quantity": 5, "brand": "Acme",
		"image_url": "/static/images/products/blue.png",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "/static/images/products/blue.png", created.ImageURL)

	// Listed while active
	w = doJSON(t, e, "GET", "/api/products", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	// Soft delete hides it from the active list
	w = doJSON(t, e, "DELETE", fmt.Sprintf("/api/products/%d", created.ID), token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, e, "GET", "/api/products", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	// But it still resolves by id for historical display
	w = doJSON(t, e, "GET", fmt.Sprintf("/api/products/%d", created.ID), token, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// And the deletion log gained exactly one snapshot
	w = doJSON(t, e, "GET", "/api/products/deleted", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted []model.ProductDeleteLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	require.Len(t, deleted, 1)
	assert.Equal(t, "Blue Shirt", deleted[0].Name)
	assert.Equal(t, 20.0, deleted[0].Price)
	assert.Equal(t, 5, deleted[0].Quantity)

	// Restore brings it back and keeps the log entry
	w = doJSON(t, e, "POST", fmt.Sprintf("/api/products/%d/restore", created.ID), token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, e, "GET", "/api/products", token, "", nil)
	listed = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	w = doJSON(t, e, "GET", "/api/products/deleted", token, "", nil)
	deleted = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Len(t, deleted, 1)
}

func TestUpdateLogOverHTTP(t *testing.T) {
	newTestDB(t)
	e := NewRouter()
	token := authToken(t)

	w := doJSON(t, e, "POST", "/api/products", token, "", map[string]interface{}{
		"name": "Old Name", "price": 10.0, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, e, "PUT", fmt.Sprintf("/api/products/%d", created.ID), token, "", map[string]interface{}{
		"name": "New Name", "price": 12.0, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, e, "GET", "/api/products/updates", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updates []model.ProductUpdateLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updates))
	require.Len(t, updates, 1)
	assert.Equal(t, "Old Name", updates[0].Name)
	assert.Equal(t, 10.0, updates[0].Price)
}

func TestCartAndBillCommit(t *testing.T) {
	db := newTestDB(t)
	e := NewRouter()
	token := authToken(t)
	session := uuid.NewString()

	p := model.Product{Name: "Blue Shirt", Price: 20, Quantity: 5}
	require.NoError(t, db.Create(&p).Error)

	// Two adds of the same product: two independent lines
	for i := 0; i < 2; i++ {
		w := doJSON(t, e, "POST", "/api/cart/items", token, session, map[string]interface{}{
			"product_id": p.ID,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, e, "GET", "/api/cart", token, session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cartResp struct {
		Items []struct {
			UnitPrice float64 `json:"unit_price"`
			Quantity  int     `json:"quantity"`
			Subtotal  float64 `json:"subtotal"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	require.Len(t, cartResp.Items, 2)
	assert.Equal(t, 40.0, cartResp.Total)

	// Commit
	w = doJSON(t, e, "POST", "/api/bills", token, session, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var billResp struct {
		BillID      uint    `json:"bill_id"`
		ReceiptNo   string  `json:"receipt_no"`
		TotalAmount float64 `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &billResp))
	assert.NotZero(t, billResp.BillID)
	assert.NotEmpty(t, billResp.ReceiptNo)
	assert.Equal(t, 40.0, billResp.TotalAmount)

	// Stock debited, cart cleared
	var product model.Product
	require.NoError(t, db.First(&product, p.ID).Error)
	assert.Equal(t, 3, product.Quantity)

	w = doJSON(t, e, "GET", "/api/cart", token, session, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)

	// Committing the now-empty cart is a validation error
	w = doJSON(t, e, "POST", "/api/bills", token, session, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoriesWithCounts(t *testing.T) {
	db := newTestDB(t)
	e := NewRouter()
	token := authToken(t)

	w := doJSON(t, e, "POST", "/api/categories", token, "", map[string]string{"name": "Shirts"})
	require.Equal(t, http.StatusCreated, w.Code)
	var shirts model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shirts))

	w = doJSON(t, e, "POST", "/api/categories", token, "", map[string]string{"name": "Accessories"})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, db.Create(&model.Product{Name: "Blue Shirt", Price: 20, Quantity: 5, CategoryID: &shirts.ID}).Error)

	w = doJSON(t, e, "GET", "/api/categories", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var totals []struct {
		Name          string `json:"name"`
		TotalProducts int64  `json:"total_products"`
		TotalQuantity int64  `json:"total_quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	require.Len(t, totals, 2)
	assert.Equal(t, "Accessories", totals[0].Name)
	assert.Zero(t, totals[0].TotalProducts)
	assert.Equal(t, "Shirts", totals[1].Name)
	assert.Equal(t, int64(1), totals[1].TotalProducts)
	assert.Equal(t, int64(5), totals[1].TotalQuantity)
}

func TestSupplierCRUDAndDanglingReference(t *testing.T) {
	db := newTestDB(t)
	e := NewRouter()
	token := authToken(t)

	w := doJSON(t, e, "POST", "/api/suppliers", token, "", map[string]string{
		"name": "Acme Textiles", "contact": "0712345678", "address": "Mill Road 1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var supplier model.Supplier
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &supplier))

	require.NoError(t, db.Create(&model.Product{Name: "Blue Shirt", Price: 20, Quantity: 5, SupplierID: &supplier.ID}).Error)

	w = doJSON(t, e, "GET", fmt.Sprintf("/api/suppliers/%d/products", supplier.ID), token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var supplierResp struct {
		Products []model.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &supplierResp))
	require.Len(t, supplierResp.Products, 1)

	// Hard delete; the product keeps its dangling supplier_id and still lists
	w = doJSON(t, e, "DELETE", fmt.Sprintf("/api/suppliers/%d", supplier.ID), token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, e, "GET", "/api/products", token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, supplier.ID, *listed[0].SupplierID)

	w = doJSON(t, e, "DELETE", fmt.Sprintf("/api/suppliers/%d", supplier.ID), token, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
