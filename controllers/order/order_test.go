package orderControllers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T, userID string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Address{},
		&models.Order{}, &models.OrderItem{},
	))

	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	})
	r.POST("/api/order/cod", PlaceCOD(db))
	r.GET("/api/order/user", ListForUser(db))
	r.GET("/api/order/seller", ListAll(db))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB, name string, offerPrice float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Category: "Grains", Price: offerPrice + 20, OfferPrice: offerPrice, InStock: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedAddress(t *testing.T, db *gorm.DB, userID string) models.Address {
	t.Helper()
	a := models.Address{UserID: userID, FirstName: "Asha", Street: "1 Mall Road", City: "Dehradun"}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func TestPlaceCODComputesAmountWithTax(t *testing.T) {
	r, db := setupTest(t, "user-1")
	p := seedProduct(t, db, "Red Rice", 100)
	addr := seedAddress(t, db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/api/order/cod", gin.H{
		"items":   []gin.H{{"product": p.ID, "quantity": 2}},
		"address": addr.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	// 100*2 = 200, plus floor(200*0.02) = 4
	assert.Equal(t, float64(204), order.Amount)
	assert.Equal(t, models.PaymentTypeCOD, order.PaymentType)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.False(t, order.IsPaid)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestPlaceCODUsesLivePricesNotClientPrices(t *testing.T) {
	r, db := setupTest(t, "user-1")
	p := seedProduct(t, db, "Himalayan Honey", 350)
	addr := seedAddress(t, db, "user-1")

	// Client-supplied price fields are simply ignored by the binding.
	w := doJSON(t, r, http.MethodPost, "/api/order/cod", gin.H{
		"items":   []gin.H{{"product": p.ID, "quantity": 1, "price": 1}},
		"address": addr.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, float64(350+7), order.Amount) // floor(350*0.02) = 7
}

func TestPlaceCODSkipsMissingProducts(t *testing.T) {
	r, db := setupTest(t, "user-1")
	p := seedProduct(t, db, "Buransh Squash", 100)
	addr := seedAddress(t, db, "user-1")

	w := doJSON(t, r, http.MethodPost, "/api/order/cod", gin.H{
		"items": []gin.H{
			{"product": p.ID, "quantity": 1},
			{"product": 9999, "quantity": 5},
		},
		"address": addr.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	assert.Equal(t, float64(102), order.Amount)
	assert.Len(t, order.Items, 1)
}

func TestPlaceCODRejectsEmptyItems(t *testing.T) {
	r, _ := setupTest(t, "user-1")

	w := doJSON(t, r, http.MethodPost, "/api/order/cod", gin.H{"items": []gin.H{}, "address": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingsHideUnpaidOnlineOrders(t *testing.T) {
	r, db := setupTest(t, "user-1")
	addr := seedAddress(t, db, "user-1")

	orders := []models.Order{
		{UserID: "user-1", Amount: 100, AddressID: addr.ID, PaymentType: models.PaymentTypeCOD, Status: models.OrderStatusPlaced},
		{UserID: "user-1", Amount: 200, AddressID: addr.ID, PaymentType: models.PaymentTypeOnline, IsPaid: true, Status: models.OrderStatusPlaced},
		{UserID: "user-1", Amount: 300, AddressID: addr.ID, PaymentType: models.PaymentTypeOnline, IsPaid: false, Status: models.OrderStatusPlaced},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	for _, path := range []string{"/api/order/user", "/api/order/seller"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Orders []models.Order `json:"orders"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.Orders, 2, path)
		for _, o := range resp.Data.Orders {
			assert.True(t, o.PaymentType == models.PaymentTypeCOD || o.IsPaid)
		}
	}
}

func TestListForUserOnlyReturnsOwnOrders(t *testing.T) {
	r, db := setupTest(t, "user-1")
	addr := seedAddress(t, db, "user-1")

	mine := models.Order{UserID: "user-1", Amount: 100, AddressID: addr.ID, PaymentType: models.PaymentTypeCOD}
	other := models.Order{UserID: "user-2", Amount: 200, AddressID: addr.ID, PaymentType: models.PaymentTypeCOD}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&other).Error)

	w := doJSON(t, r, http.MethodGet, "/api/order/user", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Orders []models.Order `json:"orders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Orders, 1)
	assert.Equal(t, "user-1", resp.Data.Orders[0].UserID)
}
