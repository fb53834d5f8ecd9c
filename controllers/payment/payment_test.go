package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Address{},
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func TestMarkOrderPaid(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Name: "Asha", Email: "asha@example.com",
		CartItems: models.CartMap{"1": 2, "3": 1},
	}).Error)
	order := models.Order{UserID: "user-1", Amount: 204, AddressID: 1, PaymentType: models.PaymentTypeOnline}
	require.NoError(t, db.Create(&order).Error)

	orderID := strconv.FormatUint(uint64(order.ID), 10)
	require.NoError(t, MarkOrderPaid(db, orderID, "user-1"))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.True(t, reloaded.IsPaid)

	// The whole cart is wiped, not just the ordered items.
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user-1").Error)
	assert.Empty(t, user.CartItems)
}

func TestMarkOrderPaidIsIdempotent(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Name: "Asha", Email: "asha@example.com",
	}).Error)
	order := models.Order{UserID: "user-1", Amount: 100, AddressID: 1, PaymentType: models.PaymentTypeOnline}
	require.NoError(t, db.Create(&order).Error)

	orderID := strconv.FormatUint(uint64(order.ID), 10)
	require.NoError(t, MarkOrderPaid(db, orderID, "user-1"))
	require.NoError(t, MarkOrderPaid(db, orderID, "user-1"))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.True(t, reloaded.IsPaid)
}

func TestCancelOrderDeletesOrderAndItems(t *testing.T) {
	db := setupDB(t)
	product := models.Product{Name: "Red Rice", Category: "Grains", Price: 120, OfferPrice: 100}
	require.NoError(t, db.Create(&product).Error)

	order := models.Order{
		UserID: "user-1", Amount: 102, AddressID: 1, PaymentType: models.PaymentTypeOnline,
		Items: []models.OrderItem{{ProductID: product.ID, Quantity: 1}},
	}
	require.NoError(t, db.Create(&order).Error)

	orderID := strconv.FormatUint(uint64(order.ID), 10)
	require.NoError(t, CancelOrder(db, orderID))

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	// The product itself is untouched.
	var productCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.Equal(t, int64(1), productCount)
}

const testWebhookSecret = "whsec_test_secret"

func webhookRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Stripe: config.Stripe{WebhookSecret: testWebhookSecret}}
	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.POST("/stripe", StripeWebhook(db, cfg))
	return r
}

// signStripePayload builds a Stripe-Signature header the way the gateway
// does: v1 = HMAC-SHA256(secret, "<timestamp>.<payload>").
func signStripePayload(secret string, payload []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(eventType string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_test","object":"event","api_version":%q,"type":%q,"data":{"object":{}}}`,
		stripe.APIVersion, eventType,
	))
}

func postWebhook(r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db := setupDB(t)
	r := webhookRouter(db)
	payload := eventPayload("payment_intent.succeeded")

	w := postWebhook(r, payload, signStripePayload("whsec_wrong_secret", payload, time.Now()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Webhook Error")

	w = postWebhook(r, payload, "t=0,v1=garbage")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookRejectsStaleTimestamp(t *testing.T) {
	db := setupDB(t)
	r := webhookRouter(db)
	payload := eventPayload("payment_intent.succeeded")

	w := postWebhook(r, payload, signStripePayload(testWebhookSecret, payload, time.Now().Add(-time.Hour)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookAcknowledgesUnknownEventWithoutSideEffects(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Name: "Asha", Email: "asha@example.com",
		CartItems: models.CartMap{"1": 2},
	}).Error)
	order := models.Order{UserID: "user-1", Amount: 100, AddressID: 1, PaymentType: models.PaymentTypeOnline}
	require.NoError(t, db.Create(&order).Error)

	r := webhookRouter(db)
	payload := eventPayload("charge.refunded")

	w := postWebhook(r, payload, signStripePayload(testWebhookSecret, payload, time.Now()))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "received")

	var reloadedOrder models.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.False(t, reloadedOrder.IsPaid)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user-1").Error)
	assert.Equal(t, models.CartMap{"1": 2}, user.CartItems)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)
}
