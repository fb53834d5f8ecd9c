package cartControllers

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
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	})
	r.POST("/api/cart/update", Update(db))
	return r, db
}

func postCart(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/cart/update", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateOverwritesCart(t *testing.T) {
	r, db := setupTest(t, "user-1")
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Name: "Asha", Email: "asha@example.com",
		CartItems: models.CartMap{"1": 2},
	}).Error)

	w := postCart(t, r, gin.H{"cartItems": gin.H{"3": 1, "7": 4}})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user-1").Error)
	assert.Equal(t, models.CartMap{"3": 1, "7": 4}, user.CartItems)
}

func TestUpdateIsIdempotent(t *testing.T) {
	r, db := setupTest(t, "user-1")
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Name: "Asha", Email: "asha@example.com",
	}).Error)

	cart := gin.H{"cartItems": gin.H{"5": 3}}
	assert.Equal(t, http.StatusOK, postCart(t, r, cart).Code)
	assert.Equal(t, http.StatusOK, postCart(t, r, cart).Code)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user-1").Error)
	assert.Equal(t, models.CartMap{"5": 3}, user.CartItems)
}

func TestUpdateNilBecomesEmpty(t *testing.T) {
	r, db := setupTest(t, "user-1")
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Name: "Asha", Email: "asha@example.com",
		CartItems: models.CartMap{"1": 2},
	}).Error)

	w := postCart(t, r, gin.H{})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user-1").Error)
	assert.Empty(t, user.CartItems)
}
