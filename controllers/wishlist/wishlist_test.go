package wishlistControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	})
	r.GET("/api/wishlist", Get(db))
	r.POST("/api/wishlist/add", Add(db))
	r.POST("/api/wishlist/toggle", Toggle(db))
	r.DELETE("/api/wishlist/remove/:productId", Remove(db))
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

func seedUser(t *testing.T, db *gorm.DB, wishlist models.IDList) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Name: "Asha", Email: "asha@example.com", Wishlist: wishlist,
	}).Error)
}

func seedProduct(t *testing.T, db *gorm.DB, name string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Category: "Grains", Price: 100, OfferPrice: 90}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func reloadWishlist(t *testing.T, db *gorm.DB) models.IDList {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "user-1").Error)
	return user.Wishlist
}

func TestAddRejectsDuplicate(t *testing.T) {
	r, db := setupTest(t, "user-1")
	p := seedProduct(t, db, "Red Rice")
	seedUser(t, db, models.IDList{p.ID})

	w := doJSON(t, r, http.MethodPost, "/api/wishlist/add", gin.H{"productId": p.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already in wishlist")
	assert.Equal(t, models.IDList{p.ID}, reloadWishlist(t, db))
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	r, db := setupTest(t, "user-1")
	p := seedProduct(t, db, "Red Rice")
	seedUser(t, db, nil)

	w := doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", gin.H{"productId": p.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.IDList{p.ID}, reloadWishlist(t, db))

	var resp struct {
		Data struct {
			IsInWishlist bool `json:"isInWishlist"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.IsInWishlist)

	w = doJSON(t, r, http.MethodPost, "/api/wishlist/toggle", gin.H{"productId": p.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, reloadWishlist(t, db))

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.IsInWishlist)
}

func TestRemovePreservesOrder(t *testing.T) {
	r, db := setupTest(t, "user-1")
	a := seedProduct(t, db, "A")
	b := seedProduct(t, db, "B")
	c := seedProduct(t, db, "C")
	seedUser(t, db, models.IDList{a.ID, b.ID, c.ID})

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/wishlist/remove/%d", b.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.IDList{a.ID, c.ID}, reloadWishlist(t, db))
}

func TestGetSkipsDeletedProductsKeepsOrder(t *testing.T) {
	r, db := setupTest(t, "user-1")
	a := seedProduct(t, db, "A")
	b := seedProduct(t, db, "B")
	c := seedProduct(t, db, "C")
	seedUser(t, db, models.IDList{c.ID, a.ID, b.ID})

	require.NoError(t, db.Delete(&models.Product{}, a.ID).Error)

	w := doJSON(t, r, http.MethodGet, "/api/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Wishlist []models.Product `json:"wishlist"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Wishlist, 2)
	assert.Equal(t, c.ID, resp.Data.Wishlist[0].ID)
	assert.Equal(t, b.ID, resp.Data.Wishlist[1].ID)
}
