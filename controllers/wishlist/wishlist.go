package wishlistControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WishlistRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

func loadUser(db *gorm.DB, c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := db.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			api.Abort(c, api.NewError(http.StatusNotFound, "User not found"))
			return nil, false
		}
		api.Abort(c, err)
		return nil, false
	}
	return &user, true
}

// GET /api/wishlist
func Get(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadUser(db, c)
		if !ok {
			return
		}

		products := []models.Product{}
		if len(user.Wishlist) > 0 {
			var found []models.Product
			if err := db.Where("id IN ?", []uint(user.Wishlist)).Find(&found).Error; err != nil {
				api.Abort(c, err)
				return
			}
			// Keep wishlist order, skipping ids that no longer resolve.
			byID := make(map[uint]models.Product, len(found))
			for _, p := range found {
				byID[p.ID] = p
			}
			for _, id := range user.Wishlist {
				if p, ok := byID[id]; ok {
					products = append(products, p)
				}
			}
		}

		api.OK(c, http.StatusOK, gin.H{"wishlist": products}, "Wishlist fetched successfully")
	}
}

// POST /api/wishlist/add
func Add(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Product ID is required"))
			return
		}

		user, ok := loadUser(db, c)
		if !ok {
			return
		}

		if user.Wishlist.Contains(req.ProductID) {
			api.Abort(c, api.NewError(http.StatusConflict, "Product already in wishlist"))
			return
		}

		wishlist := append(user.Wishlist, req.ProductID)
		if err := db.Model(user).Update("wishlist", wishlist).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, nil, "Product added to wishlist")
	}
}

// DELETE /api/wishlist/remove/:productId
func Remove(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Product ID is required"))
			return
		}

		user, ok := loadUser(db, c)
		if !ok {
			return
		}

		wishlist := user.Wishlist.Remove(uint(productID))
		if err := db.Model(user).Update("wishlist", wishlist).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, nil, "Product removed from wishlist")
	}
}

// POST /api/wishlist/toggle
//
// Toggling the same product twice restores the original membership.
func Toggle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Product ID is required"))
			return
		}

		user, ok := loadUser(db, c)
		if !ok {
			return
		}

		inWishlist := user.Wishlist.Contains(req.ProductID)
		var wishlist models.IDList
		var message string
		if inWishlist {
			wishlist = user.Wishlist.Remove(req.ProductID)
			message = "Removed from wishlist"
		} else {
			wishlist = append(user.Wishlist, req.ProductID)
			message = "Added to wishlist"
		}

		if err := db.Model(user).Update("wishlist", wishlist).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, gin.H{"isInWishlist": !inWishlist}, message)
	}
}
