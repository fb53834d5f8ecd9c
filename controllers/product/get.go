package productControllers

import (
	"errors"
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/product/list
func List(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"products": products}, "Products fetched successfully")
	}
}

type ProductByIDRequest struct {
	ID uint `json:"id" binding:"required"`
}

// POST /api/product/id
func ByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductByIDRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Product ID is required"))
			return
		}

		var product models.Product
		if err := db.First(&product, req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusNotFound, "Product not found"))
				return
			}
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"product": product}, "Product fetched successfully")
	}
}

// GET /api/product/categories
func Categories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []string
		if err := db.Model(&models.Product{}).Distinct().Pluck("category", &categories).Error; err != nil {
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"categories": categories}, "Categories fetched successfully")
	}
}
