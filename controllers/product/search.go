package productControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/product/search
//
// Query params: q, category, minPrice, maxPrice, sort, inStock, page, limit.
func Search(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		category := c.Query("category")
		minPrice := c.Query("minPrice")
		maxPrice := c.Query("maxPrice")
		sort := c.Query("sort")
		inStock := c.Query("inStock")

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "12"))
		if err != nil || limit < 1 {
			limit = 12
		}

		query := db.Model(&models.Product{})

		// LOWER on both sides keeps matching case-insensitive on postgres,
		// where plain LIKE is case-sensitive.
		if q != "" {
			like := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like)
		}
		if category != "" && category != "all" {
			query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(category)+"%")
		}
		if minPrice != "" {
			if mp, err := strconv.ParseFloat(minPrice, 64); err == nil {
				query = query.Where("offer_price >= ?", mp)
			} else {
				api.Abort(c, api.NewError(http.StatusBadRequest, "Invalid minPrice"))
				return
			}
		}
		if maxPrice != "" {
			if mp, err := strconv.ParseFloat(maxPrice, 64); err == nil {
				query = query.Where("offer_price <= ?", mp)
			} else {
				api.Abort(c, api.NewError(http.StatusBadRequest, "Invalid maxPrice"))
				return
			}
		}
		if inStock == "true" {
			query = query.Where("in_stock = ?", true)
		}

		order := "created_at DESC"
		switch sort {
		case "price_low":
			order = "offer_price ASC"
		case "price_high":
			order = "offer_price DESC"
		case "name_asc":
			order = "name ASC"
		case "name_desc":
			order = "name DESC"
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			api.Abort(c, err)
			return
		}

		offset := (page - 1) * limit
		var products []models.Product
		if err := query.Order(order).Offset(offset).Limit(limit).Find(&products).Error; err != nil {
			api.Abort(c, err)
			return
		}

		totalPages := (total + int64(limit) - 1) / int64(limit)
		api.OK(c, http.StatusOK, gin.H{
			"products": products,
			"pagination": gin.H{
				"currentPage":   page,
				"totalPages":    totalPages,
				"totalProducts": total,
				"hasMore":       int64(offset+len(products)) < total,
			},
		}, "Products fetched successfully")
	}
}
