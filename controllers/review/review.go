package reviewControllers

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

type AddReviewRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Title     string `json:"title"`
	Comment   string `json:"comment" binding:"required"`
}

// RatingStats is the aggregate computed on every read; no caching at this
// scale.
type RatingStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`
	FiveStar      int64   `json:"fiveStar"`
	FourStar      int64   `json:"fourStar"`
	ThreeStar     int64   `json:"threeStar"`
	TwoStar       int64   `json:"twoStar"`
	OneStar       int64   `json:"oneStar"`
}

func ratingStats(db *gorm.DB, productID uint) (RatingStats, error) {
	var stats RatingStats
	err := db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select(`COALESCE(AVG(rating), 0) AS average_rating,
			COUNT(*) AS total_reviews,
			COALESCE(SUM(CASE WHEN rating = 5 THEN 1 ELSE 0 END), 0) AS five_star,
			COALESCE(SUM(CASE WHEN rating = 4 THEN 1 ELSE 0 END), 0) AS four_star,
			COALESCE(SUM(CASE WHEN rating = 3 THEN 1 ELSE 0 END), 0) AS three_star,
			COALESCE(SUM(CASE WHEN rating = 2 THEN 1 ELSE 0 END), 0) AS two_star,
			COALESCE(SUM(CASE WHEN rating = 1 THEN 1 ELSE 0 END), 0) AS one_star`).
		Scan(&stats).Error
	return stats, err
}

// hasPaidOrderWith reports whether the user has any paid order containing
// the product. Evaluated once at review creation, never again.
func hasPaidOrderWith(db *gorm.DB, userID string, productID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.is_paid = ?",
			userID, productID, true).
		Count(&count).Error
	return count > 0, err
}

// POST /api/review/add
func Add(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Product ID, rating, and comment are required"))
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Rating must be between 1 and 5"))
			return
		}

		userID := middleware.UserID(c)

		var existing models.Review
		err := db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing).Error
		if err == nil {
			api.Abort(c, api.NewError(http.StatusConflict, "You have already reviewed this product"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			api.Abort(c, err)
			return
		}

		verified, err := hasPaidOrderWith(db, userID, req.ProductID)
		if err != nil {
			api.Abort(c, err)
			return
		}

		review := models.Review{
			UserID:             userID,
			ProductID:          req.ProductID,
			Rating:             req.Rating,
			Title:              req.Title,
			Comment:            req.Comment,
			IsVerifiedPurchase: verified,
		}
		// The composite unique index backstops concurrent double submission;
		// a lost race surfaces as a duplicated-key conflict.
		if err := db.Create(&review).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusCreated, gin.H{"review": review}, "Review added successfully")
	}
}

// GET /api/review/product/:productId
func ForProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Invalid product ID"))
			return
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}

		var reviews []models.Review
		if err := db.Where("product_id = ?", productID).
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&reviews).Error; err != nil {
			api.Abort(c, err)
			return
		}

		stats, err := ratingStats(db, uint(productID))
		if err != nil {
			api.Abort(c, err)
			return
		}

		totalPages := (stats.TotalReviews + int64(limit) - 1) / int64(limit)
		api.OK(c, http.StatusOK, gin.H{
			"reviews": reviews,
			"stats":   stats,
			"pagination": gin.H{
				"currentPage":  page,
				"totalPages":   totalPages,
				"totalReviews": stats.TotalReviews,
			},
		}, "Reviews fetched successfully")
	}
}

// GET /api/review/rating/:productId
func Rating(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Invalid product ID"))
			return
		}

		stats, err := ratingStats(db, uint(productID))
		if err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, gin.H{
			"averageRating": stats.AverageRating,
			"totalReviews":  stats.TotalReviews,
		}, "Rating fetched successfully")
	}
}

// GET /api/review/my-reviews
func Mine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.Where("user_id = ?", middleware.UserID(c)).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"reviews": reviews}, "Your reviews fetched successfully")
	}
}

// DELETE /api/review/:reviewId
//
// Only the author may delete; anyone else's review id reads as not found.
func Delete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Where("id = ? AND user_id = ?", c.Param("reviewId"), middleware.UserID(c)).
			Delete(&models.Review{})
		if result.Error != nil {
			api.Abort(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			api.Abort(c, api.NewError(http.StatusNotFound, "Review not found or unauthorized"))
			return
		}
		api.OK(c, http.StatusOK, nil, "Review deleted successfully")
	}
}
