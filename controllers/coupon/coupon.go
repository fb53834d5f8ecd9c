package couponControllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Discount computes the discount a coupon grants on orderAmount. Percentage
// discounts are floored, capped by MaximumDiscount when set; every discount
// is finally capped by the order amount itself so it can never exceed the
// total. Pure; the caller owns any usage-count bookkeeping.
func Discount(coupon *models.Coupon, orderAmount float64) float64 {
	var discount float64
	if coupon.DiscountType == models.DiscountPercentage {
		discount = math.Floor(orderAmount * coupon.DiscountValue / 100)
		if coupon.MaximumDiscount != nil && discount > *coupon.MaximumDiscount {
			discount = *coupon.MaximumDiscount
		}
	} else {
		discount = coupon.DiscountValue
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	return discount
}

// Validate checks the coupon against the clock, usage cap and minimum order
// amount, returning the rejection as a typed error.
func Validate(coupon *models.Coupon, orderAmount float64, now time.Time) *api.Error {
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
		return api.NewError(http.StatusBadRequest, "Coupon is expired or not yet valid")
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return api.NewError(http.StatusBadRequest, "Coupon usage limit exceeded")
	}
	if orderAmount < coupon.MinimumOrderAmount {
		return api.NewError(http.StatusBadRequest,
			fmt.Sprintf("Minimum order amount is ₹%v", coupon.MinimumOrderAmount))
	}
	return nil
}

type ApplyCouponRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"orderAmount" binding:"required"`
}

// POST /api/coupon/apply
//
// Reports the discount without mutating anything; in particular UsedCount is
// checked above but never incremented here or anywhere else.
func Apply(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ApplyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Coupon code and order amount are required"))
			return
		}

		var coupon models.Coupon
		err := db.Where("code = ? AND is_active = ?", strings.ToUpper(req.Code), true).First(&coupon).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusNotFound, "Invalid coupon code"))
				return
			}
			api.Abort(c, err)
			return
		}

		if apiErr := Validate(&coupon, req.OrderAmount, time.Now()); apiErr != nil {
			api.Abort(c, apiErr)
			return
		}

		discount := Discount(&coupon, req.OrderAmount)
		api.OK(c, http.StatusOK, gin.H{
			"couponId":      coupon.ID,
			"code":          coupon.Code,
			"discount":      discount,
			"discountType":  coupon.DiscountType,
			"discountValue": coupon.DiscountValue,
			"finalAmount":   req.OrderAmount - discount,
		}, "Coupon applied successfully")
	}
}

type CreateCouponRequest struct {
	Code               string     `json:"code" binding:"required"`
	DiscountType       string     `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue      float64    `json:"discountValue" binding:"required"`
	MinimumOrderAmount float64    `json:"minimumOrderAmount"`
	MaximumDiscount    *float64   `json:"maximumDiscount"`
	UsageLimit         *int       `json:"usageLimit"`
	ValidFrom          *time.Time `json:"validFrom"`
	ValidUntil         time.Time  `json:"validUntil" binding:"required"`
	Description        string     `json:"description"`
}

// POST /api/coupon/create (seller)
func Create(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest,
				"Code, discount type, discount value, and valid until are required"))
			return
		}

		code := strings.ToUpper(strings.TrimSpace(req.Code))

		var existing models.Coupon
		if err := db.Where("code = ?", code).First(&existing).Error; err == nil {
			api.Abort(c, api.NewError(http.StatusConflict, "Coupon code already exists"))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			api.Abort(c, err)
			return
		}

		validFrom := time.Now()
		if req.ValidFrom != nil {
			validFrom = *req.ValidFrom
		}

		coupon := models.Coupon{
			Code:               code,
			DiscountType:       models.DiscountType(req.DiscountType),
			DiscountValue:      req.DiscountValue,
			MinimumOrderAmount: req.MinimumOrderAmount,
			MaximumDiscount:    req.MaximumDiscount,
			UsageLimit:         req.UsageLimit,
			ValidFrom:          validFrom,
			ValidUntil:         req.ValidUntil,
			IsActive:           true,
			Description:        req.Description,
		}
		if err := db.Create(&coupon).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusCreated, gin.H{"coupon": coupon}, "Coupon created successfully")
	}
}

// GET /api/coupon/all (seller)
func All(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"coupons": coupons}, "Coupons fetched successfully")
	}
}

// GET /api/coupon/active
func Active(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		var coupons []models.Coupon
		err := db.
			Where("is_active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
			Where("usage_limit IS NULL OR used_count < usage_limit").
			Find(&coupons).Error
		if err != nil {
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"coupons": coupons}, "Active coupons fetched successfully")
	}
}

// DELETE /api/coupon/:couponId (seller)
func Delete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Coupon{}, "id = ?", c.Param("couponId"))
		if result.Error != nil {
			api.Abort(c, result.Error)
			return
		}
		if result.RowsAffected == 0 {
			api.Abort(c, api.NewError(http.StatusNotFound, "Coupon not found"))
			return
		}
		api.OK(c, http.StatusOK, nil, "Coupon deleted successfully")
	}
}

// PATCH /api/coupon/toggle/:couponId (seller)
func Toggle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", c.Param("couponId")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusNotFound, "Coupon not found"))
				return
			}
			api.Abort(c, err)
			return
		}

		if err := db.Model(&coupon).Update("is_active", !coupon.IsActive).Error; err != nil {
			api.Abort(c, err)
			return
		}

		message := "Coupon deactivated successfully"
		if coupon.IsActive {
			message = "Coupon activated successfully"
		}
		api.OK(c, http.StatusOK, gin.H{"coupon": coupon}, message)
	}
}
