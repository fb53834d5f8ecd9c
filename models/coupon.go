package models

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Code          string       `gorm:"uniqueIndex;not null" json:"code"` // stored uppercase
	DiscountType  DiscountType `gorm:"type:varchar(20);not null" json:"discountType"`
	DiscountValue float64      `gorm:"not null" json:"discountValue"`

	MinimumOrderAmount float64  `gorm:"default:0" json:"minimumOrderAmount"`
	MaximumDiscount    *float64 `json:"maximumDiscount"`

	UsageLimit *int `json:"usageLimit"`
	UsedCount  int  `gorm:"default:0" json:"usedCount"`

	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `gorm:"not null" json:"validUntil"`
	IsActive   bool      `gorm:"default:true" json:"isActive"`

	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
