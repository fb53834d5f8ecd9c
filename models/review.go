package models

import "time"

// Review holds one rating+comment per (user, product) pair; the composite
// unique index is the concurrency guard against double submission.
type Review struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    string  `gorm:"uniqueIndex:idx_review_user_product;not null" json:"userId"`
	User      User    `gorm:"foreignKey:UserID" json:"-"`
	ProductID uint    `gorm:"uniqueIndex:idx_review_user_product;not null" json:"productId"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Title   string `gorm:"size:100" json:"title"`
	Comment string `gorm:"size:500;not null" json:"comment"`

	// Set once at creation by checking for a paid order containing the
	// product; never re-evaluated afterwards.
	IsVerifiedPurchase bool `gorm:"default:false" json:"isVerifiedPurchase"`

	CreatedAt time.Time `json:"createdAt"`
}
