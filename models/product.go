package models

import "time"

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Category    string     `gorm:"index;not null" json:"category"`
	Description StringList `gorm:"type:text" json:"description"`
	Image       StringList `gorm:"type:text" json:"image"`
	Price       float64    `gorm:"not null" json:"price"`
	// OfferPrice is the selling price. By convention it is <= Price; the
	// seller form is trusted and nothing enforces it.
	OfferPrice float64   `gorm:"not null" json:"offerPrice"`
	InStock    bool      `gorm:"default:true" json:"inStock"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
