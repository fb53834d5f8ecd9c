package models

import "time"

type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"` // empty for OAuth-only accounts
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`

	CartItems CartMap `gorm:"type:text" json:"cartItems"`
	Wishlist  IDList  `gorm:"type:text" json:"wishlist"`

	GoogleID     *string      `gorm:"uniqueIndex" json:"-"`
	AuthProvider AuthProvider `gorm:"type:varchar(20);default:'local'" json:"authProvider"`

	ResetPasswordToken  string     `json:"-"`
	ResetPasswordExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
