package models

import "time"

type PaymentType string

const (
	PaymentTypeCOD    PaymentType = "COD"
	PaymentTypeOnline PaymentType = "Online"
)

// Order status progression strings, kept as free text on the row.
const (
	OrderStatusPlaced         = "Order Placed"
	OrderStatusConfirmed      = "Order Confirmed"
	OrderStatusShipped        = "Shipped"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
	OrderStatusCancelled      = "Cancelled"
)

// TaxRate is the flat tax applied to order totals (2%).
const TaxRate = 0.02

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	// Amount is the computed total including tax, priced from the live
	// product rows at placement time, never from the client.
	Amount    float64 `gorm:"not null" json:"amount"`
	AddressID uint    `gorm:"not null" json:"addressId"`
	Address   Address `gorm:"foreignKey:AddressID" json:"address"`

	PaymentType PaymentType `gorm:"type:varchar(10);not null" json:"paymentType"`
	// IsPaid stays false for Online orders until the gateway webhook
	// confirms the payment. COD orders are final at creation; listings
	// treat them as payable-on-delivery rather than unpaid.
	IsPaid bool   `gorm:"default:false" json:"isPaid"`
	Status string `gorm:"default:'Order Placed'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}
