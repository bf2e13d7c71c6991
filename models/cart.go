package models

import "time"

// Cart is created on the first add-to-cart call and is never removed by checkout.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user"`
	User      User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"cart_items,omitempty"`
}
