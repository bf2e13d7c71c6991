package models

type CartItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CartID     uint     `gorm:"not null;uniqueIndex:idx_cart_food_item" json:"cart"`
	Cart       Cart     `gorm:"foreignKey:CartID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FoodItemID uint     `gorm:"not null;uniqueIndex:idx_cart_food_item" json:"food_item"`
	FoodItem   FoodItem `gorm:"foreignKey:FoodItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Quantity   uint     `gorm:"not null;default:1" json:"quantity"`
}

// CartItemView is the flattened read projection returned by the cart listing.
type CartItemView struct {
	ID           uint   `json:"id"`
	FoodItemName string `json:"food_item_name"`
	Quantity     uint   `json:"quantity"`
}
