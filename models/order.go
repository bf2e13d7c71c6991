package models

import "time"

const (
	DeliveryStatusPending   = "Pending"
	DeliveryStatusDelivered = "Delivered"
)

type Order struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	CustomerName         string    `gorm:"type:varchar(100);not null;index" json:"customer_name"`
	FoodItemID           uint      `gorm:"not null;index" json:"food_item"`
	FoodItem             FoodItem  `gorm:"foreignKey:FoodItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DeliveryAssignedTo   *string   `gorm:"type:varchar(100)" json:"delivery_assigned_to"`
	DeliveryStatus       string    `gorm:"type:varchar(10);not null;default:'Pending'" json:"delivery_status"`
	DeliveryCrewMemberID *uint     `gorm:"index" json:"delivery_crew_member"`
	DeliveryCrewMember   *User     `gorm:"foreignKey:DeliveryCrewMemberID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt            time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null" json:"updated_at"`
}

// ValidDeliveryStatus reports whether s is one of the known delivery states.
func ValidDeliveryStatus(s string) bool {
	return s == DeliveryStatusPending || s == DeliveryStatusDelivered
}

// IsAssignedTo reports whether the order's delivery crew member is userID.
func (o *Order) IsAssignedTo(userID uint) bool {
	return o.DeliveryCrewMemberID != nil && *o.DeliveryCrewMemberID == userID
}
