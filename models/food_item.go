package models

import "github.com/shopspring/decimal"

type FoodItem struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	IsItemOfTheDay bool            `gorm:"not null;default:false" json:"is_item_of_the_day"`
	CategoryID     *uint           `gorm:"index" json:"category"`
	Category       *Category       `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
