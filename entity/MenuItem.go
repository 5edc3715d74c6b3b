package entity

import (
	"gorm.io/gorm"
)

// MenuItem prices are stored in minor currency units. Order items snapshot
// name and price at creation time, so editing a MenuItem never changes
// historical orders.
type MenuItem struct {
	gorm.Model
	ShopID uint `json:"shopId" gorm:"index"`
	Shop   Shop `json:"-"`

	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Category    string `json:"category"`
	Available   bool   `json:"available"`

	OrderItems []OrderItem `json:"-"`
}
