package entity

import (
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot line. MenuItemName and PriceCents are
// copied from the menu at order time and never re-read from MenuItem.
type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId" gorm:"index"`
	Order   Order `json:"-"`

	MenuItemID uint `json:"menuItemId"`

	MenuItemName   string            `json:"menuItemName"`
	PriceCents     int64             `json:"priceCents"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty" gorm:"serializer:json"`
}
