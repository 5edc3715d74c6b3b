package entity

import (
	"gorm.io/gorm"
)

const (
	ShopActive    = "active"
	ShopSuspended = "suspended"
	ShopInactive  = "inactive"
)

// Shop is the tenant root. Every other entity carries ShopID and every
// query must filter by it.
type Shop struct {
	gorm.Model
	Slug         string `json:"slug" gorm:"uniqueIndex"`
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
	Status       string `json:"status"`

	LoyaltyEnabled    bool `json:"loyaltyEnabled"`
	MembershipEnabled bool `json:"membershipEnabled"`
	SchedulingEnabled bool `json:"schedulingEnabled"`
	DeliveryEnabled   bool `json:"deliveryEnabled"`
	CateringEnabled   bool `json:"cateringEnabled"`

	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `json:"-"`
}
