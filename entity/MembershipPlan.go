package entity

import (
	"gorm.io/gorm"
)

type MembershipPlan struct {
	gorm.Model
	ShopID uint `json:"shopId" gorm:"index"`

	Name             string `json:"name"`
	PriceCents       int64  `json:"priceCents"`
	CoffeesPerPeriod int    `json:"coffeesPerPeriod"`
	PeriodDays       int    `json:"periodDays"`
}
