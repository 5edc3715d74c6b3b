package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	MembershipActive   = "active"
	MembershipCanceled = "canceled"
	MembershipPastDue  = "past_due"
	MembershipExpired  = "expired"
)

// UserMembership mirrors the processor's subscription state per (user, shop).
// CoffeesRemaining is decremented by redemption and reset to the plan
// allotment on each renewal.
type UserMembership struct {
	gorm.Model
	ShopID uint `json:"shopId" gorm:"index"`
	UserID uint `json:"userId" gorm:"index"`

	PlanID uint           `json:"planId"`
	Plan   MembershipPlan `json:"-"`

	Status      string `json:"status"`
	ExternalRef string `json:"-" gorm:"uniqueIndex"`

	CurrentPeriodStart time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time `json:"currentPeriodEnd"`
	CoffeesRemaining   int       `json:"coffeesRemaining"`
	CancelAtPeriodEnd  bool      `json:"cancelAtPeriodEnd"`
}
