package entity

import (
	"gorm.io/gorm"
)

const (
	LoyaltyEarn       = "earn"
	LoyaltyRedeem     = "redeem"
	LoyaltyBonus      = "bonus"
	LoyaltyAdjustment = "adjustment"
)

// LoyaltyTransaction is an append-only ledger row. Exactly one of
// PointsEarned / PointsSpent is non-zero. BalanceAfter is a denormalized
// running total; the ledger itself is the source of truth and the balance
// must always equal the replay of all prior rows.
type LoyaltyTransaction struct {
	gorm.Model
	ShopID uint `json:"shopId" gorm:"index:idx_loyalty_shop_user"`
	UserID uint `json:"userId" gorm:"index:idx_loyalty_shop_user"`

	OrderID *uint `json:"orderId,omitempty"`

	PointsEarned int    `json:"pointsEarned"`
	PointsSpent  int    `json:"pointsSpent"`
	BalanceAfter int    `json:"balanceAfter"`
	Type         string `json:"type"`
	Description  string `json:"description"`
}
