package services

import (
	"brewhub-backend/entity"
	"brewhub-backend/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Redemption granularity: 100 points = 500 cents ($5).
const (
	redeemUnitPoints = 100
	redeemUnitCents  = 500
)

// LoyaltyService owns the append-only points ledger. Every balance-affecting
// operation re-reads the balance and appends inside one transaction that
// holds a row lock on the user, so concurrent operations for the same user
// serialize instead of both reading a stale balance.
type LoyaltyService struct {
	DB   *gorm.DB
	Repo *repository.LoyaltyRepository
}

func NewLoyaltyService(db *gorm.DB, repo *repository.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{DB: db, Repo: repo}
}

// lockUser serializes ledger writers for one user. SQLite has no FOR UPDATE;
// its single-writer model covers the test path.
func (s *LoyaltyService) lockUser(tx *gorm.DB, userID uint) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var u entity.User
	return q.First(&u, userID).Error
}

func (s *LoyaltyService) append(shop *entity.Shop, userID uint, row *entity.LoyaltyTransaction) (*entity.LoyaltyTransaction, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.lockUser(tx, userID); err != nil {
			return err
		}
		balance, err := s.Repo.Balance(tx, shop.ID, userID)
		if err != nil {
			return err
		}
		delta := row.PointsEarned - row.PointsSpent
		if row.PointsSpent > 0 && balance < row.PointsSpent {
			return ErrInsufficientPoints
		}
		row.ShopID = shop.ID
		row.UserID = userID
		row.BalanceAfter = balance + delta
		return s.Repo.Append(tx, row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Earn credits 1 point per whole major currency unit spent; fractional
// amounts are discarded.
func (s *LoyaltyService) Earn(shop *entity.Shop, userID uint, orderID uint, amountCents int64) (*entity.LoyaltyTransaction, error) {
	points := int(amountCents / 100)
	if points <= 0 {
		return nil, nil
	}
	oid := orderID
	return s.append(shop, userID, &entity.LoyaltyTransaction{
		OrderID:      &oid,
		PointsEarned: points,
		Type:         entity.LoyaltyEarn,
		Description:  "points earned on order",
	})
}

type RedeemResult struct {
	PointsRedeemed int   `json:"pointsRedeemed"`
	CreditCents    int64 `json:"creditCents"`
	BalanceAfter   int   `json:"balanceAfter"`
}

// Redeem floors the request to the nearest 100-point multiple before
// validating, so redeem(150) redeems 100. Kept exactly as the legacy
// behavior; see the pinning test.
func (s *LoyaltyService) Redeem(shop *entity.Shop, userID uint, points int) (*RedeemResult, error) {
	points = (points / redeemUnitPoints) * redeemUnitPoints
	if points < redeemUnitPoints {
		return nil, ErrMinRedeem
	}
	row, err := s.append(shop, userID, &entity.LoyaltyTransaction{
		PointsSpent: points,
		Type:        entity.LoyaltyRedeem,
		Description: "points redeemed for credit",
	})
	if err != nil {
		return nil, err
	}
	return &RedeemResult{
		PointsRedeemed: points,
		CreditCents:    PointsValueCents(points),
		BalanceAfter:   row.BalanceAfter,
	}, nil
}

// AddBonus grants promotional points (birthday, referral, promos).
func (s *LoyaltyService) AddBonus(shop *entity.Shop, userID uint, points int, reason string) (*entity.LoyaltyTransaction, error) {
	if points <= 0 {
		return nil, nil
	}
	return s.append(shop, userID, &entity.LoyaltyTransaction{
		PointsEarned: points,
		Type:         entity.LoyaltyBonus,
		Description:  reason,
	})
}

func (s *LoyaltyService) Balance(shop *entity.Shop, userID uint) (int, error) {
	return s.Repo.Balance(s.DB, shop.ID, userID)
}

func (s *LoyaltyService) History(shop *entity.Shop, userID uint, limit int) ([]entity.LoyaltyTransaction, error) {
	return s.Repo.History(shop.ID, userID, limit)
}

// PointsValueCents converts points to credit: 100 points = $5.
func PointsValueCents(points int) int64 {
	return int64(points/redeemUnitPoints) * redeemUnitCents
}

// MaxRedeemable returns the most points that neither exceed the balance nor
// discount more than the full order, floored to the nearest 100.
func MaxRedeemable(orderTotalCents int64, balance int) int {
	capPoints := int(orderTotalCents/redeemUnitCents) * redeemUnitPoints
	m := balance
	if capPoints < m {
		m = capPoints
	}
	return (m / redeemUnitPoints) * redeemUnitPoints
}
