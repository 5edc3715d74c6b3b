package repository

import (
	"brewhub-backend/entity"

	"gorm.io/gorm"
)

type LoyaltyRepository struct {
	DB *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) *LoyaltyRepository {
	return &LoyaltyRepository{DB: db}
}

// Balance replays the ledger: sum of earned minus spent for (user, shop).
// Callers doing a read-then-append must run this on the locked transaction.
func (r *LoyaltyRepository) Balance(tx *gorm.DB, shopID, userID uint) (int, error) {
	var row struct{ Balance int }
	err := tx.Model(&entity.LoyaltyTransaction{}).
		Select("COALESCE(SUM(points_earned - points_spent), 0) AS balance").
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Scan(&row).Error
	return row.Balance, err
}

func (r *LoyaltyRepository) Append(tx *gorm.DB, t *entity.LoyaltyTransaction) error {
	return tx.Create(t).Error
}

func (r *LoyaltyRepository) History(shopID, userID uint, limit int) ([]entity.LoyaltyTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []entity.LoyaltyTransaction
	err := r.DB.Where("shop_id = ? AND user_id = ?", shopID, userID).
		Order("id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *LoyaltyRepository) LastBalanceAfter(shopID, userID uint) (int, error) {
	var row entity.LoyaltyTransaction
	err := r.DB.Where("shop_id = ? AND user_id = ?", shopID, userID).
		Order("id DESC").First(&row).Error
	if err != nil {
		return 0, err
	}
	return row.BalanceAfter, nil
}
