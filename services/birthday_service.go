package services

import (
	"time"

	"brewhub-backend/repository"

	"go.uber.org/zap"
)

// BirthdayBonusPoints is the flat grant for a member's birthday.
const BirthdayBonusPoints = 50

// BirthdayService runs daily and grants the birthday bonus at most once per
// calendar year per user, keyed on last_birthday_bonus_year. The grant lands
// in the ledger of every active loyalty-enabled shop.
type BirthdayService struct {
	Users    *repository.UserRepository
	Shops    *repository.ShopRepository
	Loyalty  *LoyaltyService
	Notifier Notifier

	now func() time.Time
}

func NewBirthdayService(users *repository.UserRepository, shops *repository.ShopRepository, loyalty *LoyaltyService, notifier Notifier) *BirthdayService {
	return &BirthdayService{Users: users, Shops: shops, Loyalty: loyalty, Notifier: notifier, now: time.Now}
}

// RunOnce grants bonuses for today's birthdays. Per-item isolation: one
// user's failure never blocks the rest.
func (s *BirthdayService) RunOnce() {
	today := s.now()
	users, err := s.Users.ListBirthdayUsers(int(today.Month()), today.Day(), today.Year())
	if err != nil {
		zap.L().Error("birthday sweep query failed", zap.Error(err))
		return
	}
	if len(users) == 0 {
		return
	}

	shops, err := s.Shops.ListActiveWithLoyalty()
	if err != nil {
		zap.L().Error("birthday sweep shop lookup failed", zap.Error(err))
		return
	}

	for i := range users {
		u := &users[i]
		granted := false
		for j := range shops {
			if _, err := s.Loyalty.AddBonus(&shops[j], u.ID, BirthdayBonusPoints, "birthday bonus"); err != nil {
				zap.L().Error("birthday bonus failed",
					zap.Uint("user_id", u.ID),
					zap.Uint("shop_id", shops[j].ID),
					zap.Error(err))
				continue
			}
			granted = true
		}
		if !granted {
			continue
		}
		// the year marker makes the grant idempotent per calendar year
		if err := s.Users.MarkBirthdayBonus(u.ID, today.Year()); err != nil {
			zap.L().Error("birthday marker update failed", zap.Uint("user_id", u.ID), zap.Error(err))
			continue
		}
		if u.Email != "" && s.Notifier != nil {
			SendAsync(s.Notifier, TemplateBirthdayBonus, u.Email, map[string]any{
				"points": BirthdayBonusPoints,
			})
		}
	}
}
