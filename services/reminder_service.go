package services

import (
	"time"

	"brewhub-backend/entity"
	"brewhub-backend/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderLookahead is how far ahead of the pickup time the reminder fires.
const ReminderLookahead = 15 * time.Minute

// ReminderService is the periodic sweep that emails customers whose
// scheduled pickup is imminent. Delivery is at-least-once: a crash between
// send and mark-sent re-sends on the next tick, which is acceptable for a
// notification.
type ReminderService struct {
	DB       *gorm.DB
	Orders   *repository.OrderRepository
	Shops    *repository.ShopRepository
	Notifier Notifier

	now func() time.Time
}

func NewReminderService(db *gorm.DB, orders *repository.OrderRepository, shops *repository.ShopRepository, notifier Notifier) *ReminderService {
	return &ReminderService{DB: db, Orders: orders, Shops: shops, Notifier: notifier, now: time.Now}
}

// RunOnce performs a single sweep. One order's failure never aborts the
// rest of the batch.
func (s *ReminderService) RunOnce() {
	now := s.now()
	orders, err := s.Orders.ListDueReminders(now, ReminderLookahead)
	if err != nil {
		zap.L().Error("reminder sweep query failed", zap.Error(err))
		return
	}

	for i := range orders {
		if err := s.remind(&orders[i]); err != nil {
			zap.L().Error("reminder failed",
				zap.Uint("order_id", orders[i].ID),
				zap.Error(err))
			continue
		}
		if err := s.Orders.MarkReminderSent(orders[i].ID); err != nil {
			zap.L().Error("mark reminder_sent failed",
				zap.Uint("order_id", orders[i].ID),
				zap.Error(err))
		}
	}
}

func (s *ReminderService) remind(o *entity.Order) error {
	shop, err := s.Shops.GetByID(o.ShopID)
	if err != nil {
		return err
	}

	recipient := o.GuestEmail
	if o.UserID != nil {
		var u entity.User
		if err := s.DB.First(&u, *o.UserID).Error; err != nil {
			return err
		}
		recipient = u.Email
	}
	if recipient == "" {
		return nil
	}

	return s.Notifier.Send(TemplatePickupReminder, recipient, map[string]any{
		"orderId":    o.ID,
		"shop":       shop.Name,
		"pickupTime": o.ScheduledTime,
	})
}
