package services

import (
	"errors"
	"time"

	"brewhub-backend/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ----- Staff transitions -----

// AdvanceStatus moves an order along received, preparing, ready, completed,
// or cancels any non-terminal order. Transitions outside the
// table are rejected; the conditional UPDATE closes the race against a
// concurrent transition.
func (s *OrderService) AdvanceStatus(shop *entity.Shop, orderID uint, to string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetForShop(shop.ID, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !entity.CanTransition(o.Status, to) {
			return ErrInvalidTransition
		}

		var affected int64
		if to == entity.OrderReady {
			// ready_at feeds the reminder sweep and the tracking view
			affected, err = s.Repo.UpdateStatusGuardStamp(tx, o.ID, o.Status, to,
				map[string]any{"ready_at": time.Now()})
		} else {
			affected, err = s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
		}
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
}

// Cancel is the administrative cancel, legal from any non-terminal status.
func (s *OrderService) Cancel(shop *entity.Shop, orderID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetForShop(shop.ID, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if entity.IsTerminalStatus(o.Status) {
			return ErrInvalidTransition
		}
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, entity.OrderCancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
}

// ----- Webhook-driven transitions -----

// LoyaltyEarner decouples the webhook path from the loyalty service.
type LoyaltyEarner interface {
	Earn(shop *entity.Shop, userID uint, orderID uint, amountCents int64) (*entity.LoyaltyTransaction, error)
}

// ConfirmPayment handles payment_succeeded. Idempotent: replays and
// out-of-order deliveries are no-ops, never errors and never backward moves.
func (s *OrderService) ConfirmPayment(intentID string, loyalty LoyaltyEarner) error {
	o, err := s.Repo.GetByIntentID(intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	affected, err := s.Repo.UpdateStatusGuard(s.DB, o.ID, entity.OrderPending, entity.OrderReceived)
	if err != nil {
		return err
	}
	if affected == 0 {
		// already past pending (replay) or cancelled, nothing to do
		return nil
	}

	zap.L().Info("order payment confirmed",
		zap.Uint("order_id", o.ID),
		zap.String("intent_id", intentID))

	if o.UserID != nil && loyalty != nil {
		var shop entity.Shop
		if err := s.DB.First(&shop, o.ShopID).Error; err == nil && shop.LoyaltyEnabled {
			if _, err := loyalty.Earn(&shop, *o.UserID, o.ID, o.TotalCents); err != nil {
				// points are a side effect; the confirmed payment stands
				zap.L().Error("loyalty earn failed", zap.Uint("order_id", o.ID), zap.Error(err))
			}
		}
	}
	return nil
}

// FailPayment handles payment_failed: pending to cancelled, idempotent.
func (s *OrderService) FailPayment(intentID string) error {
	o, err := s.Repo.GetByIntentID(intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	affected, err := s.Repo.UpdateStatusGuard(s.DB, o.ID, entity.OrderPending, entity.OrderCancelled)
	if err != nil {
		return err
	}
	if affected == 0 {
		return nil
	}
	zap.L().Info("order cancelled on payment failure",
		zap.Uint("order_id", o.ID),
		zap.String("intent_id", intentID))
	return nil
}
