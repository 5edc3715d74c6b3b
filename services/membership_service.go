package services

import (
	"errors"
	"fmt"

	"brewhub-backend/entity"
	"brewhub-backend/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MembershipService struct {
	Repo    *repository.MembershipRepository
	Gateway PaymentGateway
}

func NewMembershipService(repo *repository.MembershipRepository, gateway PaymentGateway) *MembershipService {
	return &MembershipService{Repo: repo, Gateway: gateway}
}

func (s *MembershipService) ListPlans(shop *entity.Shop) ([]entity.MembershipPlan, error) {
	return s.Repo.ListPlans(shop.ID)
}

// Subscribe opens a processor subscription first, then records the
// membership, mirroring the intent-first order path: a gateway failure
// leaves no membership row behind.
func (s *MembershipService) Subscribe(shop *entity.Shop, userID, planID uint) (*entity.UserMembership, error) {
	if !shop.MembershipEnabled {
		return nil, ErrFeatureDisabled
	}
	plan, err := s.Repo.GetPlan(shop.ID, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if existing, err := s.Repo.GetForUser(shop.ID, userID); err == nil &&
		existing.Status == entity.MembershipActive {
		return nil, errors.New("already an active member")
	}

	sub, err := s.Gateway.CreateSubscription(
		fmt.Sprintf("plan-%d", plan.ID), plan.PriceCents, "usd",
		map[string]string{"shop": shop.Slug},
	)
	if err != nil {
		zap.L().Error("subscription creation failed", zap.String("shop", shop.Slug), zap.Error(err))
		return nil, ErrPaymentUnavailable
	}

	m := &entity.UserMembership{
		ShopID:             shop.ID,
		UserID:             userID,
		PlanID:             plan.ID,
		Status:             entity.MembershipActive,
		ExternalRef:        sub.SubscriptionID,
		CurrentPeriodStart: sub.PeriodStart,
		CurrentPeriodEnd:   sub.PeriodEnd,
		CoffeesRemaining:   plan.CoffeesPerPeriod,
	}
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MembershipService) GetForUser(shop *entity.Shop, userID uint) (*entity.UserMembership, error) {
	m, err := s.Repo.GetForUser(shop.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// RedeemCoffee burns one coffee from the current period's allotment.
func (s *MembershipService) RedeemCoffee(shop *entity.Shop, userID uint) (*entity.UserMembership, error) {
	m, err := s.GetForUser(shop, userID)
	if err != nil {
		return nil, err
	}
	if m.Status != entity.MembershipActive {
		return nil, ErrNotActiveMember
	}
	affected, err := s.Repo.DecrementCoffees(m.ID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNoCoffeesLeft
	}
	return s.GetForUser(shop, userID)
}

// CancelAtPeriodEnd flags the membership; the processor's final webhook
// drives the status change.
func (s *MembershipService) CancelAtPeriodEnd(shop *entity.Shop, userID uint) (*entity.UserMembership, error) {
	m, err := s.GetForUser(shop, userID)
	if err != nil {
		return nil, err
	}
	if m.Status != entity.MembershipActive {
		return nil, ErrNotActiveMember
	}
	m.CancelAtPeriodEnd = true
	if err := s.Repo.Save(m); err != nil {
		return nil, err
	}
	return m, nil
}

// HandleRenewal processes invoice_paid: rolls the period forward and resets
// the coffee allotment. Replaying the same period is a no-op.
func (s *MembershipService) HandleRenewal(ev *WebhookEvent) error {
	m, err := s.Repo.GetByExternalRef(ev.SubscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !ev.PeriodEnd.After(m.CurrentPeriodEnd) {
		return nil
	}
	if m.CancelAtPeriodEnd {
		m.Status = entity.MembershipCanceled
		return s.Repo.Save(m)
	}

	var plan entity.MembershipPlan
	if err := s.Repo.DB.First(&plan, m.PlanID).Error; err != nil {
		return err
	}
	m.Status = entity.MembershipActive
	m.CurrentPeriodStart = ev.PeriodStart
	m.CurrentPeriodEnd = ev.PeriodEnd
	m.CoffeesRemaining = plan.CoffeesPerPeriod
	return s.Repo.Save(m)
}

// HandleCancellation processes subscription_canceled from the processor.
func (s *MembershipService) HandleCancellation(ev *WebhookEvent) error {
	m, err := s.Repo.GetByExternalRef(ev.SubscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if m.Status == entity.MembershipCanceled {
		return nil
	}
	m.Status = entity.MembershipCanceled
	return s.Repo.Save(m)
}
