package services

import (
	"errors"
	"time"

	"brewhub-backend/entity"
	"brewhub-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	MenuRepo *repository.MenuRepository
	Schedule *ScheduleService
	Gateway  PaymentGateway
	Notifier Notifier
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	menuRepo *repository.MenuRepository,
	schedule *ScheduleService,
	gateway PaymentGateway,
	notifier Notifier,
) *OrderService {
	return &OrderService{
		DB:       db,
		Repo:     repo,
		MenuRepo: menuRepo,
		Schedule: schedule,
		Gateway:  gateway,
		Notifier: notifier,
	}
}

// ----- DTOs from controllers -----

type OrderItemIn struct {
	MenuItemID     uint              `json:"menuItemId"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations"`
}

type GuestContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateOrderReq struct {
	Items         []OrderItemIn `json:"items"`
	Guest         *GuestContact `json:"guest"`
	ScheduledTime *time.Time    `json:"scheduledTime"`
}

type CreateOrderRes struct {
	ID            uint    `json:"id"`
	TotalCents    int64   `json:"totalCents"`
	Status        string  `json:"status"`
	TrackingToken *string `json:"trackingToken,omitempty"`
	ClientSecret  string  `json:"clientSecret"`
}

// ----- Create -----

// Create validates the draft, computes the total server-side from price
// snapshots, creates the payment intent first, then persists order and items
// in one transaction. A gateway failure therefore leaves no orphan rows.
func (s *OrderService) Create(shop *entity.Shop, userID *uint, req *CreateOrderReq) (*CreateOrderRes, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if userID != nil && req.Guest != nil {
		return nil, ErrIdentityConflict
	}
	if userID == nil {
		if req.Guest == nil || req.Guest.Name == "" || req.Guest.Email == "" {
			return nil, ErrGuestContact
		}
	}

	if req.ScheduledTime != nil {
		if !shop.SchedulingEnabled {
			return nil, ErrFeatureDisabled
		}
		if err := s.Schedule.ValidateScheduledTime(shop, *req.ScheduledTime); err != nil {
			return nil, err
		}
	}

	// snapshot name and price per line; the client-supplied total is never read
	var total int64
	lines := make([]entity.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		if in.Quantity < 1 {
			return nil, ErrBadQuantity
		}
		m, err := s.MenuRepo.GetForShop(shop.ID, in.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownMenuItem
			}
			return nil, err
		}
		if !m.Available {
			return nil, ErrUnknownMenuItem
		}
		total += m.PriceCents * int64(in.Quantity)
		lines = append(lines, entity.OrderItem{
			MenuItemID:     m.ID,
			MenuItemName:   m.Name,
			PriceCents:     m.PriceCents,
			Quantity:       in.Quantity,
			Customizations: in.Customizations,
		})
	}

	intent, err := s.Gateway.CreateIntent(total, "usd", map[string]string{
		"shop": shop.Slug,
	})
	if err != nil {
		zap.L().Error("payment intent creation failed", zap.String("shop", shop.Slug), zap.Error(err))
		return nil, ErrPaymentUnavailable
	}

	order := entity.Order{
		ShopID:          shop.ID,
		UserID:          userID,
		TotalCents:      total,
		Status:          entity.OrderPending,
		PaymentIntentID: intent.IntentID,
	}
	if req.Guest != nil {
		order.GuestName = req.Guest.Name
		order.GuestEmail = req.Guest.Email
		order.GuestPhone = req.Guest.Phone
	}
	if userID == nil {
		// the token is the guest's only credential for later lookup
		token := uuid.NewString()
		order.TrackingToken = &token
	}
	if req.ScheduledTime != nil {
		order.IsScheduled = true
		order.ScheduledTime = req.ScheduledTime
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
			if err := s.Repo.CreateOrderItem(tx, &lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if recipient := s.recipientEmail(&order); recipient != "" {
		SendAsync(s.Notifier, TemplateOrderConfirmation, recipient, map[string]any{
			"orderId": order.ID,
			"shop":    shop.Name,
			"total":   total,
		})
	}

	return &CreateOrderRes{
		ID:            order.ID,
		TotalCents:    order.TotalCents,
		Status:        order.Status,
		TrackingToken: order.TrackingToken,
		ClientSecret:  intent.ClientSecret,
	}, nil
}

func (s *OrderService) recipientEmail(o *entity.Order) string {
	if o.IsGuest() {
		return o.GuestEmail
	}
	var u entity.User
	if err := s.DB.First(&u, *o.UserID).Error; err != nil {
		return ""
	}
	return u.Email
}

// ----- Lookups -----

type OrderDetail struct {
	ID            uint               `json:"id"`
	TotalCents    int64              `json:"totalCents"`
	Status        string             `json:"status"`
	IsScheduled   bool               `json:"isScheduled"`
	ScheduledTime *time.Time         `json:"scheduledTime,omitempty"`
	ReadyAt       *time.Time         `json:"readyAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	Items         []entity.OrderItem `json:"items"`
}

func (s *OrderService) detail(o *entity.Order) (*OrderDetail, error) {
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{
		ID:            o.ID,
		TotalCents:    o.TotalCents,
		Status:        o.Status,
		IsScheduled:   o.IsScheduled,
		ScheduledTime: o.ScheduledTime,
		ReadyAt:       o.ReadyAt,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}, nil
}

// TrackByToken is the guest lookup. The token is treated as a bearer
// credential; a malformed token and an unknown token are the same not-found.
func (s *OrderService) TrackByToken(shop *entity.Shop, token string) (*OrderDetail, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	o, err := s.Repo.GetByTrackingToken(shop.ID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.detail(o)
}

// DetailForUser only returns orders owned by the requesting member.
func (s *OrderService) DetailForUser(shop *entity.Shop, userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetForUser(shop.ID, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.detail(o)
}

// DetailForStaff returns any order belonging to the staff member's shop.
func (s *OrderService) DetailForStaff(shop *entity.Shop, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetForShop(shop.ID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.detail(o)
}

func (s *OrderService) ListForUser(shop *entity.Shop, userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListForUser(shop.ID, userID, limit)
}

type StaffOrderListOut struct {
	Items []repository.StaffOrderSummary `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func (s *OrderService) ListForShop(shop *entity.Shop, status string, page, limit int) (*StaffOrderListOut, error) {
	items, total, err := s.Repo.ListForShop(shop.ID, status, page, limit)
	if err != nil {
		return nil, err
	}
	return &StaffOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}
