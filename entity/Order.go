package entity

import (
	"time"

	"gorm.io/gorm"
)

// Order is the aggregate root of the order/line-item group. Exactly one of
// UserID or the guest contact pair (GuestName+GuestEmail) is set, and
// TrackingToken is present iff the order is a guest order.
type Order struct {
	gorm.Model
	ShopID uint `json:"shopId" gorm:"index"`
	Shop   Shop `json:"-"`

	UserID *uint `json:"userId,omitempty"`
	User   *User `json:"-"`

	GuestName  string `json:"guestName,omitempty"`
	GuestEmail string `json:"guestEmail,omitempty"`
	GuestPhone string `json:"guestPhone,omitempty"`

	TotalCents int64  `json:"totalCents"`
	Status     string `json:"status" gorm:"index"`

	PaymentIntentID string  `json:"-" gorm:"uniqueIndex"`
	TrackingToken   *string `json:"trackingToken,omitempty" gorm:"uniqueIndex"`

	IsScheduled   bool       `json:"isScheduled"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty" gorm:"index"`
	ReminderSent  bool       `json:"-"`
	ReadyAt       *time.Time `json:"readyAt,omitempty"`

	OrderItems []OrderItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// IsGuest reports whether the order is tracked by token instead of a member id.
func (o *Order) IsGuest() bool {
	return o.UserID == nil
}
