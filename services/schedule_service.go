package services

import (
	"errors"
	"time"

	"brewhub-backend/entity"
	"brewhub-backend/repository"

	"gorm.io/gorm"
)

const (
	// minimum advance notice for a scheduled pickup
	MinPickupLead = 30 * time.Minute
	// maximum advance booking window
	MaxPickupWindow = 7 * 24 * time.Hour
)

// ScheduleService decides whether a shop accepts a pickup at a given time
// and enumerates bookable slots.
type ScheduleService struct {
	Hours  *repository.HoursRepository
	Orders *repository.OrderRepository

	now func() time.Time
}

func NewScheduleService(hours *repository.HoursRepository, orders *repository.OrderRepository) *ScheduleService {
	return &ScheduleService{Hours: hours, Orders: orders, now: time.Now}
}

func parseClock(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// IsOpen reports whether the shop accepts orders at t: the weekday row must
// exist, not be marked closed, and t must fall in [open, close).
func (s *ScheduleService) IsOpen(shop *entity.Shop, t time.Time) (bool, error) {
	h, err := s.Hours.GetForWeekday(shop.ID, int(t.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if h.Closed {
		return false, nil
	}
	open, err := parseClock(t, h.OpenTime)
	if err != nil {
		return false, err
	}
	closeAt, err := parseClock(t, h.CloseTime)
	if err != nil {
		return false, err
	}
	return !t.Before(open) && t.Before(closeAt), nil
}

type SlotCapacity struct {
	Current   int64 `json:"current"`
	Max       int   `json:"max"`
	Available bool  `json:"available"`
}

// Capacity counts non-cancelled orders in [t, t+slot). This is a
// point-in-time check, not a reservation: two concurrent requests can both
// see an open slot and both book it, overshooting the limit by one.
func (s *ScheduleService) Capacity(shop *entity.Shop, t time.Time) (*SlotCapacity, error) {
	h, err := s.Hours.GetForWeekday(shop.ID, int(t.Weekday()))
	if err != nil {
		return nil, err
	}
	window := time.Duration(h.SlotMinutes) * time.Minute
	current, err := s.Orders.CountScheduledInWindow(shop.ID, t, t.Add(window))
	if err != nil {
		return nil, err
	}
	return &SlotCapacity{
		Current:   current,
		Max:       h.MaxOrdersPerSlot,
		Available: current < int64(h.MaxOrdersPerSlot),
	}, nil
}

type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Current   int64     `json:"current"`
	Max       int       `json:"max"`
	Available bool      `json:"available"`
}

// AvailableSlots enumerates the day's slots at slot-duration increments,
// dropping any slot that starts before now+30m or after now+7d. Regenerated
// fresh on every call, never cached.
func (s *ScheduleService) AvailableSlots(shop *entity.Shop, day time.Time) ([]Slot, error) {
	h, err := s.Hours.GetForWeekday(shop.ID, int(day.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if h.Closed || h.SlotMinutes <= 0 {
		return nil, nil
	}

	open, err := parseClock(day, h.OpenTime)
	if err != nil {
		return nil, err
	}
	closeAt, err := parseClock(day, h.CloseTime)
	if err != nil {
		return nil, err
	}

	now := s.now()
	earliest := now.Add(MinPickupLead)
	latest := now.Add(MaxPickupWindow)
	step := time.Duration(h.SlotMinutes) * time.Minute

	var slots []Slot
	for start := open; start.Before(closeAt); start = start.Add(step) {
		if start.Before(earliest) || start.After(latest) {
			continue
		}
		c, err := s.Capacity(shop, start)
		if err != nil {
			return nil, err
		}
		slots = append(slots, Slot{
			Start:     start,
			End:       start.Add(step),
			Current:   c.Current,
			Max:       c.Max,
			Available: c.Available,
		})
	}
	return slots, nil
}

// ValidateScheduledTime rejects a requested pickup time with a distinct
// reason: too soon, too far, outside hours, or fully booked.
func (s *ScheduleService) ValidateScheduledTime(shop *entity.Shop, t time.Time) error {
	now := s.now()
	if t.Before(now.Add(MinPickupLead)) {
		return ErrPickupTooSoon
	}
	if t.After(now.Add(MaxPickupWindow)) {
		return ErrPickupTooFar
	}
	open, err := s.IsOpen(shop, t)
	if err != nil {
		return err
	}
	if !open {
		return ErrShopClosed
	}
	c, err := s.Capacity(shop, t)
	if err != nil {
		return err
	}
	if !c.Available {
		return ErrSlotFull
	}
	return nil
}
