package repository

import (
	"time"

	"brewhub-backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetForShop(shopID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND shop_id = ?", orderID, shopID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetForUser(shopID, userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("id = ? AND shop_id = ? AND user_id = ?", orderID, shopID, userID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByTrackingToken(shopID uint, token string) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("shop_id = ? AND tracking_token = ?", shopID, token).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByIntentID(intentID string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("payment_intent_id = ?", intentID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID            uint       `json:"id"`
	TotalCents    int64      `json:"totalCents"`
	Status        string     `json:"status"`
	IsScheduled   bool       `json:"isScheduled"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (r *OrderRepository) ListForUser(shopID, userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, total_cents, status, is_scheduled, scheduled_time, created_at").
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

type StaffOrderSummary struct {
	ID            uint       `json:"id"`
	CustomerName  string     `json:"customerName"`
	TotalCents    int64      `json:"totalCents"`
	Status        string     `json:"status"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (r *OrderRepository) ListForShop(shopID uint, status string, page, limit int) ([]StaffOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	count := r.DB.Model(&entity.Order{}).Where("shop_id = ?", shopID)
	if status != "" {
		count = count.Where("status = ?", status)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID            uint
		UserID        *uint
		GuestName     string
		FirstName     string
		LastName      string
		TotalCents    int64
		Status        string
		ScheduledTime *time.Time
		CreatedAt     time.Time
	}
	q := r.DB.Table("orders AS o").
		Select("o.id, o.user_id, o.guest_name, u.first_name, u.last_name, o.total_cents, o.status, o.scheduled_time, o.created_at").
		Joins("LEFT JOIN users u ON u.id = o.user_id").
		Where("o.shop_id = ? AND o.deleted_at IS NULL", shopID)
	if status != "" {
		q = q.Where("o.status = ?", status)
	}
	if err := q.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]StaffOrderSummary, 0, len(rows))
	for _, row := range rows {
		name := row.GuestName
		if row.UserID != nil {
			name = row.FirstName + " " + row.LastName
		}
		out = append(out, StaffOrderSummary{
			ID:            row.ID,
			CustomerName:  name,
			TotalCents:    row.TotalCents,
			Status:        row.Status,
			ScheduledTime: row.ScheduledTime,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, total, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// ---------------- Status transitions ----------------

// UpdateStatusGuard performs the conditional transition UPDATE. The WHERE on
// the current status makes concurrent or replayed transitions lose cleanly:
// zero rows affected means the order was not in `from` anymore.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// UpdateStatusGuardStamp is UpdateStatusGuard plus extra column writes done
// in the same statement (used to stamp ready_at with the ready transition).
func (r *OrderRepository) UpdateStatusGuardStamp(tx *gorm.DB, orderID uint, from, to string, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// ---------------- Slot counting ----------------

// CountScheduledInWindow counts non-cancelled orders whose scheduled_time
// falls in [from, to). This is the read half of the documented
// check-then-insert capacity race.
func (r *OrderRepository) CountScheduledInWindow(shopID uint, from, to time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).
		Where("shop_id = ? AND is_scheduled = ? AND status <> ?", shopID, true, entity.OrderCancelled).
		Where("scheduled_time >= ? AND scheduled_time < ?", from, to).
		Count(&n).Error
	return n, err
}

// ---------------- Reminder sweep ----------------

func (r *OrderRepository) ListDueReminders(now time.Time, lookahead time.Duration) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.
		Where("is_scheduled = ? AND reminder_sent = ? AND status <> ?", true, false, entity.OrderCancelled).
		Where("scheduled_time > ? AND scheduled_time <= ?", now, now.Add(lookahead)).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) MarkReminderSent(orderID uint) error {
	return r.DB.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Update("reminder_sent", true).Error
}
