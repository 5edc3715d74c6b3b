package repository

import (
	"brewhub-backend/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HoursRepository struct {
	DB *gorm.DB
}

func NewHoursRepository(db *gorm.DB) *HoursRepository {
	return &HoursRepository{DB: db}
}

func (r *HoursRepository) GetForWeekday(shopID uint, weekday int) (*entity.BusinessHours, error) {
	var h entity.BusinessHours
	err := r.DB.Where("shop_id = ? AND weekday = ?", shopID, weekday).First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HoursRepository) ListForShop(shopID uint) ([]entity.BusinessHours, error) {
	var hours []entity.BusinessHours
	err := r.DB.Where("shop_id = ?", shopID).Order("weekday").Find(&hours).Error
	return hours, err
}

// Upsert writes the (shop, weekday) row, replacing an existing one. Hours
// rows are upserted, never appended.
func (r *HoursRepository) Upsert(h *entity.BusinessHours) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}, {Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"open_time", "close_time", "closed", "max_orders_per_slot", "slot_minutes", "updated_at",
		}),
	}).Create(h).Error
}
