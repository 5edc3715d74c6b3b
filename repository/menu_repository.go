package repository

import (
	"brewhub-backend/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// MenuItemPatch is a typed partial update: nil fields are left untouched.
type MenuItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"priceCents"`
	Category    *string `json:"category"`
	Available   *bool   `json:"available"`
}

func (r *MenuRepository) ListAvailable(shopID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("shop_id = ? AND available = ?", shopID, true).
		Order("category, name").Find(&items).Error
	return items, err
}

func (r *MenuRepository) ListAll(shopID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("shop_id = ?", shopID).Order("category, name").Find(&items).Error
	return items, err
}

func (r *MenuRepository) GetForShop(shopID, itemID uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.Where("id = ? AND shop_id = ?", itemID, shopID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) Create(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

// Patch applies only the fields supplied on the patch struct.
func (r *MenuRepository) Patch(shopID, itemID uint, p *MenuItemPatch) (int64, error) {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.PriceCents != nil {
		updates["price_cents"] = *p.PriceCents
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Available != nil {
		updates["available"] = *p.Available
	}
	if len(updates) == 0 {
		return 0, nil
	}
	res := r.DB.Model(&entity.MenuItem{}).
		Where("id = ? AND shop_id = ?", itemID, shopID).
		Updates(updates)
	return res.RowsAffected, res.Error
}
