package repository

import (
	"brewhub-backend/entity"

	"gorm.io/gorm"
)

type ShopRepository struct {
	DB *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{DB: db}
}

func (r *ShopRepository) GetBySlug(slug string) (*entity.Shop, error) {
	var s entity.Shop
	if err := r.DB.Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShopRepository) GetByID(id uint) (*entity.Shop, error) {
	var s entity.Shop
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShopRepository) ListActiveWithLoyalty() ([]entity.Shop, error) {
	var shops []entity.Shop
	err := r.DB.Where("status = ? AND loyalty_enabled = ?", entity.ShopActive, true).
		Find(&shops).Error
	return shops, err
}
