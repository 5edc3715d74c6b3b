package repository

import (
	"brewhub-backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListBirthdayUsers returns users whose stored birth month/day matches and
// who have not received this year's bonus yet.
func (r *UserRepository) ListBirthdayUsers(month, day, year int) ([]entity.User, error) {
	var users []entity.User
	err := r.DB.
		Where("birth_month = ? AND birth_day = ? AND last_birthday_bonus_year < ?", month, day, year).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) MarkBirthdayBonus(userID uint, year int) error {
	return r.DB.Model(&entity.User{}).
		Where("id = ?", userID).
		Update("last_birthday_bonus_year", year).Error
}
