package repository

import (
	"brewhub-backend/entity"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	DB *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{DB: db}
}

func (r *MembershipRepository) ListPlans(shopID uint) ([]entity.MembershipPlan, error) {
	var plans []entity.MembershipPlan
	err := r.DB.Where("shop_id = ?", shopID).Order("price_cents").Find(&plans).Error
	return plans, err
}

func (r *MembershipRepository) GetPlan(shopID, planID uint) (*entity.MembershipPlan, error) {
	var p entity.MembershipPlan
	if err := r.DB.Where("id = ? AND shop_id = ?", planID, shopID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MembershipRepository) GetForUser(shopID, userID uint) (*entity.UserMembership, error) {
	var m entity.UserMembership
	err := r.DB.Where("shop_id = ? AND user_id = ?", shopID, userID).
		Order("id DESC").First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) GetByExternalRef(ref string) (*entity.UserMembership, error) {
	var m entity.UserMembership
	if err := r.DB.Where("external_ref = ?", ref).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) Create(m *entity.UserMembership) error {
	return r.DB.Create(m).Error
}

func (r *MembershipRepository) Save(m *entity.UserMembership) error {
	return r.DB.Save(m).Error
}

// DecrementCoffees is guarded the same way as status transitions: the WHERE
// on coffees_remaining makes a concurrent double-redeem lose with zero rows.
func (r *MembershipRepository) DecrementCoffees(membershipID uint) (int64, error) {
	res := r.DB.Model(&entity.UserMembership{}).
		Where("id = ? AND status = ? AND coffees_remaining > 0", membershipID, entity.MembershipActive).
		Update("coffees_remaining", gorm.Expr("coffees_remaining - 1"))
	return res.RowsAffected, res.Error
}
