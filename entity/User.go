package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"` // customer | staff

	// staff accounts belong to one shop; customers are platform-wide (ShopID = 0)
	ShopID uint `json:"shopId"`

	// birthday bonus bookkeeping
	BirthMonth            int `json:"birthMonth"`
	BirthDay              int `json:"birthDay"`
	LastBirthdayBonusYear int `json:"-"`

	Orders []Order `json:"-" gorm:"foreignKey:UserID"`
}
