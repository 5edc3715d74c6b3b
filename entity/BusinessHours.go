package entity

import (
	"gorm.io/gorm"
)

// BusinessHours holds one row per (shop, weekday). Times are "HH:MM" in the
// shop's local time. Upserted by staff, read by the slot engine.
type BusinessHours struct {
	gorm.Model
	ShopID  uint `json:"shopId" gorm:"index:idx_hours_shop_weekday,unique"`
	Weekday int  `json:"weekday" gorm:"index:idx_hours_shop_weekday,unique"` // 0 = Sunday

	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	Closed    bool   `json:"closed"`

	MaxOrdersPerSlot int `json:"maxOrdersPerSlot"`
	SlotMinutes      int `json:"slotMinutes"`
}
