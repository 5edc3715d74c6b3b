package configs

import (
	"brewhub-backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedDemoShop creates a demo tenant with a small menu, weekday hours and a
// membership plan so a fresh install is usable immediately. Idempotent.
func SeedDemoShop() error {
	var count int64
	if err := db.Model(&entity.Shop{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	shop := entity.Shop{
		Slug:              "demo",
		Name:              "Demo Roasters",
		ContactEmail:      "hello@demo.brewhub.local",
		Status:            entity.ShopActive,
		LoyaltyEnabled:    true,
		MembershipEnabled: true,
		SchedulingEnabled: true,
	}
	if err := db.Create(&shop).Error; err != nil {
		return err
	}

	items := []entity.MenuItem{
		{ShopID: shop.ID, Name: "Espresso", PriceCents: 300, Category: "coffee", Available: true},
		{ShopID: shop.ID, Name: "Latte", PriceCents: 450, Category: "coffee", Available: true},
		{ShopID: shop.ID, Name: "Cold Brew", PriceCents: 500, Category: "coffee", Available: true},
		{ShopID: shop.ID, Name: "Croissant", PriceCents: 350, Category: "pastry", Available: true},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	for weekday := 0; weekday <= 6; weekday++ {
		h := entity.BusinessHours{
			ShopID:           shop.ID,
			Weekday:          weekday,
			OpenTime:         "07:00",
			CloseTime:        "18:00",
			Closed:           weekday == 0,
			MaxOrdersPerSlot: 5,
			SlotMinutes:      15,
		}
		if err := db.Create(&h).Error; err != nil {
			return err
		}
	}

	plan := entity.MembershipPlan{
		ShopID:           shop.ID,
		Name:             "Daily Cup",
		PriceCents:       2500,
		CoffeesPerPeriod: 30,
		PeriodDays:       30,
	}
	if err := db.Create(&plan).Error; err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("staffpass"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	staff := entity.User{
		Email:     "staff@demo.brewhub.local",
		Password:  string(hashed),
		FirstName: "Demo",
		LastName:  "Staff",
		Role:      "staff",
		ShopID:    shop.ID,
	}
	return db.Create(&staff).Error
}
