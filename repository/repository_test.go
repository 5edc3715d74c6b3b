package repository

import (
	"fmt"
	"strings"
	"testing"

	"brewhub-backend/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&entity.Shop{}, &entity.User{},
		&entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.BusinessHours{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestHoursUpsertReplacesWeekdayRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewHoursRepository(db)

	first := &entity.BusinessHours{
		ShopID: 1, Weekday: 2,
		OpenTime: "07:00", CloseTime: "18:00",
		MaxOrdersPerSlot: 5, SlotMinutes: 15,
	}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &entity.BusinessHours{
		ShopID: 1, Weekday: 2,
		OpenTime: "08:00", CloseTime: "20:00",
		MaxOrdersPerSlot: 3, SlotMinutes: 30,
	}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	db.Model(&entity.BusinessHours{}).Where("shop_id = ? AND weekday = ?", 1, 2).Count(&count)
	if count != 1 {
		t.Fatalf("rows for (shop, weekday) = %d, want 1", count)
	}

	h, err := repo.GetForWeekday(1, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if h.OpenTime != "08:00" || h.CloseTime != "20:00" || h.MaxOrdersPerSlot != 3 || h.SlotMinutes != 30 {
		t.Errorf("row not replaced: %+v", h)
	}
}

func TestMenuPatchAppliesOnlySetFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewMenuRepository(db)

	item := &entity.MenuItem{ShopID: 1, Name: "Latte", PriceCents: 450, Category: "coffee", Available: true}
	if err := repo.Create(item); err != nil {
		t.Fatalf("create: %v", err)
	}

	price := int64(500)
	affected, err := repo.Patch(1, item.ID, &MenuItemPatch{PriceCents: &price})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}

	got, err := repo.GetForShop(1, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PriceCents != 500 {
		t.Errorf("price = %d, want 500", got.PriceCents)
	}
	if got.Name != "Latte" || got.Category != "coffee" || !got.Available {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestMenuPatchEmptyAndWrongShop(t *testing.T) {
	db := newTestDB(t)
	repo := NewMenuRepository(db)
	item := &entity.MenuItem{ShopID: 1, Name: "Latte", PriceCents: 450, Available: true}
	if err := repo.Create(item); err != nil {
		t.Fatalf("create: %v", err)
	}

	if affected, err := repo.Patch(1, item.ID, &MenuItemPatch{}); err != nil || affected != 0 {
		t.Errorf("empty patch: affected=%d err=%v, want 0/nil", affected, err)
	}

	off := false
	if affected, err := repo.Patch(2, item.ID, &MenuItemPatch{Available: &off}); err != nil || affected != 0 {
		t.Errorf("cross-shop patch: affected=%d err=%v, want 0/nil", affected, err)
	}
	got, _ := repo.GetForShop(1, item.ID)
	if !got.Available {
		t.Error("cross-shop patch modified the row")
	}
}

func TestUpdateStatusGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	o := &entity.Order{
		ShopID: 1, GuestName: "G", GuestEmail: "g@x.com",
		TotalCents: 450, Status: entity.OrderPending, PaymentIntentID: "pi_guard",
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	affected, err := repo.UpdateStatusGuard(db, o.ID, entity.OrderPending, entity.OrderReceived)
	if err != nil || affected != 1 {
		t.Fatalf("first transition: affected=%d err=%v", affected, err)
	}

	// the same guarded transition loses the second time
	affected, err = repo.UpdateStatusGuard(db, o.ID, entity.OrderPending, entity.OrderReceived)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if affected != 0 {
		t.Errorf("replay affected = %d, want 0", affected)
	}

	var reloaded entity.Order
	db.First(&reloaded, o.ID)
	if reloaded.Status != entity.OrderReceived {
		t.Errorf("status = %q, want received", reloaded.Status)
	}
}
