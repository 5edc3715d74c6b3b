package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"brewhub-backend/entity"
	"brewhub-backend/repository"

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
		&entity.LoyaltyTransaction{},
		&entity.MembershipPlan{}, &entity.UserMembership{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedShop(t *testing.T, db *gorm.DB) *entity.Shop {
	t.Helper()
	shop := &entity.Shop{
		Slug:              "testshop",
		Name:              "Test Shop",
		Status:            entity.ShopActive,
		LoyaltyEnabled:    true,
		MembershipEnabled: true,
		SchedulingEnabled: true,
	}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	return shop
}

func seedMenuItem(t *testing.T, db *gorm.DB, shopID uint, name string, priceCents int64) *entity.MenuItem {
	t.Helper()
	item := &entity.MenuItem{
		ShopID:     shopID,
		Name:       name,
		PriceCents: priceCents,
		Category:   "coffee",
		Available:  true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Role: "customer"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedHours(t *testing.T, db *gorm.DB, shopID uint, open, close string, maxPerSlot, slotMinutes int) {
	t.Helper()
	for weekday := 0; weekday <= 6; weekday++ {
		h := entity.BusinessHours{
			ShopID:           shopID,
			Weekday:          weekday,
			OpenTime:         open,
			CloseTime:        close,
			Closed:           false,
			MaxOrdersPerSlot: maxPerSlot,
			SlotMinutes:      slotMinutes,
		}
		if err := db.Create(&h).Error; err != nil {
			t.Fatalf("seed hours: %v", err)
		}
	}
}

// ----- fakes -----

type fakeGateway struct {
	failIntents bool
	intents     int
	subs        int
}

func (g *fakeGateway) CreateIntent(amountCents int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	if g.failIntents {
		return nil, errors.New("gateway down")
	}
	g.intents++
	return &PaymentIntent{
		IntentID:     fmt.Sprintf("pi_test_%d", g.intents),
		ClientSecret: "cs_test",
	}, nil
}

func (g *fakeGateway) CreateSubscription(planRef string, amountCents int64, currency string, metadata map[string]string) (*Subscription, error) {
	g.subs++
	now := time.Now()
	return &Subscription{
		SubscriptionID: fmt.Sprintf("sub_test_%d", g.subs),
		PeriodStart:    now,
		PeriodEnd:      now.Add(30 * 24 * time.Hour),
	}, nil
}

type sentMail struct {
	Template  string
	Recipient string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor string // recipient that always errors
}

func (n *fakeNotifier) Send(template, recipient string, data map[string]any) error {
	if n.failFor != "" && recipient == n.failFor {
		return errors.New("smtp rejected")
	}
	n.mu.Lock()
	n.sent = append(n.sent, sentMail{Template: template, Recipient: recipient})
	n.mu.Unlock()
	return nil
}

func (n *fakeNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func newOrderService(t *testing.T, db *gorm.DB, gw PaymentGateway) *OrderService {
	t.Helper()
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	hoursRepo := repository.NewHoursRepository(db)
	schedule := NewScheduleService(hoursRepo, orderRepo)
	return NewOrderService(db, orderRepo, menuRepo, schedule, gw, &fakeNotifier{})
}
