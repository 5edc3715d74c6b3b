package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brewhub-backend/entity"
	"brewhub-backend/repository"
	"brewhub-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const webhookSecret = "whsec_test"

func webhookFixture(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
		t.Fatalf("migrate: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	hoursRepo := repository.NewHoursRepository(db)
	schedule := services.NewScheduleService(hoursRepo, orderRepo)
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo, schedule, nil, nil)
	memberSvc := services.NewMembershipService(repository.NewMembershipRepository(db), nil)
	loyaltySvc := services.NewLoyaltyService(db, repository.NewLoyaltyRepository(db))

	ctl := NewWebhookController(orderSvc, memberSvc, loyaltySvc, webhookSecret)
	r := gin.New()
	r.POST("/webhooks/payment", ctl.HandlePayment)
	return r, db
}

func postWebhook(r *gin.Engine, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewBufferString(body))
	if signature != "" {
		req.Header.Set("X-Webhook-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	r, _ := webhookFixture(t)
	body := `{"type":"payment_succeeded","intent_id":"pi_1"}`

	if w := postWebhook(r, body, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing signature: code = %d, want 401", w.Code)
	}
	if w := postWebhook(r, body, "deadbeef"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong signature: code = %d, want 401", w.Code)
	}
	// a signature computed over a different body
	sig := services.SignWebhookBody([]byte(`{"type":"payment_failed"}`), webhookSecret)
	if w := postWebhook(r, body, sig); w.Code != http.StatusUnauthorized {
		t.Errorf("mismatched signature: code = %d, want 401", w.Code)
	}
}

func TestWebhookConfirmsPayment(t *testing.T) {
	r, db := webhookFixture(t)
	shop := entity.Shop{Slug: "s", Name: "S", Status: entity.ShopActive}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	o := entity.Order{
		ShopID:          shop.ID,
		GuestName:       "G",
		GuestEmail:      "g@x.com",
		TotalCents:      900,
		Status:          entity.OrderPending,
		PaymentIntentID: "pi_hook",
	}
	if err := db.Create(&o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	body := `{"type":"payment_succeeded","intent_id":"pi_hook"}`
	sig := services.SignWebhookBody([]byte(body), webhookSecret)

	if w := postWebhook(r, body, sig); w.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", w.Code, w.Body.String())
	}
	var reloaded entity.Order
	db.First(&reloaded, o.ID)
	if reloaded.Status != entity.OrderReceived {
		t.Errorf("status = %q, want received", reloaded.Status)
	}

	// replay is acknowledged and changes nothing
	if w := postWebhook(r, body, sig); w.Code != http.StatusOK {
		t.Errorf("replay code = %d, want 200", w.Code)
	}
	db.First(&reloaded, o.ID)
	if reloaded.Status != entity.OrderReceived {
		t.Errorf("replay moved order: %q", reloaded.Status)
	}
}

func TestWebhookUnknownIntent(t *testing.T) {
	r, _ := webhookFixture(t)
	body := `{"type":"payment_succeeded","intent_id":"pi_missing"}`
	sig := services.SignWebhookBody([]byte(body), webhookSecret)

	if w := postWebhook(r, body, sig); w.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", w.Code)
	}
}

func TestWebhookAcksUnknownEventTypes(t *testing.T) {
	r, _ := webhookFixture(t)
	body := `{"type":"customer_updated"}`
	sig := services.SignWebhookBody([]byte(body), webhookSecret)

	w := postWebhook(r, body, sig)
	if w.Code != http.StatusOK {
		t.Errorf("code = %d, want 200 so the processor stops retrying", w.Code)
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	r, _ := webhookFixture(t)
	body := `{"type":`
	sig := services.SignWebhookBody([]byte(body), webhookSecret)

	if w := postWebhook(r, body, sig); w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", w.Code)
	}
}
