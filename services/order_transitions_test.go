package services

import (
	"errors"
	"testing"

	"brewhub-backend/entity"
	"brewhub-backend/repository"
)

func createPaidOrder(t *testing.T, svc *OrderService, shop *entity.Shop, userID *uint, itemID uint) *CreateOrderRes {
	t.Helper()
	req := &CreateOrderReq{Items: []OrderItemIn{{MenuItemID: itemID, Quantity: 1}}}
	if userID == nil {
		req.Guest = &GuestContact{Name: "G", Email: "g@x.com"}
	}
	res, err := svc.Create(shop, userID, req)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return res
}

func orderStatus(t *testing.T, svc *OrderService, id uint) string {
	t.Helper()
	var o entity.Order
	if err := svc.DB.First(&o, id).Error; err != nil {
		t.Fatalf("reload order %d: %v", id, err)
	}
	return o.Status
}

func intentID(t *testing.T, svc *OrderService, id uint) string {
	t.Helper()
	var o entity.Order
	if err := svc.DB.First(&o, id).Error; err != nil {
		t.Fatalf("reload order %d: %v", id, err)
	}
	return o.PaymentIntentID
}

func TestConfirmPaymentMovesPendingToReceived(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Latte", 450)
	svc := newOrderService(t, db, &fakeGateway{})

	res := createPaidOrder(t, svc, shop, nil, item.ID)
	if err := svc.ConfirmPayment(intentID(t, svc, res.ID), nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got := orderStatus(t, svc, res.ID); got != entity.OrderReceived {
		t.Errorf("status = %q, want received", got)
	}
}

func TestConfirmPaymentReplayIsNoOp(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Latte", 450)
	svc := newOrderService(t, db, &fakeGateway{})

	res := createPaidOrder(t, svc, shop, nil, item.ID)
	pi := intentID(t, svc, res.ID)

	for i := 0; i < 3; i++ {
		if err := svc.ConfirmPayment(pi, nil); err != nil {
			t.Fatalf("confirm replay %d: %v", i, err)
		}
	}
	if got := orderStatus(t, svc, res.ID); got != entity.OrderReceived {
		t.Errorf("status after replays = %q, want received", got)
	}
}

func TestConfirmPaymentNeverMovesBackward(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Latte", 450)
	svc := newOrderService(t, db, &fakeGateway{})

	res := createPaidOrder(t, svc, shop, nil, item.ID)
	pi := intentID(t, svc, res.ID)
	if err := svc.ConfirmPayment(pi, nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.AdvanceStatus(shop, res.ID, entity.OrderPreparing); err != nil {
		t.Fatalf("advance preparing: %v", err)
	}
	if err := svc.AdvanceStatus(shop, res.ID, entity.OrderReady); err != nil {
		t.Fatalf("advance ready: %v", err)
	}

	// late duplicate delivery while the order is already in progress
	if err := svc.ConfirmPayment(pi, nil); err != nil {
		t.Fatalf("late confirm: %v", err)
	}
	if got := orderStatus(t, svc, res.ID); got != entity.OrderReady {
		t.Errorf("late webhook moved order backward: status = %q", got)
	}
}

func TestConfirmPaymentEarnsLoyaltyForMembers(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Cold Brew", 500)
	u := seedUser(t, db, "member@example.com")
	svc := newOrderService(t, db, &fakeGateway{})
	loyalty := NewLoyaltyService(db, repository.NewLoyaltyRepository(db))

	res := createPaidOrder(t, svc, shop, &u.ID, item.ID)
	pi := intentID(t, svc, res.ID)
	if err := svc.ConfirmPayment(pi, loyalty); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	balance, err := loyalty.Balance(shop, u.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 5 {
		t.Errorf("balance = %d, want 5 (1 point per dollar on a $5.00 order)", balance)
	}

	// the replay must not double-earn
	if err := svc.ConfirmPayment(pi, loyalty); err != nil {
		t.Fatalf("replay: %v", err)
	}
	balance, _ = loyalty.Balance(shop, u.ID)
	if balance != 5 {
		t.Errorf("balance after replay = %d, want 5", balance)
	}
}

func TestConfirmPaymentSkipsLoyaltyForGuests(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Cold Brew", 500)
	svc := newOrderService(t, db, &fakeGateway{})
	loyalty := NewLoyaltyService(db, repository.NewLoyaltyRepository(db))

	res := createPaidOrder(t, svc, shop, nil, item.ID)
	if err := svc.ConfirmPayment(intentID(t, svc, res.ID), loyalty); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	var n int64
	db.Model(&entity.LoyaltyTransaction{}).Count(&n)
	if n != 0 {
		t.Errorf("guest order produced %d ledger rows, want 0", n)
	}
}

func TestFailPaymentCancelsPendingIdempotently(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Latte", 450)
	svc := newOrderService(t, db, &fakeGateway{})

	res := createPaidOrder(t, svc, shop, nil, item.ID)
	pi := intentID(t, svc, res.ID)

	if err := svc.FailPayment(pi); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if got := orderStatus(t, svc, res.ID); got != entity.OrderCancelled {
		t.Errorf("status = %q, want cancelled", got)
	}
	if err := svc.FailPayment(pi); err != nil {
		t.Errorf("replayed failure errored: %v", err)
	}
}

func TestAdvanceStatusHappyPath(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Latte", 450)
	svc := newOrderService(t, db, &fakeGateway{})

	res := createPaidOrder(t, svc, shop, nil, item.ID)
	if err := svc.ConfirmPayment(intentID(t, svc, res.ID), nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	for _, to := range []string{entity.OrderPreparing, entity.OrderReady, entity.OrderCompleted} {
		if err := svc.AdvanceStatus(shop, res.ID, to); err != nil {
			t.Fatalf("advance to %s: %v", to, err)
		}
	}

	var o entity.Order
	if err := db.First(&o, res.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if o.Status != entity.OrderCompleted {
		t.Errorf("status = %q, want completed", o.Status)
	}
	if o.ReadyAt == nil {
		t.Error("ready_at not stamped on the ready transition")
	}
}

func TestAdvanceStatusRejectsIllegalMoves(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Latte", 450)
	svc := newOrderService(t, db, &fakeGateway{})

	res := createPaidOrder(t, svc, shop, nil, item.ID)

	// pending orders only move via webhook or cancel
	if err := svc.AdvanceStatus(shop, res.ID, entity.OrderReceived); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("staff moved pending to received: err = %v", err)
	}
	if err := svc.AdvanceStatus(shop, res.ID, entity.OrderReady); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("skipped states: err = %v", err)
	}

	if err := svc.ConfirmPayment(intentID(t, svc, res.ID), nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.AdvanceStatus(shop, res.ID, entity.OrderCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("received jumped to completed: err = %v", err)
	}
	if err := svc.AdvanceStatus(shop, res.ID, entity.OrderPending); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("backward move allowed: err = %v", err)
	}

	if err := svc.AdvanceStatus(shop, 99999, entity.OrderPreparing); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown order err = %v, want ErrNotFound", err)
	}
}

func TestCancelFromAnyNonTerminalStatus(t *testing.T) {
	db := newTestDB(t)
	shop := seedShop(t, db)
	item := seedMenuItem(t, db, shop.ID, "Latte", 450)
	svc := newOrderService(t, db, &fakeGateway{})

	// cancel while preparing
	res := createPaidOrder(t, svc, shop, nil, item.ID)
	if err := svc.ConfirmPayment(intentID(t, svc, res.ID), nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.AdvanceStatus(shop, res.ID, entity.OrderPreparing); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := svc.Cancel(shop, res.ID); err != nil {
		t.Fatalf("cancel preparing order: %v", err)
	}
	if got := orderStatus(t, svc, res.ID); got != entity.OrderCancelled {
		t.Errorf("status = %q, want cancelled", got)
	}

	// terminal orders stay terminal
	if err := svc.Cancel(shop, res.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancelled a cancelled order: err = %v", err)
	}

	done := createPaidOrder(t, svc, shop, nil, item.ID)
	if err := svc.ConfirmPayment(intentID(t, svc, done.ID), nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	for _, to := range []string{entity.OrderPreparing, entity.OrderReady, entity.OrderCompleted} {
		if err := svc.AdvanceStatus(shop, done.ID, to); err != nil {
			t.Fatalf("advance to %s: %v", to, err)
		}
	}
	if err := svc.Cancel(shop, done.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancelled a completed order: err = %v", err)
	}
}

func TestTransitionTable(t *testing.T) {
	legal := []struct{ from, to string }{
		{entity.OrderPending, entity.OrderCancelled},
		{entity.OrderReceived, entity.OrderPreparing},
		{entity.OrderReceived, entity.OrderCancelled},
		{entity.OrderPreparing, entity.OrderReady},
		{entity.OrderPreparing, entity.OrderCancelled},
		{entity.OrderReady, entity.OrderCompleted},
		{entity.OrderReady, entity.OrderCancelled},
	}
	for _, tc := range legal {
		if !entity.CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	illegal := []struct{ from, to string }{
		{entity.OrderPending, entity.OrderReceived}, // webhook-only
		{entity.OrderPending, entity.OrderPreparing},
		{entity.OrderReceived, entity.OrderReady},
		{entity.OrderReady, entity.OrderPreparing},
		{entity.OrderCompleted, entity.OrderPending},
		{entity.OrderCompleted, entity.OrderCancelled},
		{entity.OrderCancelled, entity.OrderReceived},
	}
	for _, tc := range illegal {
		if entity.CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}
