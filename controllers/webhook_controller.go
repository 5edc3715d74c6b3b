package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"brewhub-backend/pkg/resp"
	"brewhub-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookController receives the payment processor's signed events. Both
// payment handlers are idempotent: replaying an event never double-moves an
// order and never errors.
type WebhookController struct {
	Orders      *services.OrderService
	Memberships *services.MembershipService
	Loyalty     *services.LoyaltyService
	Secret      string
}

func NewWebhookController(orders *services.OrderService, memberships *services.MembershipService, loyalty *services.LoyaltyService, secret string) *WebhookController {
	return &WebhookController{Orders: orders, Memberships: memberships, Loyalty: loyalty, Secret: secret}
}

// POST /webhooks/payment
func (w *WebhookController) HandlePayment(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		resp.BadRequest(c, "unreadable body")
		return
	}

	sig := c.GetHeader("X-Webhook-Signature")
	if !services.VerifyWebhookSignature(body, sig, w.Secret) {
		resp.Unauthorized(c, "bad signature")
		return
	}

	var ev services.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		resp.BadRequest(c, "malformed event")
		return
	}

	switch ev.Type {
	case services.EventPaymentSucceeded:
		err = w.Orders.ConfirmPayment(ev.IntentID, w.Loyalty)
	case services.EventPaymentFailed:
		err = w.Orders.FailPayment(ev.IntentID)
	case services.EventInvoicePaid:
		err = w.Memberships.HandleRenewal(&ev)
	case services.EventSubscriptionCanceled:
		err = w.Memberships.HandleCancellation(&ev)
	default:
		// unrecognized event types are acknowledged so the processor
		// stops retrying them
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": ev.Type})
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			resp.NotFound(c, "unknown reference")
			return
		}
		zap.L().Error("webhook handling failed", zap.String("type", ev.Type), zap.Error(err))
		resp.ServerError(c)
		return
	}
	resp.OK(c, gin.H{"received": ev.Type})
}
