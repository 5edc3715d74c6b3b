package controllers

import (
	"errors"
	"strconv"

	"brewhub-backend/pkg/resp"
	"brewhub-backend/services"
	"brewhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

// orderError maps service errors onto the response envelope. Validation and
// conflict reasons reach the client verbatim; everything else is generic.
func orderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrBadQuantity),
		errors.Is(err, services.ErrGuestContact),
		errors.Is(err, services.ErrIdentityConflict):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUnknownMenuItem):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPickupTooSoon),
		errors.Is(err, services.ErrPickupTooFar),
		errors.Is(err, services.ErrShopClosed),
		errors.Is(err, services.ErrSlotFull),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrFeatureDisabled):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c)
	}
}

// POST /orders: member order (authenticated)
func (o *OrderController) Create(c *gin.Context) {
	shop := utils.CurrentShop(c)
	userID := utils.CurrentUserID(c)

	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	req.Guest = nil

	out, err := o.Service.Create(shop, &userID, &req)
	if err != nil {
		orderError(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /guest/orders: guest order, no session
func (o *OrderController) CreateGuest(c *gin.Context) {
	shop := utils.CurrentShop(c)

	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := o.Service.Create(shop, nil, &req)
	if err != nil {
		orderError(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /track/:token: guest status lookup, token is the only credential
func (o *OrderController) Track(c *gin.Context) {
	shop := utils.CurrentShop(c)
	out, err := o.Service.TrackByToken(shop, c.Param("token"))
	if err != nil {
		orderError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id: member fetches their own order
func (o *OrderController) Detail(c *gin.Context) {
	shop := utils.CurrentShop(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	out, err := o.Service.DetailForUser(shop, utils.CurrentUserID(c), uint(id))
	if err != nil {
		orderError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders: member order history
func (o *OrderController) ListForMe(c *gin.Context) {
	shop := utils.CurrentShop(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	out, err := o.Service.ListForUser(shop, utils.CurrentUserID(c), limit)
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, out)
}
