package controllers

import (
	"errors"

	"brewhub-backend/pkg/resp"
	"brewhub-backend/services"
	"brewhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type MembershipController struct {
	Service *services.MembershipService
}

func NewMembershipController(service *services.MembershipService) *MembershipController {
	return &MembershipController{Service: service}
}

func membershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotActiveMember),
		errors.Is(err, services.ErrNoCoffeesLeft),
		errors.Is(err, services.ErrFeatureDisabled):
		resp.Conflict(c, err.Error())
	default:
		resp.ServerError(c)
	}
}

// GET /membership/plans
func (m *MembershipController) Plans(c *gin.Context) {
	shop := utils.CurrentShop(c)
	plans, err := m.Service.ListPlans(shop)
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, plans)
}

type subscribeReq struct {
	PlanID uint `json:"planId" binding:"required"`
}

// POST /membership/subscribe
func (m *MembershipController) Subscribe(c *gin.Context) {
	shop := utils.CurrentShop(c)
	var req subscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := m.Service.Subscribe(shop, utils.CurrentUserID(c), req.PlanID)
	if err != nil {
		membershipError(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /membership/me
func (m *MembershipController) Me(c *gin.Context) {
	shop := utils.CurrentShop(c)
	out, err := m.Service.GetForUser(shop, utils.CurrentUserID(c))
	if err != nil {
		membershipError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /membership/redeem-coffee
func (m *MembershipController) RedeemCoffee(c *gin.Context) {
	shop := utils.CurrentShop(c)
	out, err := m.Service.RedeemCoffee(shop, utils.CurrentUserID(c))
	if err != nil {
		membershipError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /membership/cancel
func (m *MembershipController) Cancel(c *gin.Context) {
	shop := utils.CurrentShop(c)
	out, err := m.Service.CancelAtPeriodEnd(shop, utils.CurrentUserID(c))
	if err != nil {
		membershipError(c, err)
		return
	}
	resp.OK(c, out)
}
