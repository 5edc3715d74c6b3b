package controllers

import (
	"errors"
	"strconv"

	"brewhub-backend/pkg/resp"
	"brewhub-backend/services"
	"brewhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoyaltyController struct {
	Service *services.LoyaltyService
}

func NewLoyaltyController(service *services.LoyaltyService) *LoyaltyController {
	return &LoyaltyController{Service: service}
}

// GET /loyalty/balance
func (l *LoyaltyController) Balance(c *gin.Context) {
	shop := utils.CurrentShop(c)
	if !shop.LoyaltyEnabled {
		resp.Conflict(c, services.ErrFeatureDisabled.Error())
		return
	}
	balance, err := l.Service.Balance(shop, utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, gin.H{"balance": balance})
}

// GET /loyalty/history
func (l *LoyaltyController) History(c *gin.Context) {
	shop := utils.CurrentShop(c)
	if !shop.LoyaltyEnabled {
		resp.Conflict(c, services.ErrFeatureDisabled.Error())
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := l.Service.History(shop, utils.CurrentUserID(c), limit)
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, rows)
}

type redeemReq struct {
	Points int `json:"points" binding:"required,min=1"`
}

// POST /loyalty/redeem
func (l *LoyaltyController) Redeem(c *gin.Context) {
	shop := utils.CurrentShop(c)
	if !shop.LoyaltyEnabled {
		resp.Conflict(c, services.ErrFeatureDisabled.Error())
		return
	}
	var req redeemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := l.Service.Redeem(shop, utils.CurrentUserID(c), req.Points)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMinRedeem):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrInsufficientPoints):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c)
		}
		return
	}
	resp.OK(c, out)
}
