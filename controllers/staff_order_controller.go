package controllers

import (
	"strconv"

	"brewhub-backend/entity"
	"brewhub-backend/pkg/resp"
	"brewhub-backend/services"
	"brewhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type StaffOrderController struct {
	Service *services.OrderService
}

func NewStaffOrderController(service *services.OrderService) *StaffOrderController {
	return &StaffOrderController{Service: service}
}

// GET /staff/orders?status=&page=&limit=
func (o *StaffOrderController) List(c *gin.Context) {
	shop := utils.CurrentShop(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	out, err := o.Service.ListForShop(shop, c.Query("status"), page, limit)
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, out)
}

// GET /staff/orders/:id
func (o *StaffOrderController) Detail(c *gin.Context) {
	shop := utils.CurrentShop(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	out, err := o.Service.DetailForStaff(shop, uint(id))
	if err != nil {
		orderError(c, err)
		return
	}
	resp.OK(c, out)
}

type advanceReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /staff/orders/:id/status
func (o *StaffOrderController) Advance(c *gin.Context) {
	shop := utils.CurrentShop(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req advanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	switch req.Status {
	case entity.OrderReceived, entity.OrderPreparing, entity.OrderReady,
		entity.OrderCompleted, entity.OrderCancelled:
	default:
		resp.BadRequest(c, "unknown status")
		return
	}

	if err := o.Service.AdvanceStatus(shop, uint(id), req.Status); err != nil {
		orderError(c, err)
		return
	}
	out, err := o.Service.DetailForStaff(shop, uint(id))
	if err != nil {
		orderError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /staff/orders/:id/cancel: administrative cancel
func (o *StaffOrderController) Cancel(c *gin.Context) {
	shop := utils.CurrentShop(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	if err := o.Service.Cancel(shop, uint(id)); err != nil {
		orderError(c, err)
		return
	}
	out, err := o.Service.DetailForStaff(shop, uint(id))
	if err != nil {
		orderError(c, err)
		return
	}
	resp.OK(c, out)
}
