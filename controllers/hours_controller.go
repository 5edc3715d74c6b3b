package controllers

import (
	"time"

	"brewhub-backend/entity"
	"brewhub-backend/pkg/resp"
	"brewhub-backend/repository"
	"brewhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type HoursController struct {
	Repo *repository.HoursRepository
}

func NewHoursController(repo *repository.HoursRepository) *HoursController {
	return &HoursController{Repo: repo}
}

// GET /staff/hours
func (h *HoursController) List(c *gin.Context) {
	shop := utils.CurrentShop(c)
	hours, err := h.Repo.ListForShop(shop.ID)
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, hours)
}

type upsertHoursReq struct {
	Weekday          int    `json:"weekday" binding:"min=0,max=6"`
	OpenTime         string `json:"openTime"`
	CloseTime        string `json:"closeTime"`
	Closed           bool   `json:"closed"`
	MaxOrdersPerSlot int    `json:"maxOrdersPerSlot" binding:"min=0"`
	SlotMinutes      int    `json:"slotMinutes" binding:"min=0"`
}

// PUT /staff/hours: one row per weekday, upserted
func (h *HoursController) Upsert(c *gin.Context) {
	shop := utils.CurrentShop(c)
	var req upsertHoursReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !req.Closed {
		if _, err := time.Parse("15:04", req.OpenTime); err != nil {
			resp.BadRequest(c, "openTime must be HH:MM")
			return
		}
		if _, err := time.Parse("15:04", req.CloseTime); err != nil {
			resp.BadRequest(c, "closeTime must be HH:MM")
			return
		}
	}

	row := entity.BusinessHours{
		ShopID:           shop.ID,
		Weekday:          req.Weekday,
		OpenTime:         req.OpenTime,
		CloseTime:        req.CloseTime,
		Closed:           req.Closed,
		MaxOrdersPerSlot: req.MaxOrdersPerSlot,
		SlotMinutes:      req.SlotMinutes,
	}
	if err := h.Repo.Upsert(&row); err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, row)
}
