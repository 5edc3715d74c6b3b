package controllers

import (
	"time"

	"brewhub-backend/pkg/resp"
	"brewhub-backend/services"
	"brewhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	Service *services.ScheduleService
}

func NewScheduleController(service *services.ScheduleService) *ScheduleController {
	return &ScheduleController{Service: service}
}

// GET /slots?date=2006-01-02
func (s *ScheduleController) Slots(c *gin.Context) {
	shop := utils.CurrentShop(c)
	if !shop.SchedulingEnabled {
		resp.Conflict(c, services.ErrFeatureDisabled.Error())
		return
	}

	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		resp.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	slots, err := s.Service.AvailableSlots(shop, day)
	if err != nil {
		resp.ServerError(c)
		return
	}
	if slots == nil {
		slots = []services.Slot{}
	}
	resp.OK(c, slots)
}
