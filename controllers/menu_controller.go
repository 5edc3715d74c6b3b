package controllers

import (
	"strconv"

	"brewhub-backend/entity"
	"brewhub-backend/pkg/resp"
	"brewhub-backend/repository"
	"brewhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Repo *repository.MenuRepository
}

func NewMenuController(repo *repository.MenuRepository) *MenuController {
	return &MenuController{Repo: repo}
}

// GET /menu: customer-facing, available items only
func (m *MenuController) List(c *gin.Context) {
	shop := utils.CurrentShop(c)
	items, err := m.Repo.ListAvailable(shop.ID)
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, items)
}

// GET /staff/menu: includes unavailable items
func (m *MenuController) ListAll(c *gin.Context) {
	shop := utils.CurrentShop(c)
	items, err := m.Repo.ListAll(shop.ID)
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, items)
}

type createMenuItemReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents" binding:"required,min=1"`
	Category    string `json:"category"`
	Available   *bool  `json:"available"`
}

// POST /staff/menu
func (m *MenuController) Create(c *gin.Context) {
	shop := utils.CurrentShop(c)
	var req createMenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item := entity.MenuItem{
		ShopID:      shop.ID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if err := m.Repo.Create(&item); err != nil {
		resp.ServerError(c)
		return
	}
	resp.Created(c, item)
}

// PATCH /staff/menu/:id: partial update, only supplied fields change
func (m *MenuController) Patch(c *gin.Context) {
	shop := utils.CurrentShop(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid menu item id")
		return
	}

	var patch repository.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if patch.Name == nil && patch.Description == nil && patch.PriceCents == nil &&
		patch.Category == nil && patch.Available == nil {
		resp.BadRequest(c, "no fields to update")
		return
	}

	affected, err := m.Repo.Patch(shop.ID, uint(id), &patch)
	if err != nil {
		resp.ServerError(c)
		return
	}
	if affected == 0 {
		resp.NotFound(c, "menu item not found")
		return
	}
	item, err := m.Repo.GetForShop(shop.ID, uint(id))
	if err != nil {
		resp.ServerError(c)
		return
	}
	resp.OK(c, item)
}
