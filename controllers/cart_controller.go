package controllers

import (
	"brewhub-backend/pkg/cartcache"
	"brewhub-backend/pkg/resp"
	"brewhub-backend/utils"
	"brewhub-backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartController exposes the non-authoritative live-cart cache. Carts here
// never feed order creation; checkout re-reads the menu and prices.
type CartController struct {
	Cache *cartcache.Cache
	Hub   *ws.CartHub
}

func NewCartController(cache *cartcache.Cache, hub *ws.CartHub) *CartController {
	return &CartController{Cache: cache, Hub: hub}
}

func sessionID(c *gin.Context) string {
	return c.GetHeader("X-Session-Id")
}

type putCartReq struct {
	Lines []cartcache.CartLine `json:"lines" binding:"required"`
}

// PUT /cart: replace the session's cart snapshot
func (ctl *CartController) Put(c *gin.Context) {
	shop := utils.CurrentShop(c)

	sid := sessionID(c)
	if sid == "" {
		sid = uuid.NewString()
	}

	var req putCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart := ctl.Cache.Put(sid, shop.ID, req.Lines)
	if ctl.Hub != nil {
		ctl.Hub.Publish(shop.ID, cart)
	}
	resp.OK(c, cart)
}

// GET /cart
func (ctl *CartController) Get(c *gin.Context) {
	cart, ok := ctl.Cache.Get(sessionID(c))
	if !ok {
		resp.NotFound(c, "no cart for session")
		return
	}
	resp.OK(c, cart)
}

// DELETE /cart
func (ctl *CartController) Delete(c *gin.Context) {
	ctl.Cache.Delete(sessionID(c))
	resp.OK(c, gin.H{"deleted": true})
}

// GET /staff/carts: dashboard snapshot of live carts
func (ctl *CartController) ListForShop(c *gin.Context) {
	shop := utils.CurrentShop(c)
	carts := ctl.Cache.ListByShop(shop.ID)
	if carts == nil {
		carts = []*cartcache.Cart{}
	}
	resp.OK(c, carts)
}
