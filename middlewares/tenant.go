package middlewares

import (
	"errors"
	"strings"

	"brewhub-backend/entity"
	"brewhub-backend/pkg/resp"
	"brewhub-backend/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TenantMiddleware resolves the shop for the request from the X-Shop header
// or the first label of the Host, and fails closed: no shop, no service.
// Everything downstream reads the shop from the gin context.
func TenantMiddleware(shops *repository.ShopRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.GetHeader("X-Shop")
		if slug == "" {
			host := c.Request.Host
			if i := strings.Index(host, ":"); i >= 0 {
				host = host[:i]
			}
			if parts := strings.Split(host, "."); len(parts) > 2 {
				slug = parts[0]
			}
		}
		if slug == "" {
			resp.BadRequest(c, "no shop specified")
			c.Abort()
			return
		}

		shop, err := shops.GetBySlug(slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				resp.NotFound(c, "unknown shop")
			} else {
				resp.ServerError(c)
			}
			c.Abort()
			return
		}
		if shop.Status != entity.ShopActive {
			resp.Forbidden(c, "shop is not accepting orders")
			c.Abort()
			return
		}

		c.Set("shop", shop)
		c.Next()
	}
}

// RequireStaffShop ensures a staff caller only ever acts on their own shop.
// Runs after both AuthMiddleware and TenantMiddleware.
func RequireStaffShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		shop := c.MustGet("shop").(*entity.Shop)
		v, _ := c.Get("staffShopId")
		if staffShop, ok := v.(uint); ok && staffShop != 0 && staffShop != shop.ID {
			resp.Forbidden(c, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
