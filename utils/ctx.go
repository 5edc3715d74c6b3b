package utils

import (
	"brewhub-backend/entity"

	"github.com/gin-gonic/gin"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	if id, ok := v.(uint); ok {
		return id
	}
	return 0
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CurrentShop returns the tenant the middleware resolved. Handlers behind
// TenantMiddleware may assume it is present.
func CurrentShop(c *gin.Context) *entity.Shop {
	return c.MustGet("shop").(*entity.Shop)
}
