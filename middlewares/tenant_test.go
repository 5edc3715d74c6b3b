package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brewhub-backend/entity"
	"brewhub-backend/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func tenantFixture(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Shop{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	r.GET("/probe", TenantMiddleware(repository.NewShopRepository(db)), func(c *gin.Context) {
		shop := c.MustGet("shop").(*entity.Shop)
		c.JSON(http.StatusOK, gin.H{"slug": shop.Slug})
	})
	return r, db
}

func probe(r *gin.Engine, host, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if host != "" {
		req.Host = host
	}
	if header != "" {
		req.Header.Set("X-Shop", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTenantResolvedFromHeader(t *testing.T) {
	r, db := tenantFixture(t)
	db.Create(&entity.Shop{Slug: "roasters", Name: "R", Status: entity.ShopActive})

	w := probe(r, "", "roasters")
	if w.Code != http.StatusOK {
		t.Errorf("code = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestTenantResolvedFromSubdomain(t *testing.T) {
	r, db := tenantFixture(t)
	db.Create(&entity.Shop{Slug: "roasters", Name: "R", Status: entity.ShopActive})

	w := probe(r, "roasters.brewhub.example:8080", "")
	if w.Code != http.StatusOK {
		t.Errorf("code = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestTenantHeaderWinsOverSubdomain(t *testing.T) {
	r, db := tenantFixture(t)
	db.Create(&entity.Shop{Slug: "fromheader", Name: "H", Status: entity.ShopActive})
	db.Create(&entity.Shop{Slug: "fromhost", Name: "S", Status: entity.ShopActive})

	w := probe(r, "fromhost.brewhub.example", "fromheader")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "fromheader") {
		t.Errorf("resolved shop = %s, want fromheader", w.Body.String())
	}
}

func TestTenantFailsClosed(t *testing.T) {
	r, db := tenantFixture(t)
	db.Create(&entity.Shop{Slug: "paused", Name: "P", Status: entity.ShopSuspended})

	// bare host, no header: nothing to resolve
	if w := probe(r, "brewhub.example", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bare host: code = %d, want 400", w.Code)
	}
	if w := probe(r, "", "ghost"); w.Code != http.StatusNotFound {
		t.Errorf("unknown slug: code = %d, want 404", w.Code)
	}
	if w := probe(r, "", "paused"); w.Code != http.StatusForbidden {
		t.Errorf("suspended shop: code = %d, want 403", w.Code)
	}
}
