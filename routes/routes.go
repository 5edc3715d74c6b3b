package routes

import (
	"brewhub-backend/configs"
	"brewhub-backend/controllers"
	"brewhub-backend/middlewares"
	"brewhub-backend/pkg/cartcache"
	"brewhub-backend/repository"
	"brewhub-backend/services"
	"brewhub-backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Cfg      *configs.Config
	Gateway  services.PaymentGateway
	Notifier services.Notifier
	Cache    *cartcache.Cache
	Hub      *ws.CartHub
}

// Register wires repositories, services and controllers onto the router.
// Returns the services the background sweeps need.
func Register(r *gin.Engine, d Deps) (*services.ReminderService, *services.BirthdayService) {
	shopRepo := repository.NewShopRepository(d.DB)
	menuRepo := repository.NewMenuRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	hoursRepo := repository.NewHoursRepository(d.DB)
	loyaltyRepo := repository.NewLoyaltyRepository(d.DB)
	memberRepo := repository.NewMembershipRepository(d.DB)
	userRepo := repository.NewUserRepository(d.DB)

	scheduleSvc := services.NewScheduleService(hoursRepo, orderRepo)
	orderSvc := services.NewOrderService(d.DB, orderRepo, menuRepo, scheduleSvc, d.Gateway, d.Notifier)
	loyaltySvc := services.NewLoyaltyService(d.DB, loyaltyRepo)
	memberSvc := services.NewMembershipService(memberRepo, d.Gateway)
	reminderSvc := services.NewReminderService(d.DB, orderRepo, shopRepo, d.Notifier)
	birthdaySvc := services.NewBirthdayService(userRepo, shopRepo, loyaltySvc, d.Notifier)

	authCtl := controllers.NewAuthController(d.DB, d.Cfg)
	menuCtl := controllers.NewMenuController(menuRepo)
	orderCtl := controllers.NewOrderController(orderSvc)
	staffOrderCtl := controllers.NewStaffOrderController(orderSvc)
	scheduleCtl := controllers.NewScheduleController(scheduleSvc)
	hoursCtl := controllers.NewHoursController(hoursRepo)
	loyaltyCtl := controllers.NewLoyaltyController(loyaltySvc)
	memberCtl := controllers.NewMembershipController(memberSvc)
	webhookCtl := controllers.NewWebhookController(orderSvc, memberSvc, loyaltySvc, d.Cfg.WebhookSecret)
	cartCtl := controllers.NewCartController(d.Cache, d.Hub)

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Auth (tenant-independent)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.GET("/me", middlewares.AuthMiddleware(d.Cfg.JWTSecret), authCtl.Me)
	}

	// Webhooks: signature-verified, not tenant-scoped (intent ids are global)
	r.POST("/webhooks/payment", webhookCtl.HandlePayment)

	tenant := middlewares.TenantMiddleware(shopRepo)
	authed := middlewares.AuthMiddleware(d.Cfg.JWTSecret)
	staff := middlewares.AuthMiddleware(d.Cfg.JWTSecret, "staff")

	// Public, tenant-scoped
	pub := r.Group("/", tenant)
	{
		pub.GET("/menu", menuCtl.List)
		pub.GET("/slots", scheduleCtl.Slots)
		pub.POST("/guest/orders", orderCtl.CreateGuest)
		pub.GET("/track/:token", orderCtl.Track)

		pub.PUT("/cart", cartCtl.Put)
		pub.GET("/cart", cartCtl.Get)
		pub.DELETE("/cart", cartCtl.Delete)
	}

	// Member, tenant-scoped
	member := r.Group("/", tenant, authed)
	{
		member.POST("/orders", orderCtl.Create)
		member.GET("/orders", orderCtl.ListForMe)
		member.GET("/orders/:id", orderCtl.Detail)

		member.GET("/loyalty/balance", loyaltyCtl.Balance)
		member.GET("/loyalty/history", loyaltyCtl.History)
		member.POST("/loyalty/redeem", loyaltyCtl.Redeem)

		member.GET("/membership/plans", memberCtl.Plans)
		member.GET("/membership/me", memberCtl.Me)
		member.POST("/membership/subscribe", memberCtl.Subscribe)
		member.POST("/membership/redeem-coffee", memberCtl.RedeemCoffee)
		member.POST("/membership/cancel", memberCtl.Cancel)
	}

	// Staff dashboard, tenant-scoped and shop-checked
	staffGrp := r.Group("/staff", tenant, staff, middlewares.RequireStaffShop())
	{
		staffGrp.GET("/orders", staffOrderCtl.List)
		staffGrp.GET("/orders/:id", staffOrderCtl.Detail)
		staffGrp.PATCH("/orders/:id/status", staffOrderCtl.Advance)
		staffGrp.POST("/orders/:id/cancel", staffOrderCtl.Cancel)

		staffGrp.GET("/menu", menuCtl.ListAll)
		staffGrp.POST("/menu", menuCtl.Create)
		staffGrp.PATCH("/menu/:id", menuCtl.Patch)

		staffGrp.GET("/hours", hoursCtl.List)
		staffGrp.PUT("/hours", hoursCtl.Upsert)

		staffGrp.GET("/carts", cartCtl.ListForShop)
		staffGrp.GET("/carts/ws", d.Hub.HandleWebSocket)
	}

	return reminderSvc, birthdaySvc
}
