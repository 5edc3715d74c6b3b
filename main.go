package main

import (
	"fmt"
	"log"

	"brewhub-backend/configs"
	"brewhub-backend/middlewares"
	"brewhub-backend/pkg/cartcache"
	"brewhub-backend/pkg/logger"
	"brewhub-backend/routes"
	"brewhub-backend/services"
	"brewhub-backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	if err := logger.Init(cfg.DevMode); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	if err := configs.ConnectionDB(cfg); err != nil {
		zap.S().Fatalf("database connection failed: %v", err)
	}
	db := configs.DB()

	if err := configs.SetupDatabase(); err != nil {
		zap.S().Fatalf("migration failed: %v", err)
	}
	if err := configs.SeedDemoShop(); err != nil {
		zap.S().Fatalf("seed failed: %v", err)
	}

	gateway := services.NewHTTPPaymentGateway(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
	notifier := services.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	cache := cartcache.New(cfg.CartTTL)
	defer cache.Close()

	hub := ws.NewCartHub()
	go hub.Run()

	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddleware())

	reminders, birthdays := routes.Register(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Gateway:  gateway,
		Notifier: notifier,
		Cache:    cache,
		Hub:      hub,
	})

	sched := cron.New()
	if _, err := sched.AddFunc("@every 1m", reminders.RunOnce); err != nil {
		zap.S().Fatalf("reminder job setup failed: %v", err)
	}
	if _, err := sched.AddFunc("@daily", birthdays.RunOnce); err != nil {
		zap.S().Fatalf("birthday job setup failed: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	addr := fmt.Sprintf(":%s", cfg.Port)
	zap.S().Infow("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		zap.S().Fatalf("server stopped: %v", err)
	}
}
