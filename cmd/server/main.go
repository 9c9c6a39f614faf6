package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/kadrfilm/booking-server/internal/config"
	"github.com/kadrfilm/booking-server/internal/database"
	"github.com/kadrfilm/booking-server/internal/handler"
	"github.com/kadrfilm/booking-server/internal/logger"
	"github.com/kadrfilm/booking-server/internal/metrics"
	"github.com/kadrfilm/booking-server/internal/queue"
	"github.com/kadrfilm/booking-server/internal/repository"
	"github.com/kadrfilm/booking-server/internal/router"
	"github.com/kadrfilm/booking-server/internal/service"
	"github.com/kadrfilm/booking-server/internal/storage"
)

// getEnv is read before config.Load because the logger's format depends on
// it and config.Load already needs a logger.
func getEnv() string {
	if v := os.Getenv("APP_ENV"); v != "" {
		return v
	}
	return "dev"
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(getEnv())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load(log)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Bootstrap(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost, cfg.Env != "production"); err != nil {
		log.Fatal("database bootstrap failed", zap.Error(err))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, response cache and rate limiting disabled")
	}

	metrics.Register()

	bookings := repository.NewBookingRepo(db)
	admins := repository.NewAdminRepo(db)
	keys := repository.NewAccessKeyRepo(db)
	events := repository.NewAvailabilityRepo(db)
	gallery := repository.NewGalleryRepo(db)
	catalog := repository.NewCatalogRepo(db)
	discounts := repository.NewDiscountRepo(db)
	stages := repository.NewStageRepo(db)
	messages := repository.NewMessageRepo(db)
	guests := repository.NewGuestRepo(db)

	publisher := service.NewPublisher(log)
	blobs := storage.NewBlobStoreFromEnv()

	go queue.StartBookingConsumer(log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(logger.Middleware(log))
	e.Use(metrics.Middleware())

	router.Register(e, router.Deps{
		Cfg:      cfg,
		CacheCfg: config.LoadCacheConfig(),
		RateCfg:  config.LoadRateLimitConfig(),
		Redis:    rdb,
		Health:   handler.NewHealthHandler(db),
		Auth:     handler.NewAuthHandler(cfg, bookings, admins, log),
		Booking:  handler.NewBookingHandler(cfg, bookings, publisher, log),
		Public: &handler.PublicHandler{
			Catalog:      catalog,
			Gallery:      gallery,
			Availability: events,
			Bookings:     bookings,
			AccessKeys:   keys,
			Discounts:    discounts,
			Guests:       guests,
			Log:          log,
		},
		Client: &handler.ClientHandler{
			Bookings:  bookings,
			Stages:    stages,
			Messages:  messages,
			Guests:    guests,
			Publisher: publisher,
			Log:       log,
		},
		Bookings:  &handler.AdminBookingHandler{Bookings: bookings, Log: log},
		Keys:      &handler.AdminAccessKeyHandler{Keys: keys, Log: log},
		Calendar:  &handler.AdminAvailabilityHandler{Events: events, Log: log},
		Gallery:   &handler.AdminGalleryHandler{Gallery: gallery, Blobs: blobs, Log: log},
		Catalog:   &handler.AdminCatalogHandler{Catalog: catalog, Log: log},
		Discounts: &handler.AdminDiscountHandler{Discounts: discounts, Log: log},
		Stages:    &handler.AdminStageHandler{Stages: stages, Bookings: bookings, Log: log},
		Messages:  &handler.AdminMessageHandler{Messages: messages, Bookings: bookings, Publisher: publisher, Log: log},
		Guests:    &handler.AdminGuestHandler{Guests: guests, Bookings: bookings, Log: log},
	})

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
