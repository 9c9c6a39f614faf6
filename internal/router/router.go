// Package router wires every HTTP route to its handler and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kadrfilm/booking-server/internal/config"
	"github.com/kadrfilm/booking-server/internal/handler"
	"github.com/kadrfilm/booking-server/internal/metrics"
	"github.com/kadrfilm/booking-server/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Cfg       config.Config
	CacheCfg  config.CacheConfig
	RateCfg   config.RateLimitConfig
	Redis     *redis.Client
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Booking   *handler.BookingHandler
	Public    *handler.PublicHandler
	Client    *handler.ClientHandler
	Bookings  *handler.AdminBookingHandler
	Keys      *handler.AdminAccessKeyHandler
	Calendar  *handler.AdminAvailabilityHandler
	Gallery   *handler.AdminGalleryHandler
	Catalog   *handler.AdminCatalogHandler
	Discounts *handler.AdminDiscountHandler
	Stages    *handler.AdminStageHandler
	Messages  *handler.AdminMessageHandler
	Guests    *handler.AdminGuestHandler
}

// Register mounts the whole API surface: public endpoints, the client
// portal behind ClientAuth and the back office behind AdminAuth.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", d.Health.Check)
	e.GET("/api/health", d.Health.Check)
	e.GET("/metrics", metrics.Handler())

	cached := middleware.ResponseCache(d.CacheCfg, d.Redis)
	limited := middleware.RateLimit(d.RateCfg, d.Redis)

	// Public marketing and calculator surface. Reads are cacheable, the
	// write-shaped endpoints are rate limited instead.
	e.GET("/api/packages", d.Public.GetPackages, cached)
	e.GET("/api/gallery", d.Public.GetGallery, cached)
	e.GET("/api/availability", d.Public.GetCalendar, cached)
	e.POST("/api/validate-key", d.Public.ValidateKey, limited)
	e.POST("/api/validate-discount", d.Public.ValidateDiscount, limited)
	e.POST("/api/bookings", d.Booking.Create, limited)
	e.POST("/api/rsvp", d.Public.SubmitRSVP, limited)
	e.POST("/api/login", d.Auth.ClientLogin, limited)
	e.POST("/api/admin/login", d.Auth.AdminLogin, limited)

	// Client portal, scoped to the authenticated couple.
	client := e.Group("/api", middleware.ClientAuth(d.Cfg.JWTSecret))
	client.GET("/my-booking", d.Client.MyBooking)
	client.PATCH("/my-booking", d.Client.UpdateMyBooking)
	client.GET("/my-stages", d.Client.MyStages)
	client.GET("/my-messages", d.Client.MyMessages)
	client.POST("/my-messages", d.Client.SendMessage)
	client.GET("/my-guests", d.Client.MyGuests)
	client.DELETE("/my-guests/:id", d.Client.DeleteMyGuest)

	// Back office.
	admin := e.Group("/api/admin", middleware.AdminAuth(d.Cfg.AdminJWTSecret))
	admin.GET("/bookings", d.Bookings.List)
	admin.GET("/bookings/:id", d.Bookings.Get)
	admin.PATCH("/bookings/:id", d.Bookings.Update)
	admin.DELETE("/bookings/:id", d.Bookings.Delete)

	admin.GET("/access-keys", d.Keys.List)
	admin.POST("/access-keys", d.Keys.Create)
	admin.DELETE("/access-keys/:id", d.Keys.Delete)

	admin.GET("/availability", d.Calendar.List)
	admin.POST("/availability", d.Calendar.Create)
	admin.PATCH("/availability/:id", d.Calendar.Update)
	admin.DELETE("/availability/:id", d.Calendar.Delete)

	admin.GET("/gallery", d.Gallery.List)
	admin.POST("/gallery", d.Gallery.Upload)
	admin.DELETE("/gallery/:id", d.Gallery.Delete)

	admin.GET("/packages", d.Catalog.ListPackages)
	admin.POST("/packages", d.Catalog.CreatePackage)
	admin.PATCH("/packages/:id", d.Catalog.UpdatePackage)
	admin.DELETE("/packages/:id", d.Catalog.DeletePackage)
	admin.POST("/packages/:id/addons", d.Catalog.LinkAddon)
	admin.DELETE("/packages/:id/addons/:addonId", d.Catalog.UnlinkAddon)
	admin.GET("/addons", d.Catalog.ListAddons)
	admin.POST("/addons", d.Catalog.CreateAddon)
	admin.PATCH("/addons/:id", d.Catalog.UpdateAddon)
	admin.DELETE("/addons/:id", d.Catalog.DeleteAddon)

	admin.GET("/discounts", d.Discounts.List)
	admin.POST("/discounts", d.Discounts.Create)
	admin.PATCH("/discounts/:id", d.Discounts.Update)
	admin.DELETE("/discounts/:id", d.Discounts.Delete)

	admin.GET("/stages", d.Stages.List)
	admin.PATCH("/stages/:id", d.Stages.SetStatus)

	admin.GET("/messages", d.Messages.ListThreads)
	admin.GET("/messages/:clientId", d.Messages.Thread)
	admin.POST("/messages/:clientId", d.Messages.Reply)

	admin.GET("/guests", d.Guests.List)
	admin.DELETE("/guests/:id", d.Guests.Delete)
}
