package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/event-resource-booking/internal/config"
	"github.com/iliyamo/event-resource-booking/internal/database"
	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/handler"
	"github.com/iliyamo/event-resource-booking/internal/middleware"
	"github.com/iliyamo/event-resource-booking/internal/queue"
	"github.com/iliyamo/event-resource-booking/internal/repository"
	"github.com/iliyamo/event-resource-booking/internal/router"
	"github.com/iliyamo/event-resource-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories over the shared DB handle.
	resources := repository.NewResourceRepo(db)
	reservations := repository.NewReservationRepo(db)
	blocks := repository.NewBlockRepo(db)
	store := repository.NewBookingStore(db, reservations, blocks)

	// Scheduling rules are fixed policy, not per-request input.
	rules := engine.DefaultRules()

	bookings := service.NewBookingService(resources, store, rules)
	availability := service.NewAvailabilityService(resources, reservations, blocks, rules)

	// Redis is optional: without it the service runs uncached and
	// unlimited rather than failing to boot.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	var cacheMW, limitMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
		limitMW = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewResourceHandler(resources), handler.NewAvailabilityHandler(availability), cacheMW)
	router.RegisterBooking(e, handler.NewBookingHandler(bookings), cfg.JWTSecret, limitMW)
	router.RegisterAdmin(e, handler.NewAdminHandler(blocks, resources), cfg.JWTSecret)

	// Background consumer mirrors confirmed bookings into logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
