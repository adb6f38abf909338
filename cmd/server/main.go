package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/creativecapture/creative-capture-server/internal/config"
	"github.com/creativecapture/creative-capture-server/internal/database"
	"github.com/creativecapture/creative-capture-server/internal/handler"
	"github.com/creativecapture/creative-capture-server/internal/middleware"
	"github.com/creativecapture/creative-capture-server/internal/payments"
	"github.com/creativecapture/creative-capture-server/internal/repository"
	"github.com/creativecapture/creative-capture-server/internal/router"
	queue_publisher "github.com/creativecapture/creative-capture-server/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Repositories over the shared pool
	users := repository.NewUserRepo(db)
	classes := repository.NewClassRepo(db)
	selections := repository.NewSelectionRepo(db)
	paymentsRepo := repository.NewPaymentRepo(db)

	// Payment provider
	stripeProvider := payments.NewStripeProvider(cfg.StripeKey)

	h := router.Handlers{
		Tokens:     handler.NewTokenHandler(cfg.JWTSecret),
		Classes:    handler.NewClassHandler(classes),
		Selections: handler.NewSelectionHandler(selections),
		Payments:   handler.NewPaymentHandler(paymentsRepo, selections, stripeProvider, queue_publisher.PublishPaymentRecorded),
		Users:      handler.NewUserHandler(users),
	}

	e := echo.New()

	// Redis is optional: without it both the limiter and the cache become
	// pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	var cache echo.MiddlewareFunc
	if rdb != nil {
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e, h, cfg.JWTSecret, users, cache)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
