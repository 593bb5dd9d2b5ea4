package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tberkay/customer-crm/internal/cache"
	"github.com/tberkay/customer-crm/internal/config"
	"github.com/tberkay/customer-crm/internal/database"
	"github.com/tberkay/customer-crm/internal/handler"
	"github.com/tberkay/customer-crm/internal/queue"
	"github.com/tberkay/customer-crm/internal/repository"
	"github.com/tberkay/customer-crm/internal/router"
	"github.com/tberkay/customer-crm/internal/view"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Redis is optional; a nil client disables the totals cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; dashboard totals cache disabled")
	}

	users := repository.NewUserRepo(db)
	customers := repository.NewCustomerRepo(db)
	interactions := repository.NewInteractionRepo(db)
	stats := cache.NewStatsCache(rdb)

	authHandler := handler.NewAuthHandler(cfg, users)
	customerHandler := handler.NewCustomerHandler(customers, interactions, stats)
	interactionHandler := handler.NewInteractionHandler(customers, interactions, stats)

	// Consume activity events in the background; the loop reconnects on
	// broker failures and never takes the server down.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Renderer = view.New()
	router.RegisterRoutes(e, authHandler)
	router.RegisterProtected(e, authHandler, customerHandler, interactionHandler, cfg.SessionSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
