package main

import (
	"context"
	"log"

	"colvote.com/internal/api"
	"colvote.com/internal/config"
	"colvote.com/internal/infra"
)

func main() {
	// Config first; a missing signing secret aborts startup here.
	cfg := config.LoadConfig()

	// Postgres
	pg, err := infra.NewPostgresClient(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis (token revocation list)
	rdb := infra.NewRedisClient(cfg.Redis)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	app := api.NewServer(cfg)

	router := api.NewRouter(app, cfg, pg.DB, rdb)
	router.RegisterRoutes()

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
