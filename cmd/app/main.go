package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lumamoveis/catalog-backend/internal/app"
	"github.com/lumamoveis/catalog-backend/internal/category"
	"github.com/lumamoveis/catalog-backend/internal/config"
	"github.com/lumamoveis/catalog-backend/internal/interface/http/router"
	"github.com/lumamoveis/catalog-backend/internal/product"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	catalog, err := app.NewCatalog(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("catalog setup failed: %v", err)
	}
	defer catalog.Close()

	if cfg.JWTSecret == "" {
		log.Printf("warning: JWT_SECRET is not set, product write routes are disabled")
	}

	productHandler := product.NewHandler(catalog.Service, catalog.Seed, cfg.AllowResetProducts)
	categoryHandler := category.NewHandler(catalog.Categories)
	r := router.New(cfg, productHandler, categoryHandler)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Printf("shutting down")
		_ = r.ShutdownWithTimeout(5 * time.Second)
	}()

	log.Printf("starting server on %s", cfg.Addr)
	if err := r.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
