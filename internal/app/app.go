// Package app assembles the catalog store, service and handler from config.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"golang.org/x/text/language"

	"github.com/lumamoveis/catalog-backend/internal/category"
	"github.com/lumamoveis/catalog-backend/internal/config"
	"github.com/lumamoveis/catalog-backend/internal/infrastructure/database/postgres"
	"github.com/lumamoveis/catalog-backend/internal/product"
)

// Catalog is the wired product feature. Close releases the database, if any.
type Catalog struct {
	Service    *product.Service
	Categories *category.Service
	Seed       []product.Product
	db         *sql.DB
}

func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Seed returns the configured seed catalog: the YAML file when set, the
// built-in furniture catalog otherwise.
func Seed(cfg config.Config, now time.Time) ([]product.Product, error) {
	if cfg.SeedFile == "" {
		return product.DefaultCatalog(now), nil
	}
	return product.LoadSeedFile(cfg.SeedFile, now)
}

// Engine returns a query engine collating with cfg.Locale.
func Engine(cfg config.Config) (product.Engine, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return product.Engine{}, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}
	return product.Engine{Locale: tag}, nil
}

// NewCatalog picks the store from cfg. A Postgres store is seeded only when
// its table is empty; the in-memory store always starts from the seed.
func NewCatalog(ctx context.Context, cfg config.Config) (*Catalog, error) {
	engine, err := Engine(cfg)
	if err != nil {
		return nil, err
	}
	seed, err := Seed(cfg, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		log.Printf("catalog: using in-memory store with %d products", len(seed))
		repo := product.NewInMemoryRepository(seed)
		return &Catalog{
			Service:    product.NewService(repo, engine),
			Categories: category.NewService(repo, engine.Locale),
			Seed:       seed,
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	repo := product.NewPostgresRepository(db)
	svc := product.NewService(repo, engine)
	seeded, err := svc.SeedIfEmpty(ctx, seed)
	if err != nil {
		db.Close()
		return nil, err
	}
	if seeded {
		log.Printf("catalog: seeded empty database with %d products", len(seed))
	}
	return &Catalog{
		Service:    svc,
		Categories: category.NewService(repo, engine.Locale),
		Seed:       seed,
		db:         db,
	}, nil
}
