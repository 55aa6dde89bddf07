package product

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo   Repository
	engine Engine
	now    func() time.Time
}

func NewService(repo Repository, engine Engine) *Service {
	return &Service{repo: repo, engine: engine, now: time.Now}
}

// List loads the whole catalog from the store and runs the query engine
// over it. Store failures are wrapped; request problems come back as
// *ValidationError.
func (s *Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("load catalog: %w", err)
	}
	return s.engine.Query(all, req)
}

func (s *Service) GetByID(ctx context.Context, id int) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stamps DateCreated when the caller left it empty.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if p.DateCreated.IsZero() {
		p.DateCreated = s.now().UTC()
	}
	return s.repo.Create(ctx, p)
}

// Reset replaces all products with the given list (used for dev / seeding).
func (s *Service) Reset(ctx context.Context, products []Product) error {
	return s.repo.Reset(ctx, products)
}

// SeedIfEmpty loads products into an empty store and reports whether it did.
func (s *Service) SeedIfEmpty(ctx context.Context, products []Product) (bool, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("load catalog: %w", err)
	}
	if len(all) > 0 {
		return false, nil
	}
	return true, s.repo.Reset(ctx, products)
}
