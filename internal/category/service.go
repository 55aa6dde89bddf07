package category

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lumamoveis/catalog-backend/internal/product"
)

// Source supplies the full product collection categories are derived from.
type Source interface {
	List(ctx context.Context) ([]product.Product, error)
}

// Service provides business logic for categories.
type Service struct {
	source Source
	locale language.Tag
}

func NewService(source Source, locale language.Tag) *Service {
	if locale == language.Und {
		locale = product.DefaultLocale
	}
	return &Service{source: source, locale: locale}
}

// List returns up to limit distinct categories in collation order, each
// with its product count. limit <= 0 means no limit.
func (s *Service) List(ctx context.Context, limit int) ([]Item, error) {
	all, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	counts := map[string]int{}
	for _, p := range all {
		counts[p.Category]++
	}
	items := make([]Item, 0, len(counts))
	for name, n := range counts {
		items = append(items, Item{Name: name, ProductCount: n})
	}

	col := collate.New(s.locale)
	slices.SortFunc(items, func(a, b Item) int { return col.CompareString(a.Name, b.Name) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
