package product

import (
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortBy names an ordering of the catalog listing.
type SortBy string

const (
	SortNameAsc   SortBy = "name_asc"
	SortNameDesc  SortBy = "name_desc"
	SortPriceAsc  SortBy = "price_asc"
	SortPriceDesc SortBy = "price_desc"
	SortDateDesc  SortBy = "date_desc"
)

func (s SortBy) Valid() bool {
	switch s {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortDateDesc:
		return true
	}
	return false
}

const (
	DefaultPage     = 1
	DefaultPageSize = 12
	DefaultSortBy   = SortDateDesc
)

// PageSizes lists the accepted page sizes.
var PageSizes = []int{12, 24, 36}

// DefaultLocale is used for name collation when none is configured.
var DefaultLocale = language.BrazilianPortuguese

// ListRequest describes one page of the catalog. A nil or empty Category
// disables the filter.
type ListRequest struct {
	Page     int
	PageSize int
	SortBy   SortBy
	Category *string
}

type Pagination struct {
	TotalProducts   int
	TotalPages      int
	CurrentPage     int
	PageSize        int
	HasNextPage     bool
	HasPreviousPage bool
}

type ListResult struct {
	Products   []Product
	Pagination Pagination
}

// Engine runs list requests. The zero value collates names with DefaultLocale.
type Engine struct {
	Locale language.Tag
}

// Query lists products with DefaultLocale collation.
func Query(all []Product, req ListRequest) (ListResult, error) {
	return Engine{}.Query(all, req)
}

// Query validates req, then filters, sorts and slices all. It never modifies
// all and returns freshly allocated slices.
func (e Engine) Query(all []Product, req ListRequest) (ListResult, error) {
	if req.Page < 1 {
		return ListResult{}, ErrInvalidPageNumber
	}
	if !slices.Contains(PageSizes, req.PageSize) {
		return ListResult{}, ErrInvalidPageSize
	}
	if !req.SortBy.Valid() {
		return ListResult{}, ErrInvalidSortCriteria
	}

	filtered := filterByCategory(all, req.Category)
	slices.SortStableFunc(filtered, e.comparator(req.SortBy))

	total := len(filtered)
	totalPages := (total + req.PageSize - 1) / req.PageSize
	if req.Page > totalPages && totalPages > 0 {
		return ListResult{}, ErrPageExceedsTotal
	}

	// page > totalPages only survives when nothing matched, so the offset
	// is computed only for pages that exist.
	start, end := 0, 0
	if req.Page <= totalPages {
		start = (req.Page - 1) * req.PageSize
		end = min(start+req.PageSize, total)
	}
	page := make([]Product, end-start)
	copy(page, filtered[start:end])

	return ListResult{
		Products: page,
		Pagination: Pagination{
			TotalProducts:   total,
			TotalPages:      totalPages,
			CurrentPage:     req.Page,
			PageSize:        req.PageSize,
			HasNextPage:     req.Page < totalPages,
			HasPreviousPage: req.Page > 1,
		},
	}, nil
}

func filterByCategory(all []Product, category *string) []Product {
	if category == nil || *category == "" {
		return slices.Clone(all)
	}
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if p.Category == *category {
			out = append(out, p)
		}
	}
	return out
}

func (e Engine) comparator(by SortBy) func(a, b Product) int {
	switch by {
	case SortNameAsc:
		col := e.collator()
		return func(a, b Product) int { return col.CompareString(a.Name, b.Name) }
	case SortNameDesc:
		col := e.collator()
		return func(a, b Product) int { return col.CompareString(b.Name, a.Name) }
	case SortPriceAsc:
		return func(a, b Product) int { return priceOrZero(a).Cmp(priceOrZero(b)) }
	case SortPriceDesc:
		return func(a, b Product) int { return priceOrZero(b).Cmp(priceOrZero(a)) }
	default:
		return compareFeaturedThenNewest
	}
}

// collator is built per call: a collate.Collator is not safe for concurrent use.
func (e Engine) collator() *collate.Collator {
	tag := e.Locale
	if tag == language.Und {
		tag = DefaultLocale
	}
	return collate.New(tag)
}

func compareFeaturedThenNewest(a, b Product) int {
	if a.Featured != b.Featured {
		if a.Featured {
			return -1
		}
		return 1
	}
	return b.DateCreated.Compare(a.DateCreated)
}

func priceOrZero(p Product) decimal.Decimal {
	if p.Price.Valid {
		return p.Price.Decimal
	}
	return decimal.Zero
}
