package product

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

var fixedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func listReq(page, size int, by SortBy) ListRequest {
	return ListRequest{Page: page, PageSize: size, SortBy: by}
}

func strPtr(s string) *string { return &s }

func ids(products []Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func mustQuery(t *testing.T, e Engine, all []Product, req ListRequest) ListResult {
	t.Helper()
	res, err := e.Query(all, req)
	if err != nil {
		t.Fatalf("query %+v: unexpected error %v", req, err)
	}
	return res
}

func expectIDs(t *testing.T, res ListResult, want ...int) {
	t.Helper()
	if got := ids(res.Products); !slices.Equal(got, want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
}

// makeProducts builds n products alternating between two categories, each
// one hour newer than the previous.
func makeProducts(n int) []Product {
	out := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		category := "Sala de Estar"
		if i%2 == 0 {
			category = "Quarto"
		}
		out = append(out, Product{
			ID:          i,
			Name:        fmt.Sprintf("Produto %02d", i),
			Category:    category,
			Price:       decimal.NewNullDecimal(decimal.NewFromInt(int64(i * 10))),
			DateCreated: fixedNow.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

// ============================================
// Validation
// ============================================

func TestQuery_ValidationOrder(t *testing.T) {
	all := DefaultCatalog(fixedNow)

	tests := []struct {
		name string
		req  ListRequest
		want *ValidationError
	}{
		{"page zero wins over bad size", ListRequest{Page: 0, PageSize: 15, SortBy: "bogus"}, ErrInvalidPageNumber},
		{"negative page", listReq(-3, 12, SortDateDesc), ErrInvalidPageNumber},
		{"page size zero", listReq(1, 0, SortDateDesc), ErrInvalidPageSize},
		{"page size fifteen", listReq(1, 15, SortDateDesc), ErrInvalidPageSize},
		{"bad size wins over bad sort", listReq(1, 15, "bogus"), ErrInvalidPageSize},
		{"unknown sort", listReq(1, 12, "price"), ErrInvalidSortCriteria},
		{"empty sort", listReq(1, 12, ""), ErrInvalidSortCriteria},
		{"bad sort wins over page overflow", listReq(9, 12, "bogus"), ErrInvalidSortCriteria},
		{"page past the end", listReq(2, 12, SortDateDesc), ErrPageExceedsTotal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Query(all, tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Kind != tt.want.Kind {
				t.Fatalf("expected kind %s, got %v", tt.want.Kind, err)
			}
		})
	}
}

func TestQuery_AcceptsEveryPageSize(t *testing.T) {
	for _, size := range PageSizes {
		res := mustQuery(t, Engine{}, DefaultCatalog(fixedNow), listReq(1, size, SortDateDesc))
		if res.Pagination.PageSize != size {
			t.Errorf("expected page size %d, got %d", size, res.Pagination.PageSize)
		}
	}
}

func TestErrorKind_Codes(t *testing.T) {
	tests := map[ErrorKind]string{
		InvalidPageNumber:   "INVALID_PAGE_NUMBER",
		InvalidPageSize:     "INVALID_PAGE_SIZE",
		InvalidSortCriteria: "INVALID_SORT_CRITERIA",
		PageExceedsTotal:    "PAGE_EXCEEDS_TOTAL",
	}
	for kind, want := range tests {
		if got := kind.Code(); got != want {
			t.Errorf("%s: expected code %s, got %s", kind, want, got)
		}
	}
	if PageExceedsTotal.String() != "PageExceedsTotal" {
		t.Errorf("unexpected kind name %q", PageExceedsTotal.String())
	}
}

// ============================================
// Filtering
// ============================================

func TestQuery_FilterByCategory(t *testing.T) {
	res := mustQuery(t, Engine{}, DefaultCatalog(fixedNow), ListRequest{Page: 1, PageSize: 12, SortBy: SortDateDesc, Category: strPtr("Quarto")})

	expectIDs(t, res, 5, 3)
	if res.Pagination.TotalProducts != 2 {
		t.Fatalf("expected 2 products, got %d", res.Pagination.TotalProducts)
	}
	for _, p := range res.Products {
		if p.Category != "Quarto" {
			t.Fatalf("category %q leaked into result", p.Category)
		}
	}
}

func TestQuery_FilterIsCaseSensitive(t *testing.T) {
	res := mustQuery(t, Engine{}, DefaultCatalog(fixedNow), ListRequest{Page: 1, PageSize: 12, SortBy: SortDateDesc, Category: strPtr("quarto")})
	if len(res.Products) != 0 || res.Pagination.TotalProducts != 0 {
		t.Fatalf("expected no match, got %+v", res.Pagination)
	}
}

func TestQuery_EmptyCategoryMeansNoFilter(t *testing.T) {
	res := mustQuery(t, Engine{}, DefaultCatalog(fixedNow), ListRequest{Page: 1, PageSize: 12, SortBy: SortDateDesc, Category: strPtr("")})
	if res.Pagination.TotalProducts != 5 {
		t.Fatalf("expected 5 products, got %d", res.Pagination.TotalProducts)
	}
}

func TestQuery_TotalIndependentOfPaging(t *testing.T) {
	all := makeProducts(40)
	for _, by := range []SortBy{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortDateDesc} {
		for _, size := range PageSizes {
			res := mustQuery(t, Engine{}, all, ListRequest{Page: 1, PageSize: size, SortBy: by, Category: strPtr("Quarto")})
			if res.Pagination.TotalProducts != 20 {
				t.Errorf("sort %s size %d: expected 20 products, got %d", by, size, res.Pagination.TotalProducts)
			}
		}
	}
}

// ============================================
// Sorting
// ============================================

func TestQuery_SortByPrice(t *testing.T) {
	all := DefaultCatalog(fixedNow)

	res := mustQuery(t, Engine{}, all, listReq(1, 24, SortPriceAsc))
	expectIDs(t, res, 4, 2, 3, 5, 1)

	prices := make([]string, 0)
	for _, p := range res.Products {
		prices = append(prices, p.Price.Decimal.StringFixed(0))
	}
	if want := []string{"890", "1650", "1890", "2450", "2890"}; !slices.Equal(prices, want) {
		t.Fatalf("expected prices %v, got %v", want, prices)
	}

	res = mustQuery(t, Engine{}, all, listReq(1, 24, SortPriceDesc))
	expectIDs(t, res, 1, 5, 3, 2, 4)
}

func TestQuery_MissingPriceSortsAsZero(t *testing.T) {
	all := []Product{
		{ID: 1, Name: "a", Price: decimal.NewNullDecimal(decimal.NewFromInt(50))},
		{ID: 2, Name: "b"},
		{ID: 3, Name: "c", Price: decimal.NewNullDecimal(decimal.Zero)},
		{ID: 4, Name: "d", Price: decimal.NewNullDecimal(decimal.NewFromInt(-1))},
	}

	res := mustQuery(t, Engine{}, all, listReq(1, 12, SortPriceAsc))
	expectIDs(t, res, 4, 2, 3, 1)
	if res.Products[1].Price.Valid {
		t.Fatalf("sorting must not fill in a missing price")
	}
}

func TestQuery_SortByName(t *testing.T) {
	all := DefaultCatalog(fixedNow)

	expectIDs(t, mustQuery(t, Engine{}, all, listReq(1, 12, SortNameAsc)), 5, 3, 2, 4, 1)
	expectIDs(t, mustQuery(t, Engine{}, all, listReq(1, 12, SortNameDesc)), 1, 4, 2, 3, 5)
}

func TestQuery_NameSortUsesCollation(t *testing.T) {
	all := []Product{
		{ID: 1, Name: "Zebra"},
		{ID: 2, Name: "abacate"},
		{ID: 3, Name: "Área"},
	}

	expectIDs(t, mustQuery(t, Engine{}, all, listReq(1, 12, SortNameAsc)), 2, 3, 1)
	expectIDs(t, mustQuery(t, Engine{Locale: language.English}, all, listReq(1, 12, SortNameAsc)), 2, 3, 1)
}

func TestQuery_DateDescPutsFeaturedFirst(t *testing.T) {
	expectIDs(t, mustQuery(t, Engine{}, DefaultCatalog(fixedNow), listReq(1, 12, SortDateDesc)), 5, 1, 2, 3, 4)
}

func TestQuery_FeaturedBeatsNewerDates(t *testing.T) {
	all := []Product{
		{ID: 1, Name: "new plain", DateCreated: fixedNow},
		{ID: 2, Name: "old featured", Featured: true, DateCreated: fixedNow.AddDate(-3, 0, 0)},
		{ID: 3, Name: "newer plain", DateCreated: fixedNow.Add(time.Hour)},
		{ID: 4, Name: "older featured", Featured: true, DateCreated: fixedNow.AddDate(-4, 0, 0)},
	}

	res := mustQuery(t, Engine{}, all, listReq(1, 12, SortDateDesc))
	expectIDs(t, res, 2, 4, 3, 1)

	seenPlain := false
	for _, p := range res.Products {
		if !p.Featured {
			seenPlain = true
		}
		if seenPlain && p.Featured {
			t.Fatalf("featured product %d after a non-featured one", p.ID)
		}
	}
}

func TestQuery_SortIsStable(t *testing.T) {
	all := make([]Product, 0, 10)
	for i := 1; i <= 10; i++ {
		all = append(all, Product{
			ID:          i,
			Name:        "Mesa",
			Price:       decimal.NewNullDecimal(decimal.NewFromInt(100)),
			DateCreated: fixedNow,
		})
	}

	for _, by := range []SortBy{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortDateDesc} {
		t.Run(string(by), func(t *testing.T) {
			expectIDs(t, mustQuery(t, Engine{}, all, listReq(1, 12, by)), 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
		})
	}
}

// ============================================
// Pagination
// ============================================

func TestQuery_Pagination(t *testing.T) {
	all := makeProducts(30)

	first := mustQuery(t, Engine{}, all, listReq(1, 12, SortPriceAsc))
	wantFirst := Pagination{
		TotalProducts:   30,
		TotalPages:      3,
		CurrentPage:     1,
		PageSize:        12,
		HasNextPage:     true,
		HasPreviousPage: false,
	}
	if first.Pagination != wantFirst {
		t.Fatalf("expected %+v, got %+v", wantFirst, first.Pagination)
	}
	if len(first.Products) != 12 || first.Products[0].ID != 1 {
		t.Fatalf("unexpected first page %v", ids(first.Products))
	}

	second := mustQuery(t, Engine{}, all, listReq(2, 12, SortPriceAsc))
	if len(second.Products) != 12 || second.Products[0].ID != 13 {
		t.Fatalf("unexpected second page %v", ids(second.Products))
	}
	if !second.Pagination.HasNextPage || !second.Pagination.HasPreviousPage {
		t.Fatalf("middle page must have both neighbours, got %+v", second.Pagination)
	}

	last := mustQuery(t, Engine{}, all, listReq(3, 12, SortPriceAsc))
	if len(last.Products) != 6 || last.Products[0].ID != 25 {
		t.Fatalf("unexpected last page %v", ids(last.Products))
	}
	if last.Pagination.HasNextPage || !last.Pagination.HasPreviousPage {
		t.Fatalf("unexpected last page flags %+v", last.Pagination)
	}

	if _, err := Query(all, listReq(4, 12, SortPriceAsc)); !errors.Is(err, ErrPageExceedsTotal) {
		t.Fatalf("expected ErrPageExceedsTotal, got %v", err)
	}
}

func TestQuery_PageLengths(t *testing.T) {
	all := makeProducts(50)
	for _, size := range PageSizes {
		totalPages := (50 + size - 1) / size
		for page := 1; page <= totalPages; page++ {
			res := mustQuery(t, Engine{}, all, listReq(page, size, SortDateDesc))
			if len(res.Products) > size {
				t.Errorf("size %d page %d: %d products", size, page, len(res.Products))
			}
			if page < totalPages && len(res.Products) != size {
				t.Errorf("size %d page %d: expected a full page, got %d", size, page, len(res.Products))
			}
		}
	}
}

func TestQuery_ExactMultipleHasNoExtraPage(t *testing.T) {
	all := makeProducts(24)

	res := mustQuery(t, Engine{}, all, listReq(2, 12, SortDateDesc))
	if len(res.Products) != 12 || res.Pagination.TotalPages != 2 || res.Pagination.HasNextPage {
		t.Fatalf("unexpected last page %+v", res.Pagination)
	}

	if _, err := Query(all, listReq(3, 12, SortDateDesc)); !errors.Is(err, ErrPageExceedsTotal) {
		t.Fatalf("expected ErrPageExceedsTotal, got %v", err)
	}
}

func TestQuery_EmptyResultIsNotAnError(t *testing.T) {
	for _, page := range []int{1, 2, 500} {
		res := mustQuery(t, Engine{}, DefaultCatalog(fixedNow), ListRequest{Page: page, PageSize: 12, SortBy: SortDateDesc, Category: strPtr("Cozinha")})
		if res.Products == nil || len(res.Products) != 0 {
			t.Fatalf("page %d: expected an empty non-nil page, got %v", page, res.Products)
		}
		want := Pagination{
			TotalProducts:   0,
			TotalPages:      0,
			CurrentPage:     page,
			PageSize:        12,
			HasNextPage:     false,
			HasPreviousPage: page > 1,
		}
		if res.Pagination != want {
			t.Fatalf("page %d: expected %+v, got %+v", page, want, res.Pagination)
		}
	}

	res := mustQuery(t, Engine{}, nil, listReq(1, 12, SortDateDesc))
	if res.Products == nil || len(res.Products) != 0 {
		t.Fatalf("expected an empty non-nil page, got %v", res.Products)
	}
}

// ============================================
// Purity
// ============================================

func TestQuery_DoesNotMutateInput(t *testing.T) {
	all := DefaultCatalog(fixedNow)
	before := slices.Clone(all)

	res := mustQuery(t, Engine{}, all, listReq(1, 12, SortNameAsc))
	if !reflect.DeepEqual(before, all) {
		t.Fatalf("query reordered or changed its input")
	}

	res.Products[0].Name = "changed"
	if !reflect.DeepEqual(before, all) {
		t.Fatalf("result shares storage with the input")
	}
}

func TestQuery_Idempotent(t *testing.T) {
	all := makeProducts(30)
	req := ListRequest{Page: 2, PageSize: 12, SortBy: SortNameDesc}

	a := mustQuery(t, Engine{}, all, req)
	b := mustQuery(t, Engine{}, all, req)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated queries differ: %v vs %v", ids(a.Products), ids(b.Products))
	}
}

func TestQuery_ConcurrentCalls(t *testing.T) {
	all := makeProducts(40)
	done := make(chan []int, 8)
	for i := 0; i < 8; i++ {
		go func() {
			res, err := Query(all, listReq(1, 36, SortNameAsc))
			if err != nil {
				done <- nil
				return
			}
			done <- ids(res.Products)
		}()
	}

	want := ids(mustQuery(t, Engine{}, all, listReq(1, 36, SortNameAsc)).Products)
	for i := 0; i < 8; i++ {
		if got := <-done; !slices.Equal(got, want) {
			t.Errorf("concurrent query returned %v, want %v", got, want)
		}
	}
}
