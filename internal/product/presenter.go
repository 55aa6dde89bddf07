package product

import (
	"github.com/shopspring/decimal"
)

// Presenter shapes catalog results for API responses.
type Presenter struct{}

func NewPresenter() *Presenter {
	return &Presenter{}
}

// ProductResponse is the public product shape. Status is sent as its tag
// (available, on_request, out_of_stock) rather than the stored code, and
// dateCreated keeps millisecond precision.
type ProductResponse struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              *float64 `json:"price"`
	OriginalPrice      *float64 `json:"originalPrice"`
	DiscountPercentage int      `json:"discountPercentage"`
	ImageURL           string   `json:"imageUrl"`
	Status             string   `json:"status"`
	Featured           bool     `json:"featured"`
	IsNew              bool     `json:"isNew"`
	DateCreated        string   `json:"dateCreated"`
}

// timestampLayout is RFC 3339 with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type PaginationResponse struct {
	TotalProducts   int  `json:"totalProducts"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type ListResponse struct {
	Products   []ProductResponse  `json:"products"`
	Pagination PaginationResponse `json:"pagination"`
}

func (p *Presenter) ToResponse(pr Product) ProductResponse {
	return ProductResponse{
		ID:                 pr.ID,
		Name:               pr.Name,
		Description:        pr.Description,
		Category:           pr.Category,
		Price:              amount(pr.Price),
		OriginalPrice:      amount(pr.OriginalPrice),
		DiscountPercentage: pr.DiscountPercentage,
		ImageURL:           pr.ImageURL,
		Status:             pr.Status.String(),
		Featured:           pr.Featured,
		IsNew:              pr.IsNew,
		DateCreated:        pr.DateCreated.UTC().Format(timestampLayout),
	}
}

func (p *Presenter) ToList(res ListResult) ListResponse {
	products := make([]ProductResponse, 0, len(res.Products))
	for _, pr := range res.Products {
		products = append(products, p.ToResponse(pr))
	}
	pg := res.Pagination
	return ListResponse{
		Products: products,
		Pagination: PaginationResponse{
			TotalProducts:   pg.TotalProducts,
			TotalPages:      pg.TotalPages,
			CurrentPage:     pg.CurrentPage,
			PageSize:        pg.PageSize,
			HasNextPage:     pg.HasNextPage,
			HasPreviousPage: pg.HasPreviousPage,
		},
	}
}

func amount(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.InexactFloat64()
	return &v
}
