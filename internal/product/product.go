package product

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the availability code stored with every product.
type Status int

const (
	StatusAvailable Status = iota
	StatusOnRequest
	StatusOutOfStock
)

var statusTags = map[Status]string{
	StatusAvailable:  "available",
	StatusOnRequest:  "on_request",
	StatusOutOfStock: "out_of_stock",
}

// String returns the external tag used by API consumers.
func (s Status) String() string {
	if tag, ok := statusTags[s]; ok {
		return tag
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) Valid() bool {
	_, ok := statusTags[s]
	return ok
}

// ParseStatus accepts either the external tag or the numeric code.
func ParseStatus(v string) (Status, error) {
	v = strings.TrimSpace(v)
	for s, tag := range statusTags {
		if v == tag || v == fmt.Sprint(int(s)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown product status %q", v)
}

// Product is a catalog record. Records are owned by the Repository; the
// query engine only ever reads them.
type Product struct {
	ID                 int
	Name               string
	Description        string
	Category           string
	Price              decimal.NullDecimal // absent when sold on request
	OriginalPrice      decimal.NullDecimal // present only when discounted
	DiscountPercentage int
	ImageURL           string
	Status             Status
	Featured           bool
	IsNew              bool
	DateCreated        time.Time
}

// validateProduct returns every field problem at once, keyed by the JSON
// field name used by the API.
func validateProduct(p Product) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(p.Category) == "" {
		errs["category"] = "category is required"
	}
	if p.Price.Valid && p.Price.Decimal.IsNegative() {
		errs["price"] = "price must be >= 0"
	}
	if p.OriginalPrice.Valid {
		switch {
		case !p.Price.Valid:
			errs["originalPrice"] = "originalPrice requires price"
		case p.OriginalPrice.Decimal.LessThan(p.Price.Decimal):
			errs["originalPrice"] = "originalPrice must be >= price"
		}
	}
	if p.DiscountPercentage < 0 {
		errs["discountPercentage"] = "discountPercentage must be >= 0"
	}
	if !p.Status.Valid() {
		errs["status"] = "status must be one of available, on_request, out_of_stock"
	}
	return errs
}
