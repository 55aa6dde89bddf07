package product

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const day = 24 * time.Hour

// DefaultCatalog returns the built-in furniture catalog, with creation dates
// relative to now.
func DefaultCatalog(now time.Time) []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Sofá Retrátil Premium",
			Description: "Sofá retrátil de 3 lugares com tecido suede, estrutura em madeira maciça e sistema de reclinação",
			Category:    "Sala de Estar",
			Price:       price("2890.00"),
			ImageURL:    "/images/sofa-retratil-premium.jpg",
			Status:      StatusAvailable,
			Featured:    true,
			IsNew:       true,
			DateCreated: now.Add(-5 * day),
		},
		{
			ID:                 2,
			Name:               "Mesa de Jantar Elegance",
			Description:        "Mesa de jantar para 6 pessoas em madeira nobre com acabamento laqueado",
			Category:           "Sala de Jantar",
			Price:              price("1650.00"),
			OriginalPrice:      price("1950.00"),
			DiscountPercentage: 15,
			ImageURL:           "/images/mesa-jantar-elegance.jpg",
			Status:             StatusAvailable,
			Featured:           true,
			IsNew:              true,
			DateCreated:        now.Add(-10 * day),
		},
		{
			ID:          3,
			Name:        "Guarda-Roupa Casal Moderno",
			Description: "Guarda-roupa de 6 portas com espelho, gavetas e prateleiras internas",
			Category:    "Quarto",
			Price:       price("1890.00"),
			ImageURL:    "/images/guarda-roupa-moderno.jpg",
			Status:      StatusAvailable,
			IsNew:       true,
			DateCreated: now.Add(-15 * day),
		},
		{
			ID:                 4,
			Name:               "Rack para TV Suspenso",
			Description:        "Rack suspenso para TV até 65 polegadas com nichos e gavetas",
			Category:           "Sala de Estar",
			Price:              price("890.00"),
			OriginalPrice:      price("1090.00"),
			DiscountPercentage: 18,
			ImageURL:           "/images/rack-tv-suspenso.jpg",
			Status:             StatusAvailable,
			IsNew:              true,
			DateCreated:        now.Add(-20 * day),
		},
		{
			ID:          5,
			Name:        "Cama Box Queen Size",
			Description: "Cama box queen size com colchão de molas ensacadas e pillow top",
			Category:    "Quarto",
			Price:       price("2450.00"),
			ImageURL:    "/images/cama-box-queen.jpg",
			Status:      StatusAvailable,
			Featured:    true,
			IsNew:       true,
			DateCreated: now.Add(-3 * day),
		},
	}
}

func price(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

// seedFile is the YAML layout of a catalog seed file:
//
//	products:
//	  - id: 1
//	    name: Sofá Retrátil Premium
//	    category: Sala de Estar
//	    price: 2890
//	    status: available
//	    featured: true
//	    ageDays: 5
type seedFile struct {
	Products []seedRecord `yaml:"products"`
}

type seedRecord struct {
	ID                 int        `yaml:"id"`
	Name               string     `yaml:"name"`
	Description        string     `yaml:"description"`
	Category           string     `yaml:"category"`
	Price              *float64   `yaml:"price"`
	OriginalPrice      *float64   `yaml:"originalPrice"`
	DiscountPercentage int        `yaml:"discountPercentage"`
	ImageURL           string     `yaml:"imageUrl"`
	Status             string     `yaml:"status"`
	Featured           bool       `yaml:"featured"`
	IsNew              bool       `yaml:"isNew"`
	DateCreated        *time.Time `yaml:"dateCreated"`
	AgeDays            int        `yaml:"ageDays"`
}

// LoadSeedFile reads a YAML catalog. Records without dateCreated are dated
// ageDays before now.
func LoadSeedFile(path string, now time.Time) ([]Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(b, now)
}

func ParseSeed(b []byte, now time.Time) ([]Product, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	out := make([]Product, 0, len(f.Products))
	seen := map[int]bool{}
	for i, rec := range f.Products {
		p, err := rec.toProduct(now)
		if err != nil {
			return nil, fmt.Errorf("seed product #%d: %w", i+1, err)
		}
		if p.ID != 0 {
			if seen[p.ID] {
				return nil, fmt.Errorf("seed product #%d: duplicate id %d", i+1, p.ID)
			}
			seen[p.ID] = true
		}
		out = append(out, p)
	}
	return out, nil
}

func (rec seedRecord) toProduct(now time.Time) (Product, error) {
	p := Product{
		ID:                 rec.ID,
		Name:               rec.Name,
		Description:        rec.Description,
		Category:           rec.Category,
		DiscountPercentage: rec.DiscountPercentage,
		ImageURL:           rec.ImageURL,
		Featured:           rec.Featured,
		IsNew:              rec.IsNew,
	}
	if rec.Price != nil {
		p.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*rec.Price))
	}
	if rec.OriginalPrice != nil {
		p.OriginalPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*rec.OriginalPrice))
	}
	if rec.Status != "" {
		s, err := ParseStatus(rec.Status)
		if err != nil {
			return Product{}, err
		}
		p.Status = s
	}
	if rec.DateCreated != nil {
		p.DateCreated = rec.DateCreated.UTC()
	} else {
		p.DateCreated = now.Add(-time.Duration(rec.AgeDays) * day)
	}

	if errs := validateProduct(p); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, m := range errs {
			msgs = append(msgs, m)
		}
		slices.Sort(msgs)
		return Product{}, errors.New(strings.Join(msgs, "; "))
	}
	return p, nil
}
