package product

import (
	"errors"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/lumamoveis/catalog-backend/internal/response"
)

const basePath = "/api/v1/internal/product"

type Handler struct {
	service    *Service
	presenter  *Presenter
	seed       []Product
	allowReset bool
}

// NewHandler builds the catalog handler. seed is what /dev/reset-products
// restores; the endpoint only works when allowReset is set.
func NewHandler(service *Service, seed []Product, allowReset bool) *Handler {
	return &Handler{
		service:    service,
		presenter:  NewPresenter(),
		seed:       seed,
		allowReset: allowReset,
	}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get(basePath, h.listProducts)
	app.Get(basePath+"/:id<int>", h.getProduct)

	app.Post("/dev/reset-products", h.resetProducts)
}

// RegisterProtectedRoutes mounts write endpoints behind auth.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App, auth fiber.Handler) {
	app.Post(basePath, auth, h.createProduct)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	req, fieldErrs := parseListRequest(c)
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(response.Error("Invalid query parameters", response.CodeValidation, fieldErrs))
	}

	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(statusForKind(verr.Kind)).JSON(response.Error(verr.Error(), verr.Kind.Code(), nil))
		}
		return err
	}
	return c.JSON(response.Success(h.presenter.ToList(result)))
}

func statusForKind(k ErrorKind) int {
	switch k {
	case InvalidPageNumber, InvalidPageSize, InvalidSortCriteria, PageExceedsTotal:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// parseListRequest coerces the raw query string. Only absent keys take their
// defaults: an empty page or pageSize coerces to 0 and an empty sortBy is
// passed through, so the usual checks reject them. An empty category means
// no filter. Range checks on pageSize and sortBy are left to the engine.
func parseListRequest(c *fiber.Ctx) (ListRequest, []response.FieldError) {
	req := ListRequest{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		SortBy:   DefaultSortBy,
	}
	var errs []response.FieldError
	args := c.Context().QueryArgs()

	if args.Has("page") {
		n, msg := coerceInt(c.Query("page"))
		if msg == "" && n <= 0 {
			msg = "Number must be greater than 0"
		}
		if msg != "" {
			errs = append(errs, response.FieldError{Field: "page", Message: msg})
		} else {
			req.Page = n
		}
	}
	if args.Has("pageSize") {
		n, msg := coerceInt(c.Query("pageSize"))
		if msg != "" {
			errs = append(errs, response.FieldError{Field: "pageSize", Message: msg})
		} else {
			req.PageSize = n
		}
	}
	if args.Has("sortBy") {
		req.SortBy = SortBy(c.Query("sortBy"))
	}
	if raw := c.Query("category"); raw != "" {
		req.Category = &raw
	}
	return req, errs
}

// maxSafeInteger bounds accepted numbers to those representable exactly as
// a float64.
const maxSafeInteger = 1<<53 - 1

// coerceInt converts a query value to an integer. Blank input is 0.
func coerceInt(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ""
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return 0, "Expected number, received nan"
	}
	if math.IsInf(f, 0) || math.Abs(f) > maxSafeInteger {
		return 0, "Number must be a safe integer"
	}
	if f != math.Trunc(f) {
		return 0, "Expected integer, received float"
	}
	return int(f), ""
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Error("Invalid product id", response.CodeValidation, nil))
	}

	p, err := h.service.GetByID(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(response.Error("Product not found", response.CodeNotFound, nil))
	}
	if err != nil {
		return err
	}
	return c.JSON(response.Success(h.presenter.ToResponse(p)))
}

type createProductInput struct {
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Category           string           `json:"category"`
	Price              *decimal.Decimal `json:"price"`
	OriginalPrice      *decimal.Decimal `json:"originalPrice"`
	DiscountPercentage int              `json:"discountPercentage"`
	ImageURL           string           `json:"imageUrl"`
	Status             string           `json:"status"`
	Featured           bool             `json:"featured"`
	IsNew              bool             `json:"isNew"`
}

func (in createProductInput) toProduct() (Product, map[string]string) {
	p := Product{
		Name:               strings.TrimSpace(in.Name),
		Description:        strings.TrimSpace(in.Description),
		Category:           strings.TrimSpace(in.Category),
		DiscountPercentage: in.DiscountPercentage,
		ImageURL:           strings.TrimSpace(in.ImageURL),
		Featured:           in.Featured,
		IsNew:              in.IsNew,
	}
	if in.Price != nil {
		p.Price = decimal.NewNullDecimal(*in.Price)
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = decimal.NewNullDecimal(*in.OriginalPrice)
	}
	if in.Status != "" {
		s, err := ParseStatus(in.Status)
		if err != nil {
			p.Status = Status(-1)
		} else {
			p.Status = s
		}
	}
	return p, validateProduct(p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	in := new(createProductInput)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.Error("Invalid request body", response.CodeValidation, nil))
	}

	// validate payload and return all validation errors together
	p, ves := in.toProduct()
	if len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(response.Error("Invalid product", response.CodeValidation, fieldErrors(ves)))
	}

	created, err := h.service.Create(c.UserContext(), p)
	if err != nil {
		return err
	}
	log.Printf("catalog: created product %d %q", created.ID, created.Name)
	return c.Status(fiber.StatusCreated).JSON(response.Success(h.presenter.ToResponse(created)))
}

func fieldErrors(m map[string]string) []response.FieldError {
	out := make([]response.FieldError, 0, len(m))
	for field, msg := range m {
		out = append(out, response.FieldError{Field: field, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// resetProducts restores the seed catalog. Only enabled when
// ALLOW_RESET_PRODUCTS=1.
func (h *Handler) resetProducts(c *fiber.Ctx) error {
	if !h.allowReset {
		return c.Status(fiber.StatusForbidden).JSON(response.Error("reset not allowed", response.CodeForbidden, nil))
	}
	if err := h.service.Reset(c.UserContext(), h.seed); err != nil {
		return err
	}
	log.Printf("catalog: reset to %d seed products", len(h.seed))
	return c.JSON(response.Success(fiber.Map{"inserted": len(h.seed)}))
}
