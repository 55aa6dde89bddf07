package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/lumamoveis/catalog-backend/internal/app"
	"github.com/lumamoveis/catalog-backend/internal/category"
	"github.com/lumamoveis/catalog-backend/internal/config"
	"github.com/lumamoveis/catalog-backend/internal/product"
	"github.com/lumamoveis/catalog-backend/internal/response"
)

type listOptions struct {
	page     int
	pageSize int
	sortBy   string
	category string
}

// NewListCommand prints one catalog page as the API's JSON envelope.
func NewListCommand(root *RootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog(cmd.Context(), root)
			if err != nil {
				return err
			}

			req := product.ListRequest{
				Page:     opts.page,
				PageSize: opts.pageSize,
				SortBy:   product.SortBy(opts.sortBy),
			}
			if opts.category != "" {
				req.Category = &opts.category
			}

			result, err := catalog.Service.List(cmd.Context(), req)
			if err != nil {
				var verr *product.ValidationError
				if errors.As(err, &verr) {
					_ = writeJSON(cmd.OutOrStdout(), response.Error(verr.Error(), verr.Kind.Code(), nil))
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), response.Success(product.NewPresenter().ToList(result)))
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", product.DefaultPage, "page number")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", product.DefaultPageSize, "products per page (12, 24 or 36)")
	cmd.Flags().StringVar(&opts.sortBy, "sort-by", string(product.DefaultSortBy), "name_asc, name_desc, price_asc, price_desc or date_desc")
	cmd.Flags().StringVar(&opts.category, "category", "", "exact category filter")

	return cmd
}

// NewCategoriesCommand prints the distinct categories with product counts.
func NewCategoriesCommand(root *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog(cmd.Context(), root)
			if err != nil {
				return err
			}
			items, err := catalog.Categories.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), response.Success(map[string][]category.Item{"categories": items}))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of categories (0 for all)")

	return cmd
}

// newCatalog builds an in-memory catalog from the root flags.
func newCatalog(ctx context.Context, root *RootOptions) (*app.Catalog, error) {
	return app.NewCatalog(ctx, config.Config{SeedFile: root.SeedFile, Locale: root.Locale})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
