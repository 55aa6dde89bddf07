package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepository)(nil)

const (
	productColumns = `product_id, name, description, category, price, original_price, discount_percentage, image_url, status, featured, is_new, date_created`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM catalog_product
		ORDER BY product_id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM catalog_product
		WHERE product_id = $1
	`
	insertProductQuery = `
		INSERT INTO catalog_product (name, description, category, price, original_price, discount_percentage, image_url, status, featured, is_new, date_created)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING product_id
	`
	insertProductWithIDQuery = `
		INSERT INTO catalog_product (product_id, name, description, category, price, original_price, discount_percentage, image_url, status, featured, is_new, date_created)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`
	deleteAllProductsQuery = `DELETE FROM catalog_product`
	syncProductIDSeqQuery  = `SELECT setval(pg_get_serial_sequence('catalog_product', 'product_id'), COALESCE((SELECT MAX(product_id) FROM catalog_product), 0) + 1, false)`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	var id int
	err := r.db.QueryRowContext(ctx, insertProductQuery,
		p.Name,
		p.Description,
		p.Category,
		p.Price,
		p.OriginalPrice,
		p.DiscountPercentage,
		p.ImageURL,
		int(p.Status),
		p.Featured,
		p.IsNew,
		p.DateCreated,
	).Scan(&id)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return p, nil
}

// Reset deletes all products and inserts the provided list in a single
// transaction. Products with explicit IDs go in first, then the serial is
// moved past them and the rest take fresh IDs from it.
func (r *PostgresRepository) Reset(ctx context.Context, products []Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteAllProductsQuery); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	for _, p := range products {
		if p.ID <= 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, insertProductWithIDQuery,
			p.ID, p.Name, p.Description, p.Category, p.Price, p.OriginalPrice,
			p.DiscountPercentage, p.ImageURL, int(p.Status), p.Featured, p.IsNew, p.DateCreated,
		); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, syncProductIDSeqQuery); err != nil {
		return fmt.Errorf("sync product id sequence: %w", err)
	}

	for _, p := range products {
		if p.ID > 0 {
			continue
		}
		var id int
		if err := tx.QueryRowContext(ctx, insertProductQuery,
			p.Name, p.Description, p.Category, p.Price, p.OriginalPrice,
			p.DiscountPercentage, p.ImageURL, int(p.Status), p.Featured, p.IsNew, p.DateCreated,
		).Scan(&id); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		description   sql.NullString
		price         decimal.NullDecimal
		originalPrice decimal.NullDecimal
		imageURL      sql.NullString
		status        int
		dateCreated   time.Time
	)
	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.Category,
		&price,
		&originalPrice,
		&p.DiscountPercentage,
		&imageURL,
		&status,
		&p.Featured,
		&p.IsNew,
		&dateCreated,
	); err != nil {
		return Product{}, err
	}

	if description.Valid {
		p.Description = description.String
	}
	if imageURL.Valid {
		p.ImageURL = imageURL.String
	}
	p.Price = price
	p.OriginalPrice = originalPrice
	p.Status = Status(status)
	p.DateCreated = dateCreated.UTC()
	return p, nil
}
