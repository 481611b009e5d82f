package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/merchware/shopd/internal/shop/domain"
)

type productsRepo struct {
	db dbtx
}

const productColumns = `id, name, description, price_cents, stock, is_available, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (domain.Product, error) {
	var p domain.Product
	var updatedAt sql.NullTime
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.PriceCents,
		&p.Stock, &p.IsAvailable, &p.CreatedAt, &updatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.UpdatedAt = mapNullTimePtr(updatedAt)
	return p, nil
}

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) GetProductByName(ctx context.Context, name string) (domain.Product, error) {
	// The name column is COLLATE NOCASE so = matches case-insensitively.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE name = ?`, strings.TrimSpace(name))
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) ListProducts(ctx context.Context, offset, limit int64) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price_cents, stock, is_available, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Stock, p.IsAvailable, orNow(p.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price_cents = ?, stock = ?,
		        is_available = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.PriceCents, p.Stock, p.IsAvailable, now(), p.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *productsRepo) AdjustStock(ctx context.Context, productID string, delta int64) error {
	// The CHECK (stock >= 0) constraint rejects oversells at the database
	// level, on top of the service-level check.
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock = stock + ? WHERE id = ?`, delta, productID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *productsRepo) DeleteProduct(ctx context.Context, productID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
