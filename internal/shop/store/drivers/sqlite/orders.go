package sqlite

import (
	"context"
	"database/sql"

	"github.com/merchware/shopd/internal/shop/domain"
)

type ordersRepo struct {
	db dbtx
}

const orderColumns = `id, user_id, status_id, total_cents, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (domain.Order, error) {
	var o domain.Order
	var updatedAt sql.NullTime
	err := row.Scan(&o.ID, &o.UserID, &o.StatusID, &o.TotalCents, &o.CreatedAt, &updatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.UpdatedAt = mapNullTimePtr(updatedAt)
	return o, nil
}

func (r *ordersRepo) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, mapNotFound(err)
	}

	items, err := r.itemsForOrder(ctx, o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *ordersRepo) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.itemsForOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *ordersRepo) itemsForOrder(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, quantity, unit_price_cents
		 FROM order_items WHERE order_id = ? ORDER BY product_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ordersRepo) CreateOrder(ctx context.Context, o domain.Order) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, status_id, total_cents, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.StatusID, o.TotalCents, orNow(o.CreatedAt),
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, it := range o.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents)
			 VALUES (?, ?, ?, ?)`,
			o.ID, it.ProductID, it.Quantity, it.UnitPriceCents,
		)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *ordersRepo) UpdateOrderStatus(ctx context.Context, orderID, statusID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status_id = ?, updated_at = ? WHERE id = ?`,
		statusID, now(), orderID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ordersRepo) DeleteOrder(ctx context.Context, orderID string) error {
	// order_items cascade per schema.
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, orderID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ordersRepo) CountOrdersByStatus(ctx context.Context, statusID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status_id = ?`, statusID).Scan(&count)
	return count, err
}

func (r *ordersRepo) CountUserOrdersInStatus(ctx context.Context, userID, statusID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = ? AND status_id = ?`,
		userID, statusID).Scan(&count)
	return count, err
}
