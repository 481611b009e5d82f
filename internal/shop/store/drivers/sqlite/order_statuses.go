package sqlite

import (
	"context"
	"database/sql"

	"github.com/merchware/shopd/internal/shop/domain"
)

type statusesRepo struct {
	db dbtx
}

const statusColumns = `id, name, created_at, updated_at`

func scanStatus(row interface{ Scan(dest ...any) error }) (domain.OrderStatus, error) {
	var s domain.OrderStatus
	var updatedAt sql.NullTime
	err := row.Scan(&s.ID, &s.Name, &s.CreatedAt, &updatedAt)
	if err != nil {
		return domain.OrderStatus{}, err
	}
	s.UpdatedAt = mapNullTimePtr(updatedAt)
	return s, nil
}

func (r *statusesRepo) GetStatusByID(ctx context.Context, id string) (domain.OrderStatus, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+statusColumns+` FROM order_statuses WHERE id = ?`, id)
	s, err := scanStatus(row)
	if err != nil {
		return domain.OrderStatus{}, mapNotFound(err)
	}
	return s, nil
}

func (r *statusesRepo) GetStatusByName(ctx context.Context, name string) (domain.OrderStatus, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+statusColumns+` FROM order_statuses WHERE name = ?`, name)
	s, err := scanStatus(row)
	if err != nil {
		return domain.OrderStatus{}, mapNotFound(err)
	}
	return s, nil
}

func (r *statusesRepo) ListStatuses(ctx context.Context) ([]domain.OrderStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+statusColumns+` FROM order_statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []domain.OrderStatus
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *statusesRepo) CreateStatus(ctx context.Context, s domain.OrderStatus) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO order_statuses (id, name, created_at) VALUES (?, ?, ?)`,
		s.ID, s.Name, orNow(s.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *statusesRepo) UpdateStatus(ctx context.Context, s domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE order_statuses SET name = ?, updated_at = ? WHERE id = ?`,
		s.Name, now(), s.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *statusesRepo) DeleteStatus(ctx context.Context, statusID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM order_statuses WHERE id = ?`, statusID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
