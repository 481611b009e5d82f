package store

import (
	"context"
	"errors"

	"github.com/merchware/shopd/internal/shop/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres if we ever outgrow it) implement this. It exposes sub-repositories
// to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Products() Products
	Orders() Orders
	OrderStatuses() OrderStatuses

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Prefer this
	// over Tx for multi-step operations such as order placement.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id. The access guard calls this on
	// every authenticated request, so it must stay a single-row read.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns users ordered by id with offset/limit pagination.
	ListUsers(ctx context.Context, offset, limit int64) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser rewrites username/email/password_hash and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// SetAdmin flips the role flag and bumps updated_at.
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error

	// DeleteUser removes the user; order rows keep their user_id for audit.
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty reports whether there are no users (first-run bootstrap).
	IsEmpty(ctx context.Context) (bool, error)
}

type Products interface {
	GetProductByID(ctx context.Context, id string) (domain.Product, error)

	// GetProductByName matches case-insensitively (unique constraint).
	GetProductByName(ctx context.Context, name string) (domain.Product, error)

	ListProducts(ctx context.Context, offset, limit int64) ([]domain.Product, error)

	// CreateProduct returns ErrAlreadyExists on a duplicate name.
	CreateProduct(ctx context.Context, p domain.Product) error

	UpdateProduct(ctx context.Context, p domain.Product) error

	// AdjustStock adds delta (may be negative) to the product's stock and
	// fails if the result would go below zero.
	AdjustStock(ctx context.Context, productID string, delta int64) error

	DeleteProduct(ctx context.Context, productID string) error
}

type Orders interface {
	// GetOrderByID returns the order including its items.
	GetOrderByID(ctx context.Context, id string) (domain.Order, error)

	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// CreateOrder inserts the order row and all item rows.
	CreateOrder(ctx context.Context, o domain.Order) error

	// UpdateOrderStatus points the order at a new status and bumps updated_at.
	UpdateOrderStatus(ctx context.Context, orderID, statusID string) error

	DeleteOrder(ctx context.Context, orderID string) error

	// CountOrdersByStatus reports how many orders reference a status
	// (status deletion guard).
	CountOrdersByStatus(ctx context.Context, statusID string) (int64, error)

	// CountUserOrdersInStatus reports how many of a user's orders sit in a
	// given status (account deletion guard).
	CountUserOrdersInStatus(ctx context.Context, userID, statusID string) (int64, error)
}

type OrderStatuses interface {
	GetStatusByID(ctx context.Context, id string) (domain.OrderStatus, error)

	GetStatusByName(ctx context.Context, name string) (domain.OrderStatus, error)

	ListStatuses(ctx context.Context) ([]domain.OrderStatus, error)

	// CreateStatus returns ErrAlreadyExists on a duplicate name.
	CreateStatus(ctx context.Context, s domain.OrderStatus) error

	UpdateStatus(ctx context.Context, s domain.OrderStatus) error

	DeleteStatus(ctx context.Context, statusID string) error
}
