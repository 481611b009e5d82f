package domain

import "time"

// Order is always created in the "pending" status. TotalCents is computed
// from the product prices current at placement time and does not change if
// prices change later.
type Order struct {
	ID         string
	UserID     string
	StatusID   string
	TotalCents int64
	Items      []OrderItem
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// OrderItem records the quantity and the unit price the product had when
// the order was placed.
type OrderItem struct {
	ProductID      string
	Quantity       int64
	UnitPriceCents int64
}
