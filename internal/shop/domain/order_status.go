package domain

import "time"

// StatusPending is seeded by the initial migration; orders are born pending
// and only pending orders can be cancelled.
const StatusPending = "pending"

type OrderStatus struct {
	ID        string
	Name      string // unique
	CreatedAt time.Time
	UpdatedAt *time.Time
}
