package domain

import "time"

// Product prices are carried in integer cents to keep arithmetic exact;
// the JSON layer is responsible for presentation.
type Product struct {
	ID          string
	Name        string // unique, case-insensitive
	Description string
	PriceCents  int64
	Stock       int64
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
