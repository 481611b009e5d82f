package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt encoded, never serialized outward
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time // nil until first modification
}
