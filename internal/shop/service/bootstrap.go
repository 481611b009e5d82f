package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/merchware/shopd/internal/shop/domain"
	"github.com/merchware/shopd/internal/shop/store"
	"github.com/merchware/shopd/pkg/cryptox"
	"github.com/merchware/shopd/pkg/idx"
	"github.com/merchware/shopd/pkg/slogx"
)

// BootstrapService seeds the first admin account on an empty database so a
// fresh deployment can log in without poking at sqlite by hand.
type BootstrapService struct {
	Store store.Store

	// AdminUsername/AdminPassword come from SHOP_ADMIN_USERNAME and
	// SHOP_ADMIN_PASSWORD. When either is empty, bootstrap is a no-op.
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// SeedAdmin creates the configured admin if and only if the users table is
// empty. It is safe to call on every startup.
func (s *BootstrapService) SeedAdmin(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.AdminUsername == "" || s.AdminPassword == "" {
		return nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(s.AdminPassword)
	if err != nil {
		return err
	}

	email := s.AdminEmail
	if email == "" {
		email = s.AdminUsername + "@localhost"
	}

	adminID := idx.New().String()
	err = s.Store.Users().CreateUser(ctx, domain.User{
		ID:           adminID,
		Username:     s.AdminUsername,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		IsActive:     true,
	})
	if err != nil {
		// Another replica may have won the race; an existing row is fine.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		l.Error("failed to seed admin user", slog.Any("error", err))
		return err
	}

	l.Info("seeded initial admin user",
		slog.String("user_id", adminID),
		slog.String("username", s.AdminUsername),
	)
	return nil
}
