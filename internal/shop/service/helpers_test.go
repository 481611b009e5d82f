package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/merchware/shopd/internal/shop/domain"
	"github.com/merchware/shopd/internal/shop/store"
	"github.com/merchware/shopd/internal/shop/store/drivers/sqlite"
	"github.com/merchware/shopd/pkg/cryptox"
	"github.com/merchware/shopd/pkg/idx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, username, password string, admin, active bool) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsAdmin:      admin,
		IsActive:     active,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedProduct(t *testing.T, st store.Store, name string, priceCents, stock int64, available bool) domain.Product {
	t.Helper()

	p := domain.Product{
		ID:          idx.New().String(),
		Name:        name,
		Description: name + " description",
		PriceCents:  priceCents,
		Stock:       stock,
		IsAvailable: available,
	}
	require.NoError(t, st.Products().CreateProduct(context.Background(), p))
	return p
}
