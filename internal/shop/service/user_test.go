package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/merchware/shopd/pkg/cryptox"
)

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	t.Run("creates a regular active account", func(t *testing.T) {
		u, err := svc.Register(ctx, "alice", "alice@example.com", "S3cret!pass")
		require.NoError(t, err)
		require.NotEmpty(t, u.ID)
		require.Equal(t, "alice", u.Username)
		require.False(t, u.IsAdmin)
		require.True(t, u.IsActive)
		require.Nil(t, u.UpdatedAt)

		// Stored hash verifies, plaintext is gone.
		require.NoError(t, cryptox.VerifyPassword("S3cret!pass", u.PasswordHash))
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "alice2@example.com", "S3cret!pass")
		require.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice2", "alice@example.com", "S3cret!pass")
		require.ErrorIs(t, err, ErrUserExists)
	})
}

func TestUserServiceUpdateUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	alice, err := svc.Register(ctx, "alice", "alice@example.com", "S3cret!pass")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob", "bob@example.com", "S3cret!pass")
	require.NoError(t, err)

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		email := "new@example.com"
		u, err := svc.UpdateUser(ctx, alice.ID, UpdateUserParams{Email: &email})
		require.NoError(t, err)
		require.Equal(t, "alice", u.Username)
		require.Equal(t, "new@example.com", u.Email)
		require.NotNil(t, u.UpdatedAt)
	})

	t.Run("changed password is re-hashed", func(t *testing.T) {
		pass := "An0ther!pass"
		u, err := svc.UpdateUser(ctx, alice.ID, UpdateUserParams{Password: &pass})
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword(pass, u.PasswordHash))
		require.ErrorIs(t, cryptox.VerifyPassword("S3cret!pass", u.PasswordHash), cryptox.ErrMismatch)
	})

	t.Run("taking another user's email is rejected", func(t *testing.T) {
		email := "bob@example.com"
		_, err := svc.UpdateUser(ctx, alice.ID, UpdateUserParams{Email: &email})
		require.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		name := "whoever"
		_, err := svc.UpdateUser(ctx, "01XXXXXXXXXXXXXXXXXXXXXXXX", UpdateUserParams{Username: &name})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserServiceDeleteUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	users := &UserService{Store: st}
	orders := &OrderService{Store: st}

	alice, err := users.Register(ctx, "alice", "alice@example.com", "S3cret!pass")
	require.NoError(t, err)
	widget := seedProduct(t, st, "widget", 250, 10, true)

	t.Run("refused while pending orders exist", func(t *testing.T) {
		o, err := orders.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 1},
		})
		require.NoError(t, err)

		require.ErrorIs(t, users.DeleteUser(ctx, alice.ID), ErrHasPendingOrders)

		require.NoError(t, orders.CancelOrder(ctx, o.ID, alice.ID, false))
	})

	t.Run("succeeds once no orders are pending", func(t *testing.T) {
		require.NoError(t, users.DeleteUser(ctx, alice.ID))

		_, err := users.GetUserByID(ctx, alice.ID)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		require.ErrorIs(t, users.DeleteUser(ctx, alice.ID), ErrUserNotFound)
	})
}

func TestUserServiceSetAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	alice, err := svc.Register(ctx, "alice", "alice@example.com", "S3cret!pass")
	require.NoError(t, err)

	u, err := svc.SetAdmin(ctx, alice.ID, true)
	require.NoError(t, err)
	require.True(t, u.IsAdmin)

	u, err = svc.SetAdmin(ctx, alice.ID, false)
	require.NoError(t, err)
	require.False(t, u.IsAdmin)

	_, err = svc.SetAdmin(ctx, "01XXXXXXXXXXXXXXXXXXXXXXXX", true)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceListUsers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.Register(ctx, name, name+"@example.com", "S3cret!pass")
		require.NoError(t, err)
	}

	t.Run("defaults apply for non-positive limit", func(t *testing.T) {
		users, err := svc.ListUsers(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, users, 3)
	})

	t.Run("offset and limit page through", func(t *testing.T) {
		page, err := svc.ListUsers(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
	})
}
