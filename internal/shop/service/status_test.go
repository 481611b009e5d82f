package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/merchware/shopd/internal/shop/domain"
)

func TestStatusServiceCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &StatusService{Store: st}

	t.Run("pending is seeded by the migration", func(t *testing.T) {
		statuses, err := svc.ListStatuses(ctx)
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		require.Equal(t, domain.StatusPending, statuses[0].Name)
	})

	t.Run("create and fetch", func(t *testing.T) {
		shipped, err := svc.CreateStatus(ctx, "shipped")
		require.NoError(t, err)

		got, err := svc.GetStatusByID(ctx, shipped.ID)
		require.NoError(t, err)
		require.Equal(t, "shipped", got.Name)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		_, err := svc.CreateStatus(ctx, "shipped")
		require.ErrorIs(t, err, ErrStatusExists)
	})

	t.Run("rename collides with existing names", func(t *testing.T) {
		delivered, err := svc.CreateStatus(ctx, "delivered")
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, delivered.ID, "shipped")
		require.ErrorIs(t, err, ErrStatusExists)

		got, err := svc.UpdateStatus(ctx, delivered.ID, "completed")
		require.NoError(t, err)
		require.Equal(t, "completed", got.Name)
		require.NotNil(t, got.UpdatedAt)
	})

	t.Run("unknown status is not found", func(t *testing.T) {
		_, err := svc.GetStatusByID(ctx, "01XXXXXXXXXXXXXXXXXXXXXXXX")
		require.ErrorIs(t, err, ErrStatusNotFound)
	})
}

func TestStatusServiceDeleteStatus(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	statuses := &StatusService{Store: st}
	orders := &OrderService{Store: st}

	alice := seedUser(t, st, "alice", "S3cret!pass", false, true)
	widget := seedProduct(t, st, "widget", 250, 10, true)

	t.Run("unreferenced statuses can be deleted", func(t *testing.T) {
		s, err := statuses.CreateStatus(ctx, "archived")
		require.NoError(t, err)

		require.NoError(t, statuses.DeleteStatus(ctx, s.ID))
		require.ErrorIs(t, statuses.DeleteStatus(ctx, s.ID), ErrStatusNotFound)
	})

	t.Run("statuses referenced by orders are protected", func(t *testing.T) {
		_, err := orders.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 1},
		})
		require.NoError(t, err)

		pending, err := st.OrderStatuses().GetStatusByName(ctx, domain.StatusPending)
		require.NoError(t, err)

		require.ErrorIs(t, statuses.DeleteStatus(ctx, pending.ID), ErrStatusInUse)
	})
}

func TestBootstrapServiceSeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds an admin on an empty database", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{
			Store:         st,
			AdminUsername: "root",
			AdminPassword: "S3cret!pass",
		}

		require.NoError(t, svc.SeedAdmin(ctx))

		u, err := st.Users().GetUserByUsername(ctx, "root")
		require.NoError(t, err)
		require.True(t, u.IsAdmin)
		require.True(t, u.IsActive)
	})

	t.Run("does nothing when users already exist", func(t *testing.T) {
		st := newTestStore(t)
		seedUser(t, st, "alice", "S3cret!pass", false, true)

		svc := &BootstrapService{
			Store:         st,
			AdminUsername: "root",
			AdminPassword: "S3cret!pass",
		}
		require.NoError(t, svc.SeedAdmin(ctx))

		_, err := st.Users().GetUserByUsername(ctx, "root")
		require.Error(t, err)
	})

	t.Run("does nothing without configuration", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st}
		require.NoError(t, svc.SeedAdmin(ctx))

		empty, err := st.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)
	})
}
