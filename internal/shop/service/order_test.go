package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/merchware/shopd/internal/shop/domain"
)

func TestOrderServicePlaceOrder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := seedUser(t, st, "alice", "S3cret!pass", false, true)
	widget := seedProduct(t, st, "widget", 250, 10, true)
	gadget := seedProduct(t, st, "gadget", 1000, 3, true)
	hidden := seedProduct(t, st, "hidden", 100, 5, false)

	svc := &OrderService{Store: st}

	t.Run("computes total and decrements stock atomically", func(t *testing.T) {
		o, err := svc.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 2},
			{ProductID: gadget.ID, Quantity: 1},
		})
		require.NoError(t, err)
		require.Equal(t, alice.ID, o.UserID)
		require.Equal(t, int64(2*250+1000), o.TotalCents)
		require.Len(t, o.Items, 2)

		pending, err := st.OrderStatuses().GetStatusByName(ctx, domain.StatusPending)
		require.NoError(t, err)
		require.Equal(t, pending.ID, o.StatusID)

		w, err := st.Products().GetProductByID(ctx, widget.ID)
		require.NoError(t, err)
		require.Equal(t, int64(8), w.Stock)

		g, err := st.Products().GetProductByID(ctx, gadget.ID)
		require.NoError(t, err)
		require.Equal(t, int64(2), g.Stock)
	})

	t.Run("records the unit price current at placement", func(t *testing.T) {
		o, err := svc.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 1},
		})
		require.NoError(t, err)
		require.Equal(t, int64(250), o.Items[0].UnitPriceCents)
	})

	t.Run("rejects empty orders", func(t *testing.T) {
		_, err := svc.PlaceOrder(ctx, alice.ID, nil)
		require.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		_, err := svc.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 0},
		})
		require.ErrorIs(t, err, ErrBadQuantity)
	})

	t.Run("unknown product reads as unavailable", func(t *testing.T) {
		_, err := svc.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: "01XXXXXXXXXXXXXXXXXXXXXXXX", Quantity: 1},
		})
		require.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("unavailable product is refused", func(t *testing.T) {
		_, err := svc.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: hidden.ID, Quantity: 1},
		})
		require.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("insufficient stock rolls the whole order back", func(t *testing.T) {
		before, err := st.Products().GetProductByID(ctx, widget.ID)
		require.NoError(t, err)

		_, err = svc.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 1},
			{ProductID: gadget.ID, Quantity: 100},
		})
		require.ErrorIs(t, err, ErrInsufficientStock)

		// The widget decrement from the failed order must not stick.
		after, err := st.Products().GetProductByID(ctx, widget.ID)
		require.NoError(t, err)
		require.Equal(t, before.Stock, after.Stock)
	})
}

func TestOrderServiceOwnership(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := seedUser(t, st, "alice", "S3cret!pass", false, true)
	bob := seedUser(t, st, "bob", "S3cret!pass", false, true)
	widget := seedProduct(t, st, "widget", 250, 10, true)

	svc := &OrderService{Store: st}

	o, err := svc.PlaceOrder(ctx, alice.ID, []OrderItemParams{
		{ProductID: widget.ID, Quantity: 1},
	})
	require.NoError(t, err)

	t.Run("owner can read their order", func(t *testing.T) {
		got, err := svc.GetOrderForUser(ctx, o.ID, alice.ID, false)
		require.NoError(t, err)
		require.Equal(t, o.ID, got.ID)
	})

	t.Run("someone else's order reads as not found", func(t *testing.T) {
		_, err := svc.GetOrderForUser(ctx, o.ID, bob.ID, false)
		require.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("admins can read any order", func(t *testing.T) {
		got, err := svc.GetOrderForUser(ctx, o.ID, bob.ID, true)
		require.NoError(t, err)
		require.Equal(t, o.ID, got.ID)
	})

	t.Run("listing is scoped to the caller", func(t *testing.T) {
		mine, err := svc.ListOrdersForUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)

		theirs, err := svc.ListOrdersForUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Empty(t, theirs)
	})
}

func TestOrderServiceSetOrderStatus(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := seedUser(t, st, "alice", "S3cret!pass", false, true)
	widget := seedProduct(t, st, "widget", 250, 10, true)

	orders := &OrderService{Store: st}
	statuses := &StatusService{Store: st}

	o, err := orders.PlaceOrder(ctx, alice.ID, []OrderItemParams{
		{ProductID: widget.ID, Quantity: 1},
	})
	require.NoError(t, err)

	shipped, err := statuses.CreateStatus(ctx, "shipped")
	require.NoError(t, err)

	t.Run("moves the order to the named status", func(t *testing.T) {
		got, err := orders.SetOrderStatus(ctx, o.ID, "shipped")
		require.NoError(t, err)
		require.Equal(t, shipped.ID, got.StatusID)
		require.NotNil(t, got.UpdatedAt)
	})

	t.Run("unknown status name is refused", func(t *testing.T) {
		_, err := orders.SetOrderStatus(ctx, o.ID, "teleported")
		require.ErrorIs(t, err, ErrUnknownStatus)
	})
}

func TestOrderServiceCancelOrder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := seedUser(t, st, "alice", "S3cret!pass", false, true)
	bob := seedUser(t, st, "bob", "S3cret!pass", false, true)
	widget := seedProduct(t, st, "widget", 250, 10, true)

	orders := &OrderService{Store: st}
	statuses := &StatusService{Store: st}

	t.Run("cancelling a pending order restores stock", func(t *testing.T) {
		o, err := orders.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 3},
		})
		require.NoError(t, err)

		p, err := st.Products().GetProductByID(ctx, widget.ID)
		require.NoError(t, err)
		require.Equal(t, int64(7), p.Stock)

		require.NoError(t, orders.CancelOrder(ctx, o.ID, alice.ID, false))

		p, err = st.Products().GetProductByID(ctx, widget.ID)
		require.NoError(t, err)
		require.Equal(t, int64(10), p.Stock)

		_, err = orders.GetOrderForUser(ctx, o.ID, alice.ID, false)
		require.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("only the owner may cancel", func(t *testing.T) {
		o, err := orders.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 1},
		})
		require.NoError(t, err)

		err = orders.CancelOrder(ctx, o.ID, bob.ID, false)
		require.ErrorIs(t, err, ErrOrderNotFound)

		require.NoError(t, orders.CancelOrder(ctx, o.ID, alice.ID, false))
	})

	t.Run("non-pending orders cannot be cancelled", func(t *testing.T) {
		o, err := orders.PlaceOrder(ctx, alice.ID, []OrderItemParams{
			{ProductID: widget.ID, Quantity: 1},
		})
		require.NoError(t, err)

		_, err = statuses.CreateStatus(ctx, "processing")
		require.NoError(t, err)
		_, err = orders.SetOrderStatus(ctx, o.ID, "processing")
		require.NoError(t, err)

		err = orders.CancelOrder(ctx, o.ID, alice.ID, false)
		require.ErrorIs(t, err, ErrNotCancellable)
	})
}
