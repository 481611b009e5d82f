package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/merchware/shopd/internal/shop/domain"
	"github.com/merchware/shopd/internal/shop/store"
	"github.com/merchware/shopd/pkg/idx"
	"github.com/merchware/shopd/pkg/slogx"
)

var (
	ErrOrderNotFound = errors.New("order_not_found")
	ErrEmptyOrder    = errors.New("order_has_no_items")
	ErrBadQuantity   = errors.New("order_item_bad_quantity")

	// ErrProductUnavailable covers both a missing product and one flagged
	// unavailable; callers treat them identically.
	ErrProductUnavailable = errors.New("product_unavailable")

	ErrInsufficientStock = errors.New("insufficient_stock")

	// ErrNotCancellable means the order has moved past "pending".
	ErrNotCancellable = errors.New("order_not_cancellable")

	ErrUnknownStatus = errors.New("unknown_order_status")
)

type OrderService struct {
	Store store.Store
}

// OrderItemParams is one line of an order request.
type OrderItemParams struct {
	ProductID string
	Quantity  int64
}

// PlaceOrder creates an order in the "pending" status. Everything runs in
// one transaction: stock is re-checked and decremented per item, and the
// total is computed from the prices current at placement time, so a
// concurrent price change cannot split an order across two price points.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, items []OrderItemParams) (domain.Order, error) {
	l := slogx.FromContext(ctx)

	if len(items) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return domain.Order{}, ErrBadQuantity
		}
	}

	orderID := idx.New().String()

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		pending, err := tx.OrderStatuses().GetStatusByName(ctx, domain.StatusPending)
		if err != nil {
			return err
		}

		var total int64
		orderItems := make([]domain.OrderItem, 0, len(items))

		for _, it := range items {
			p, err := tx.Products().GetProductByID(ctx, it.ProductID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrProductUnavailable
				}
				return err
			}
			if !p.IsAvailable {
				return ErrProductUnavailable
			}
			if p.Stock < it.Quantity {
				return ErrInsufficientStock
			}

			if err := tx.Products().AdjustStock(ctx, p.ID, -it.Quantity); err != nil {
				return err
			}

			total += p.PriceCents * it.Quantity
			orderItems = append(orderItems, domain.OrderItem{
				ProductID:      p.ID,
				Quantity:       it.Quantity,
				UnitPriceCents: p.PriceCents,
			})
		}

		return tx.Orders().CreateOrder(ctx, domain.Order{
			ID:         orderID,
			UserID:     userID,
			StatusID:   pending.ID,
			TotalCents: total,
			Items:      orderItems,
		})
	})
	if err != nil {
		return domain.Order{}, err
	}

	o, err := s.Store.Orders().GetOrderByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	l.Info("order placed",
		slog.String("order_id", orderID),
		slog.String("user_id", userID),
		slog.Int64("total_cents", o.TotalCents),
	)
	return o, nil
}

// GetOrderForUser returns an order only if it belongs to userID, or if the
// caller is an admin. Someone else's order reads as not-found rather than
// forbidden, so order ids cannot be probed.
func (s *OrderService) GetOrderForUser(ctx context.Context, orderID, userID string, isAdmin bool) (domain.Order, error) {
	o, err := s.Store.Orders().GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, ErrOrderNotFound
		}
		return domain.Order{}, err
	}
	if !isAdmin && o.UserID != userID {
		return domain.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// ListOrdersForUser returns the caller's own orders, newest first.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.Store.Orders().ListOrdersByUser(ctx, userID)
}

// SetOrderStatus moves an order to the named status (admin operation).
func (s *OrderService) SetOrderStatus(ctx context.Context, orderID, statusName string) (domain.Order, error) {
	status, err := s.Store.OrderStatuses().GetStatusByName(ctx, statusName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, ErrUnknownStatus
		}
		return domain.Order{}, err
	}

	if err := s.Store.Orders().UpdateOrderStatus(ctx, orderID, status.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, ErrOrderNotFound
		}
		return domain.Order{}, err
	}

	return s.Store.Orders().GetOrderByID(ctx, orderID)
}

// CancelOrder deletes a pending order and returns its reserved stock in the
// same transaction. Orders that have progressed past "pending" cannot be
// cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID string, isAdmin bool) error {
	l := slogx.FromContext(ctx)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		o, err := tx.Orders().GetOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !isAdmin && o.UserID != userID {
			return ErrOrderNotFound
		}

		pending, err := tx.OrderStatuses().GetStatusByName(ctx, domain.StatusPending)
		if err != nil {
			return err
		}
		if o.StatusID != pending.ID {
			return ErrNotCancellable
		}

		for _, it := range o.Items {
			// A product may have been deleted since placement; its stock is
			// simply gone, the cancellation still succeeds.
			if err := tx.Products().AdjustStock(ctx, it.ProductID, it.Quantity); err != nil &&
				!errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		if err := tx.Orders().DeleteOrder(ctx, orderID); err != nil {
			return err
		}

		l.Info("order cancelled", slog.String("order_id", orderID), slog.String("user_id", o.UserID))
		return nil
	})
}
