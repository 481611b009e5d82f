package service

import (
	"context"
	"errors"

	"github.com/merchware/shopd/internal/shop/domain"
	"github.com/merchware/shopd/internal/shop/store"
	"github.com/merchware/shopd/pkg/idx"
)

var (
	ErrStatusNotFound = errors.New("status_not_found")
	ErrStatusExists   = errors.New("status_already_exists")

	// ErrStatusInUse blocks deletion of a status that orders still reference.
	ErrStatusInUse = errors.New("status_in_use")
)

// StatusService manages the order status vocabulary. "pending" is seeded by
// the initial migration and is where every new order starts.
type StatusService struct {
	Store store.Store
}

func (s *StatusService) CreateStatus(ctx context.Context, name string) (domain.OrderStatus, error) {
	st := domain.OrderStatus{
		ID:   idx.New().String(),
		Name: name,
	}

	if err := s.Store.OrderStatuses().CreateStatus(ctx, st); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.OrderStatus{}, ErrStatusExists
		}
		return domain.OrderStatus{}, err
	}

	return s.Store.OrderStatuses().GetStatusByID(ctx, st.ID)
}

func (s *StatusService) GetStatusByID(ctx context.Context, statusID string) (domain.OrderStatus, error) {
	st, err := s.Store.OrderStatuses().GetStatusByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OrderStatus{}, ErrStatusNotFound
		}
		return domain.OrderStatus{}, err
	}
	return st, nil
}

func (s *StatusService) ListStatuses(ctx context.Context) ([]domain.OrderStatus, error) {
	return s.Store.OrderStatuses().ListStatuses(ctx)
}

func (s *StatusService) UpdateStatus(ctx context.Context, statusID, name string) (domain.OrderStatus, error) {
	st, err := s.Store.OrderStatuses().GetStatusByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OrderStatus{}, ErrStatusNotFound
		}
		return domain.OrderStatus{}, err
	}

	st.Name = name
	if err := s.Store.OrderStatuses().UpdateStatus(ctx, st); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.OrderStatus{}, ErrStatusExists
		}
		if errors.Is(err, store.ErrNotFound) {
			return domain.OrderStatus{}, ErrStatusNotFound
		}
		return domain.OrderStatus{}, err
	}

	return s.Store.OrderStatuses().GetStatusByID(ctx, statusID)
}

func (s *StatusService) DeleteStatus(ctx context.Context, statusID string) error {
	n, err := s.Store.Orders().CountOrdersByStatus(ctx, statusID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrStatusInUse
	}

	if err := s.Store.OrderStatuses().DeleteStatus(ctx, statusID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrStatusNotFound
		}
		return err
	}
	return nil
}
