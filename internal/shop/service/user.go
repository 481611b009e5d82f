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

var (
	ErrUserNotFound = errors.New("user_not_found")
	ErrUserExists   = errors.New("user_already_exists")

	// ErrHasPendingOrders blocks account deletion while pending orders still
	// hold reserved stock.
	ErrHasPendingOrders = errors.New("user_has_pending_orders")
)

// DefaultListLimit applies when a list request does not specify one.
const DefaultListLimit = 10

type UserService struct {
	Store store.Store
}

// Register creates a regular active account. Admin rights are only granted
// through SetAdmin or first-run bootstrap, never at signup.
func (s *UserService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
		IsActive:     true,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	created, err := s.Store.Users().GetUserByID(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return created, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// ListUsers returns a page of users ordered by id. limit <= 0 falls back to
// DefaultListLimit; offset < 0 reads from the start.
func (s *UserService) ListUsers(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Store.Users().ListUsers(ctx, offset, limit)
}

// UpdateUserParams carries a partial update; nil fields keep their value.
type UpdateUserParams struct {
	Username *string
	Email    *string
	Password *string
}

// UpdateUser applies a partial update to an account. A changed password is
// re-hashed; a duplicate username or email surfaces as ErrUserExists.
func (s *UserService) UpdateUser(ctx context.Context, userID string, params UpdateUserParams) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if params.Username != nil {
		u.Username = *params.Username
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Password != nil {
		hash, err := cryptox.HashPassword(*params.Password)
		if err != nil {
			return domain.User{}, err
		}
		u.PasswordHash = hash
	}

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}

// DeleteUser removes an account. Refused while the user still has pending
// orders; cancelled and completed orders keep their rows for audit.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	l := slogx.FromContext(ctx)

	pending, err := s.Store.OrderStatuses().GetStatusByName(ctx, domain.StatusPending)
	if err != nil {
		return err
	}

	n, err := s.Store.Orders().CountUserOrdersInStatus(ctx, userID, pending.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasPendingOrders
	}

	if err := s.Store.Users().DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	l.Info("user deleted", slog.String("user_id", userID))
	return nil
}

// SetAdmin flips the role flag. The change is visible on the target's very
// next request because the guard re-reads the account each time.
func (s *UserService) SetAdmin(ctx context.Context, userID string, isAdmin bool) (domain.User, error) {
	if err := s.Store.Users().SetAdmin(ctx, userID, isAdmin); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}
