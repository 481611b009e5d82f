package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/merchware/shopd/internal/shop/domain"
	"github.com/merchware/shopd/internal/shop/store"
	"github.com/merchware/shopd/pkg/idx"
	"github.com/merchware/shopd/pkg/jwtx"
)

var (
	ErrMalformedToken      = errors.New("malformed_token")
	ErrExpiredToken        = errors.New("expired_token")
	ErrUnknownSubject      = errors.New("unknown_subject")
	ErrInactiveAccount     = errors.New("inactive_account")
	ErrInsufficientRole    = errors.New("insufficient_role")
	ErrUpstreamUnavailable = errors.New("upstream_unavailable")
)

// Guard turns a raw bearer token into a fresh principal, or one of the
// errors above. The gates run in a fixed order so a given token always
// fails the same way: signature and structure first, then expiry, then the
// store lookup, then account activity.
type Guard struct {
	Codec *jwtx.HS256Codec
	Store store.Store
}

// Authorize validates rawToken and returns the user it belongs to. The user
// is re-read from the store on every call; a deactivation or deletion takes
// effect on the very next request, token or no token.
func (g *Guard) Authorize(ctx context.Context, rawToken string) (domain.User, error) {
	claims, err := g.Codec.Decode(rawToken)
	if err != nil {
		// Signature, structure and issuer failures are all just "not a
		// token we minted". Only expiry gets its own error, below.
		return domain.User{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	if _, err := idx.Parse(claims.Subject); err != nil {
		return domain.User{}, fmt.Errorf("%w: bad subject", ErrMalformedToken)
	}

	if err := claims.ValidateExpiry(); err != nil {
		return domain.User{}, ErrExpiredToken
	}

	u, err := g.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnknownSubject
		}
		// Cancelled context or a store fault; either way we could not
		// consult the source of truth, so we refuse rather than guess.
		return domain.User{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	if !u.IsActive {
		return domain.User{}, ErrInactiveAccount
	}

	return u, nil
}

// RequireAdmin checks the role flag on an already-authorized principal.
func (g *Guard) RequireAdmin(u domain.User) error {
	if !u.IsAdmin {
		return ErrInsufficientRole
	}
	return nil
}
