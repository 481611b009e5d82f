package service

import (
	"context"
	"errors"
	"time"

	"github.com/merchware/shopd/internal/shop/domain"
	"github.com/merchware/shopd/internal/shop/store"
	"github.com/merchware/shopd/pkg/cryptox"
	"github.com/merchware/shopd/pkg/jwtx"
	"github.com/merchware/shopd/pkg/slogx"
)

// ErrInvalidCredentials covers every login failure: unknown username, wrong
// password, whatever. One error, one message, no account enumeration.
var ErrInvalidCredentials = errors.New("invalid_credentials")

// AuthService verifies username/password credentials and mints access tokens.
type AuthService struct {
	Store     store.Store
	Codec     *jwtx.HS256Codec
	AccessTTL time.Duration
}

// Authenticate checks the supplied credentials against the store. It fails
// uniformly: when the username does not exist it still burns one bcrypt
// comparison so the two failure paths cost the same.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.DummyVerify(password)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("password verification failed", "username", username)
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// IssueToken mints a bearer token for the user. Account activity is not
// checked here; the access guard re-reads it on every request anyway.
func (s *AuthService) IssueToken(u domain.User) (domain.AccessToken, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	tok, err := s.Codec.Encode(u.ID, ttl)
	if err != nil {
		return domain.AccessToken{}, err
	}

	return domain.AccessToken{
		Token:     tok,
		TokenType: "bearer",
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}

// Login is Authenticate followed by IssueToken.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.AccessToken, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return domain.AccessToken{}, err
	}
	return s.IssueToken(u)
}
