package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/merchware/shopd/internal/shop/domain"
)

const guardTestSecret = "test-secret-key"

// signRaw builds a token outside the codec so tests can produce shapes the
// codec itself refuses to mint (expired, junk subject, wrong key).
func signRaw(t *testing.T, secret, issuer, subject string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC().Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestGuardAuthorize(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)

	alice := seedUser(t, st, "alice", "S3cret!pass", false, true)
	bob := seedUser(t, st, "bob", "S3cret!pass", false, false)

	guard := &Guard{Codec: codec, Store: st}

	validToken := func(u domain.User) string {
		tok, err := codec.Encode(u.ID, time.Minute)
		require.NoError(t, err)
		return tok
	}

	t.Run("valid token returns the fresh principal", func(t *testing.T) {
		u, err := guard.Authorize(ctx, validToken(alice))
		require.NoError(t, err)
		require.Equal(t, alice.ID, u.ID)
		require.Equal(t, "alice", u.Username)
	})

	t.Run("garbage is malformed", func(t *testing.T) {
		_, err := guard.Authorize(ctx, "not.a.token")
		require.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("wrong signing key is malformed, not expired", func(t *testing.T) {
		tok := signRaw(t, "some-other-key", "shopd-test", alice.ID, time.Now().Add(time.Hour))
		_, err := guard.Authorize(ctx, tok)
		require.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("issuer mismatch is malformed", func(t *testing.T) {
		tok := signRaw(t, guardTestSecret, "someone-else", alice.ID, time.Now().Add(time.Hour))
		_, err := guard.Authorize(ctx, tok)
		require.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("non-ulid subject is malformed", func(t *testing.T) {
		tok := signRaw(t, guardTestSecret, "shopd-test", "alice", time.Now().Add(time.Hour))
		_, err := guard.Authorize(ctx, tok)
		require.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("expired token is expired, even with a valid signature", func(t *testing.T) {
		tok := signRaw(t, guardTestSecret, "shopd-test", alice.ID, time.Now().Add(-time.Minute))
		_, err := guard.Authorize(ctx, tok)
		require.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("deleted subject is unknown", func(t *testing.T) {
		ghost := seedUser(t, st, "ghost", "S3cret!pass", false, true)
		tok := validToken(ghost)
		require.NoError(t, st.Users().DeleteUser(ctx, ghost.ID))

		_, err := guard.Authorize(ctx, tok)
		require.ErrorIs(t, err, ErrUnknownSubject)
	})

	t.Run("inactive account is rejected after all token gates pass", func(t *testing.T) {
		_, err := guard.Authorize(ctx, validToken(bob))
		require.ErrorIs(t, err, ErrInactiveAccount)
	})

	t.Run("cancelled context maps to upstream unavailable", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := guard.Authorize(cancelled, validToken(alice))
		require.ErrorIs(t, err, ErrUpstreamUnavailable)
	})
}

func TestGuardRequireAdmin(t *testing.T) {
	guard := &Guard{}

	require.NoError(t, guard.RequireAdmin(domain.User{IsAdmin: true}))
	require.ErrorIs(t, guard.RequireAdmin(domain.User{IsAdmin: false}), ErrInsufficientRole)
}
