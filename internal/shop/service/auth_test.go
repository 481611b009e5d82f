package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/merchware/shopd/pkg/jwtx"
)

func newTestCodec(t *testing.T) *jwtx.HS256Codec {
	t.Helper()

	codec, err := jwtx.NewHS256Codec([]byte("test-secret-key"), "shopd-test")
	require.NoError(t, err)
	return codec
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := seedUser(t, st, "alice", "S3cret!pass", false, true)

	svc := &AuthService{
		Store:     st,
		Codec:     newTestCodec(t),
		AccessTTL: 15 * time.Minute,
	}

	t.Run("valid credentials issue a bearer token", func(t *testing.T) {
		tok, err := svc.Login(ctx, "alice", "S3cret!pass")
		require.NoError(t, err)
		require.NotEmpty(t, tok.Token)
		require.Equal(t, "bearer", tok.TokenType)
		require.Equal(t, int64((15 * time.Minute).Seconds()), tok.ExpiresIn)

		claims, err := svc.Codec.Decode(tok.Token)
		require.NoError(t, err)
		require.Equal(t, alice.ID, claims.Subject)
	})

	t.Run("wrong password fails uniformly", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username fails with the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "S3cret!pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive accounts can still log in", func(t *testing.T) {
		// Activity is the guard's gate, not the authenticator's; the token
		// is issued but every guarded request will fail until reactivation.
		seedUser(t, st, "mallory", "S3cret!pass", false, false)

		tok, err := svc.Login(ctx, "mallory", "S3cret!pass")
		require.NoError(t, err)
		require.NotEmpty(t, tok.Token)
	})
}

func TestAuthServiceIssueTokenDefaultTTL(t *testing.T) {
	st := newTestStore(t)
	alice := seedUser(t, st, "alice", "S3cret!pass", false, true)

	svc := &AuthService{Store: st, Codec: newTestCodec(t)} // no TTL configured

	tok, err := svc.IssueToken(alice)
	require.NoError(t, err)
	require.Equal(t, int64(jwtx.DefaultAccessTokenTTL.Seconds()), tok.ExpiresIn)
}
