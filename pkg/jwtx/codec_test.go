package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewHS256CodecRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256Codec(nil, "shopd")
	require.Error(t, err)

	c, err := NewHS256Codec([]byte("test-secret"), "shopd")
	require.NoError(t, err)
	require.True(t, c.Ready())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := NewHS256Codec([]byte("test-secret"), "shopd")
	require.NoError(t, err)

	before := time.Now().UTC()
	token, err := c.Encode("01JDZX5M9QW3R8T2V4Y6B7N0KA", 30*time.Minute)
	require.NoError(t, err)

	claims, err := c.Decode(token)
	require.NoError(t, err)
	require.Equal(t, "01JDZX5M9QW3R8T2V4Y6B7N0KA", claims.Subject)
	require.Equal(t, "shopd", claims.Issuer)

	// Expiry lands at roughly now+30m.
	require.WithinDuration(t, before.Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
	require.NoError(t, claims.ValidateExpiry())
}

func TestEncodeDefaultsTTL(t *testing.T) {
	t.Parallel()

	c, err := NewHS256Codec([]byte("test-secret"), "shopd")
	require.NoError(t, err)

	token, err := c.Encode("subject", 0)
	require.NoError(t, err)

	claims, err := c.Decode(token)
	require.NoError(t, err)
	require.WithinDuration(t,
		time.Now().UTC().Add(DefaultAccessTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDecodeWrongKeyRejected(t *testing.T) {
	t.Parallel()

	minter, err := NewHS256Codec([]byte("key-one"), "shopd")
	require.NoError(t, err)
	verifier, err := NewHS256Codec([]byte("key-two"), "shopd")
	require.NoError(t, err)

	token, err := minter.Encode("subject", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestDecodeGarbageRejected(t *testing.T) {
	t.Parallel()

	c, err := NewHS256Codec([]byte("test-secret"), "shopd")
	require.NoError(t, err)

	_, err = c.Decode("definitely.not.a-jwt")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = c.Decode("")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeDoesNotRejectExpired(t *testing.T) {
	t.Parallel()

	c, err := NewHS256Codec([]byte("test-secret"), "shopd")
	require.NoError(t, err)

	// Mint a token that expired an hour ago.
	claims := NewAccessClaims("subject", "shopd", time.Minute, time.Now().UTC().Add(-2*time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	decoded, err := c.Decode(token)
	require.NoError(t, err, "decode must succeed structurally")
	require.ErrorIs(t, decoded.ValidateExpiry(), ErrExpired)
}

func TestDecodeRejectsMissingSubject(t *testing.T) {
	t.Parallel()

	c, err := NewHS256Codec([]byte("test-secret"), "shopd")
	require.NoError(t, err)

	claims := NewAccessClaims("", "shopd", time.Minute, time.Now().UTC())
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = c.Decode(token)
	require.ErrorIs(t, err, ErrInvalidClaim)
}

func TestDecodeRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	other, err := NewHS256Codec([]byte("test-secret"), "someone-else")
	require.NoError(t, err)
	c, err := NewHS256Codec([]byte("test-secret"), "shopd")
	require.NoError(t, err)

	token, err := other.Encode("subject", time.Minute)
	require.NoError(t, err)

	_, err = c.Decode(token)
	require.ErrorIs(t, err, ErrIssuer)
}
