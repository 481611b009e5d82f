// Package jwtx is the token codec: it turns a subject into a signed,
// time-bound HS256 JWT and back. Decode verifies the signature and basic
// structure only; expiry is deliberately the caller's check, so "expired"
// and "malformed or forged" stay distinguishable failure kinds.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Codec signs and verifies tokens with a process-wide symmetric secret.
// The secret is loaded once at startup and never rotated at runtime;
// restarting with a new secret invalidates every outstanding token.
type HS256Codec struct {
	secret []byte
	issuer string
}

// NewHS256Codec builds a codec. The secret is required: a service that can
// mint tokens with an empty key is worse than one that refuses to start.
func NewHS256Codec(secret []byte, issuer string) (*HS256Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	return &HS256Codec{secret: secret, issuer: issuer}, nil
}

// Ready reports whether the codec holds a usable key (readiness probe).
func (c *HS256Codec) Ready() bool { return len(c.secret) > 0 }

// Encode mints a signed token for subject, expiring after ttl. A
// non-positive ttl falls back to DefaultAccessTokenTTL.
func (c *HS256Codec) Encode(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	claims := NewAccessClaims(subject, c.issuer, ttl, time.Now().UTC())
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature and structural validity of a token and
// returns its claims. It does NOT reject expired tokens; call
// Claims.ValidateExpiry for that.
func (c *HS256Codec) Decode(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Expiry is checked by the caller, see package comment.
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, fmt.Errorf("%w: %w", ErrInvalidSig, err)
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateStructure(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
