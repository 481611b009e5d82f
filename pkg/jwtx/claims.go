package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the token lifetime used when the deployment does
// not configure one. Tokens are stateless bearers with no revocation list,
// so the TTL is the only thing bounding a leaked token.
const DefaultAccessTokenTTL = 30 * time.Minute

// Claims are the access-token claims: subject (user id), issuer, issued-at
// and expiry. Nothing role- or permission-shaped goes in here; roles are
// re-read from the store on every request so they take effect immediately.
type Claims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds minimally-correct claims for a subject.
func NewAccessClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateStructure checks the pieces Decode leaves to the caller: a
// non-empty subject and a present expiry. A token without either is
// malformed, whatever its signature says.
func (c *Claims) ValidateStructure() error {
	if c.Subject == "" {
		return ErrInvalidClaim
	}
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiry ensures the expiry is strictly in the future. Kept separate
// from Decode so callers can tell an expired token from a forged one.
func (c *Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !time.Now().UTC().Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// ValidateIssuer checks the issuer when one is configured.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
