package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by VerifyPassword whenever the password does not
// match, including when the stored hash is malformed. A corrupt hash must
// read as "wrong password", not as a crash.
var ErrMismatch = errors.New("cryptox: password does not match")

// dummyHash is a bcrypt hash of an unguessable throwaway value. DummyVerify
// compares against it so that a login attempt for a nonexistent username
// costs the same as a wrong password for a real one.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password with bcrypt at the default cost.
// Each call salts independently, so equal plaintexts produce different hash
// strings; compare with VerifyPassword, never with ==.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// Returns nil on match and ErrMismatch otherwise.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

// DummyVerify burns one bcrypt comparison and discards the result.
func DummyVerify(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
