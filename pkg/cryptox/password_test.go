package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2"), "expected bcrypt encoding")
	require.NotContains(t, hash, "Sup3rSecret!")

	require.NoError(t, VerifyPassword("Sup3rSecret!", hash))
	require.ErrorIs(t, VerifyPassword("wrong-password", hash), ErrMismatch)
}

func TestHashPasswordSaltsIndependently(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)

	require.NotEqual(t, first, second, "each hash must carry its own salt")
	require.NoError(t, VerifyPassword("same-input", first))
	require.NoError(t, VerifyPassword("same-input", second))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, VerifyPassword("anything", "not-a-bcrypt-hash"), ErrMismatch)
	require.ErrorIs(t, VerifyPassword("anything", ""), ErrMismatch)
}
