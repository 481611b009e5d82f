package shop_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies the login endpoint is rate limited with
// the production tiers. The strict tier allows 5 requests per minute per
// IP and username pair, so the 6th rapid attempt must be rejected.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupShopContainerWithDefaultRateLimits(t)
	defer cleanup()

	var last *http.Response
	for i := range 6 {
		resp := doLogin(t, baseURL, "wronguser", "WrongPass1!")
		if i < 5 {
			// Credential failures, not rate limits.
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode,
				"request %d should fail auth, not rate limiting", i+1)
			resp.Body.Close()
		} else {
			last = resp
		}
	}

	require.Equal(t, http.StatusTooManyRequests, last.StatusCode)
	require.NotEmpty(t, last.Header.Get("Retry-After"))
	last.Body.Close()

	t.Logf("Login endpoint rate limited after 5 attempts")
}

// TestRateLimitKeyedByUsername verifies attempts against one username don't
// consume another username's budget.
func TestRateLimitKeyedByUsername(t *testing.T) {
	baseURL, cleanup := setupShopContainerWithDefaultRateLimits(t)
	defer cleanup()

	for range 5 {
		resp := doLogin(t, baseURL, "victim", "WrongPass1!")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}

	// The admin still gets through under its own key.
	token := login(t, baseURL, adminUsername, adminPassword)
	require.NotEmpty(t, token)
}
