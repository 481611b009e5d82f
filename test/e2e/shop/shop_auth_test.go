package shop_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAdminLogin verifies the seeded admin account can log in and receives a
// usable bearer token.
func TestAdminLogin(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	resp := doLogin(t, baseURL, adminUsername, adminPassword)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tok := decodeBody[tokenResponse](t, resp)
	require.NotEmpty(t, tok.AccessToken)
	require.Equal(t, "bearer", tok.TokenType)
	require.Greater(t, tok.ExpiresIn, int64(0))

	// The token should open a guarded endpoint.
	listResp := doJSON(t, http.MethodGet, baseURL+"/api/v1/users", tok.AccessToken, nil)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)
}

// TestLoginRejectsBadCredentials verifies both a wrong password and an unknown
// username produce the same 401 response.
func TestLoginRejectsBadCredentials(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	resp := doLogin(t, baseURL, adminUsername, "WrongPass1!")
	assertErrorDetail(t, resp, http.StatusUnauthorized, "incorrect username or password")

	resp = doLogin(t, baseURL, "nobody-here", "WrongPass1!")
	assertErrorDetail(t, resp, http.StatusUnauthorized, "incorrect username or password")
}

// TestGuardedEndpointRejectsBadTokens verifies the token gate on protected
// endpoints.
func TestGuardedEndpointRejectsBadTokens(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	t.Run("missing token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, baseURL+"/api/v1/orders", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, baseURL+"/api/v1/orders", "not-a-jwt", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

// TestAdminGate verifies regular accounts cannot reach admin endpoints.
func TestAdminGate(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	registerUser(t, baseURL, "casual", "casual@example.com", "Password1!")
	token := login(t, baseURL, "casual", "Password1!")

	resp := doJSON(t, http.MethodGet, baseURL+"/api/v1/users", token, nil)
	assertErrorDetail(t, resp, http.StatusForbidden, "the user does not have enough privileges")
}
