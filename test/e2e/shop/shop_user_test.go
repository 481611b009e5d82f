package shop_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestUserRegistration exercises the public signup endpoint.
func TestUserRegistration(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	u := registerUser(t, baseURL, "alice", "alice@example.com", "Password1!")
	require.NotEmpty(t, u.ID)
	require.Equal(t, "alice", u.Username)
	require.False(t, u.IsAdmin)
	require.True(t, u.IsActive)

	t.Run("duplicate username", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, baseURL+"/api/v1/users", "", map[string]string{
			"username": "alice",
			"email":    "alice2@example.com",
			"password": "Password1!",
		})
		assertErrorDetail(t, resp, http.StatusConflict, "username or email already registered")
	})

	t.Run("weak password", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, baseURL+"/api/v1/users", "", map[string]string{
			"username": "bob",
			"email":    "bob@example.com",
			"password": "password",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// TestUserVisibility verifies self-read works and cross-account reads are
// forbidden for non-admins.
func TestUserVisibility(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	alice := registerUser(t, baseURL, "alice", "alice@example.com", "Password1!")
	bob := registerUser(t, baseURL, "bob", "bob@example.com", "Password1!")
	aliceToken := login(t, baseURL, "alice", "Password1!")
	adminToken := login(t, baseURL, adminUsername, adminPassword)

	t.Run("self read", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/users/%s", baseURL, alice.ID), aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeBody[userPayload](t, resp)
		require.Equal(t, alice.ID, got.ID)
	})

	t.Run("cross read forbidden", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/users/%s", baseURL, bob.ID), aliceToken, nil)
		assertErrorDetail(t, resp, http.StatusForbidden, "the user does not have enough privileges")
	})

	t.Run("admin reads anyone", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/v1/users/%s", baseURL, bob.ID), adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeBody[userPayload](t, resp)
		require.Equal(t, "bob", got.Username)
	})
}

// TestRolePromotion verifies change_role takes effect on the promoted user's
// next request without reissuing the token.
func TestRolePromotion(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	alice := registerUser(t, baseURL, "alice", "alice@example.com", "Password1!")
	aliceToken := login(t, baseURL, "alice", "Password1!")
	adminToken := login(t, baseURL, adminUsername, adminPassword)

	// Not yet an admin.
	resp := doJSON(t, http.MethodGet, baseURL+"/api/v1/users", aliceToken, nil)
	assertErrorDetail(t, resp, http.StatusForbidden, "the user does not have enough privileges")

	resp = doJSON(t, http.MethodPut, baseURL+"/api/v1/users/change_role", adminToken, map[string]any{
		"id":       alice.ID,
		"is_admin": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	promoted := decodeBody[userPayload](t, resp)
	require.True(t, promoted.IsAdmin)

	// Same token, new privileges.
	resp = doJSON(t, http.MethodGet, baseURL+"/api/v1/users", aliceToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestAccountDeletion verifies a user can delete their own account and the
// token stops working afterwards.
func TestAccountDeletion(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	alice := registerUser(t, baseURL, "alice", "alice@example.com", "Password1!")
	aliceToken := login(t, baseURL, "alice", "Password1!")

	resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/v1/users/%s", baseURL, alice.ID), aliceToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Token subject no longer exists.
	resp = doJSON(t, http.MethodGet, baseURL+"/api/v1/orders", aliceToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
