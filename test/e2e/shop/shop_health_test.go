package shop_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type healthPayload struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// TestLivezEndpoint verifies the liveness check endpoint responds immediately
// after startup.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	resp := doJSON(t, http.MethodGet, baseURL+"/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decodeBody[healthPayload](t, resp)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)

	t.Logf("Livez endpoint is healthy")
}

// TestReadyzEndpoint verifies the readiness check passes once migrations have
// been applied and the token codec is loaded.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	resp := doJSON(t, http.MethodGet, baseURL+"/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decodeBody[healthPayload](t, resp)
	require.Equal(t, "ok", health.Status)

	t.Logf("Readyz endpoint is healthy")
}
