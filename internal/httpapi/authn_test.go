package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hearth.homes/internal/auth"
)

func TestBearerTokenFlow(t *testing.T) {
	t.Setenv("HEARTH_AUTH_SECRET", "integration-test-secret")
	auth.ResetSecretForTests()
	defer auth.ResetSecretForTests()

	srv := httptest.NewServer(newTestAPI().Handler())
	defer srv.Close()
	c := newClient(t, srv)

	resp, body := c.do(http.MethodPost, "/v1/auth/token", map[string]any{
		"user": "seller-1",
		"role": "seller",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("token status %d: %s", resp.StatusCode, body)
	}
	tok := decode[tokenResponse](t, body)
	if tok.Token == "" {
		t.Fatal("empty token")
	}

	// The token authenticates a share creation end to end.
	resp, body = c.do(http.MethodPost, "/homes/home-100/shares", map[string]any{
		"buyerId": "buyer-1",
		"scope":   map[string]any{"photos": true},
	}, map[string]string{"Authorization": "Bearer " + tok.Token})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("share with bearer token status %d: %s", resp.StatusCode, body)
	}
}

func TestBearerTokenRejections(t *testing.T) {
	t.Setenv("HEARTH_AUTH_SECRET", "integration-test-secret")
	auth.ResetSecretForTests()
	defer auth.ResetSecretForTests()

	srv := httptest.NewServer(newTestAPI().Handler())
	defer srv.Close()
	c := newClient(t, srv)

	resp, _ := c.do(http.MethodGet, "/shared/homes/home-100", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", resp.StatusCode)
	}

	resp, _ = c.do(http.MethodGet, "/shared/homes/home-100", nil, map[string]string{
		"Authorization": "Basic dXNlcjpwYXNz",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", resp.StatusCode)
	}
}

func TestTokenEndpointValidation(t *testing.T) {
	t.Setenv("HEARTH_AUTH_SECRET", "integration-test-secret")
	auth.ResetSecretForTests()
	defer auth.ResetSecretForTests()

	srv := httptest.NewServer(newTestAPI().Handler())
	defer srv.Close()
	c := newClient(t, srv)

	resp, _ := c.do(http.MethodPost, "/v1/auth/token", map[string]any{
		"user": "", "role": "seller",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing user, got %d", resp.StatusCode)
	}

	resp, _ = c.do(http.MethodPost, "/v1/auth/token", map[string]any{
		"user": "u1", "role": "wizard",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", resp.StatusCode)
	}
}

func TestHeaderIdentityNormalizesRole(t *testing.T) {
	srv := httptest.NewServer(newTestAPI().Handler())
	defer srv.Close()
	c := newClient(t, srv)

	resp, _ := c.do(http.MethodGet, "/shared/homes/home-100", nil, map[string]string{
		headerUserID: "seller-1",
		headerRole:   "  SELLER ",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("role header must be normalized, got %d", resp.StatusCode)
	}
}
