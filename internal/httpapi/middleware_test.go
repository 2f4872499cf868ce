package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitReturns429(t *testing.T) {
	a := newTestAPI()
	a.rateBurst = 2
	a.ratePerSec = 1
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()
	c := newClient(t, srv)

	var limited *http.Response
	var body []byte
	for i := 0; i < 10; i++ {
		resp, b := c.do(http.MethodGet, "/healthz", nil, nil)
		if resp.StatusCode == http.StatusTooManyRequests {
			limited, body = resp, b
			break
		}
	}
	if limited == nil {
		t.Fatal("expected a 429 within the burst window")
	}
	if limited.Header.Get("Retry-After") == "" {
		t.Fatal("429 must carry Retry-After")
	}
	payload := decode[map[string]any](t, body)
	if payload["code"] != codeRateLimited {
		t.Fatalf("expected rate_limited, got %v", payload)
	}
	if payload["request_id"] == nil || payload["request_id"] == "" {
		t.Fatalf("rate limit errors must carry a request id: %v", payload)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := httptest.NewServer(newTestAPI().Handler())
	defer srv.Close()
	c := newClient(t, srv)

	// Generated when absent.
	resp, _ := c.do(http.MethodGet, "/healthz", nil, nil)
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("response must carry a generated request id")
	}

	// Echoed when supplied.
	resp, _ = c.do(http.MethodGet, "/healthz", nil, map[string]string{"X-Request-Id": "rid-123"})
	if got := resp.Header.Get("X-Request-Id"); got != "rid-123" {
		t.Fatalf("request id not echoed: %q", got)
	}
}

func TestSecurityHeadersPresent(t *testing.T) {
	srv := httptest.NewServer(newTestAPI().Handler())
	defer srv.Close()
	c := newClient(t, srv)

	resp, _ := c.do(http.MethodGet, "/healthz", nil, nil)
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing nosniff header")
	}
	if resp.Header.Get("X-Frame-Options") != "DENY" {
		t.Fatal("missing frame options header")
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := httptest.NewServer(newTestAPI().Handler())
	defer srv.Close()
	c := newClient(t, srv)

	resp, _ := c.do(http.MethodOptions, "/homes/home-100/shares", nil, map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": "POST",
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("preflight status %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("origin not allowed: %v", resp.Header)
	}

	// Unknown origins get no CORS grant.
	resp, _ = c.do(http.MethodOptions, "/healthz", nil, map[string]string{
		"Origin": "https://evil.example",
	})
	if resp.Header.Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unexpected CORS grant for unknown origin")
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	srv := httptest.NewServer(newTestAPI().Handler())
	defer srv.Close()
	c := newClient(t, srv)

	big := make([]byte, maxBodyBytes+1024)
	for i := range big {
		big[i] = 'a'
	}
	resp, _ := c.do(http.MethodPost, "/homes/home-100/shares", map[string]any{
		"buyerId": "buyer-1",
		"scope":   map[string]any{"photos": string(big)},
	}, identity("seller-1", "seller"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized body, got %d", resp.StatusCode)
	}
}
