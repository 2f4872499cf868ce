package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                                   "/",
		"/metrics":                           "/metrics",
		"/homes/home-100/shares":             "/homes/:id/shares",
		"/homes/home-100/shares/01ABC":       "/homes/:id/shares/:share_id",
		"/shared/homes/home-100":             "/shared/homes/:id",
		"/wishlists/wl-1/supply-snapshot":    "/wishlists/:id/supply-snapshot",
		"/wishlists/wl-1/matched-homes":      "/wishlists/:id/matched-homes",
		"/market-trends?geoCode=board:REBGV": "/market-trends",
		"/v1/info":                           "/v1/info",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
