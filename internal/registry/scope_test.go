package registry

import "testing"

func TestSanitizeScopeWhitelists(t *testing.T) {
	in := map[string]any{
		"address":  true,
		"profile":  1.0,
		"photos":   "yes",
		"ssn":      true,
		"owner_id": true,
	}
	out := SanitizeScope(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 flags, got %v", out)
	}
	for _, key := range []string{ScopeAddress, ScopeProfile, ScopePhotos} {
		if !out.Has(key) {
			t.Fatalf("expected %s to survive", key)
		}
	}
	if out.Has("ssn") || out.Has("owner_id") {
		t.Fatalf("unexpected keys leaked: %v", out)
	}
}

func TestSanitizeScopeDropsFalsy(t *testing.T) {
	in := map[string]any{
		"address": false,
		"profile": 0.0,
		"photos":  "",
	}
	out := SanitizeScope(in)
	if len(out) != 0 {
		t.Fatalf("expected empty scope, got %v", out)
	}
	for _, v := range out {
		if !v {
			t.Fatal("scope must never contain false entries")
		}
	}
}

func TestSanitizeScopeNilInput(t *testing.T) {
	if out := SanitizeScope(nil); len(out) != 0 {
		t.Fatalf("nil input must yield empty scope, got %v", out)
	}
}

func TestFullScope(t *testing.T) {
	s := FullScope()
	if !s.Has(ScopeAddress) || !s.Has(ScopeProfile) || !s.Has(ScopePhotos) {
		t.Fatalf("full scope incomplete: %v", s)
	}
}
