package registry

import (
	"context"
	"testing"
	"time"
)

func TestUpsertKeepsOneGrantPerPair(t *testing.T) {
	s := NewInMemoryShares()
	ctx := context.Background()

	first, created, err := s.Upsert(ctx, "home-100", "buyer-1", map[string]any{"photos": true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("expected first upsert to create")
	}

	exp := time.Now().UTC().Add(24 * time.Hour)
	second, created, err := s.Upsert(ctx, "home-100", "buyer-1", map[string]any{"address": true}, &exp)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("expected second upsert to update")
	}
	if second.ID != first.ID {
		t.Fatalf("upsert duplicated grant: %s != %s", second.ID, first.ID)
	}
	if second.Scope.Has(ScopePhotos) || !second.Scope.Has(ScopeAddress) {
		t.Fatalf("second call's scope must win: %v", second.Scope)
	}
	if second.ExpiresAt == nil || !second.ExpiresAt.Equal(exp) {
		t.Fatalf("second call's expiry must win: %v", second.ExpiresAt)
	}

	if len(s.grants) != 1 {
		t.Fatalf("expected exactly one stored grant, got %d", len(s.grants))
	}
}

func TestUpdateNotFoundAndHomeMismatch(t *testing.T) {
	s := NewInMemoryShares()
	ctx := context.Background()

	grant, _, err := s.Upsert(ctx, "home-100", "buyer-1", nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Update(ctx, "home-100", "missing", SharePatch{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Update(ctx, "home-200", grant.ID, SharePatch{}); err != ErrNotFound {
		t.Fatalf("home mismatch must be not found, got %v", err)
	}
}

func TestUpdateClearsExpiryWhenAbsent(t *testing.T) {
	s := NewInMemoryShares()
	ctx := context.Background()

	exp := time.Now().UTC().Add(time.Hour)
	grant, err := s.Create(ctx, "home-100", "buyer-1", map[string]any{"photos": true}, &exp)
	if err != nil {
		t.Fatal(err)
	}

	// Patch without expiry: scope untouched, expiry cleared.
	updated, err := s.Update(ctx, "home-100", grant.ID, SharePatch{})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ExpiresAt != nil {
		t.Fatalf("expiry should be cleared, got %v", updated.ExpiresAt)
	}
	if !updated.Scope.Has(ScopePhotos) {
		t.Fatalf("omitted scope must stay unchanged: %v", updated.Scope)
	}
	if !updated.UpdatedAt.After(grant.UpdatedAt) && !updated.UpdatedAt.Equal(grant.UpdatedAt) {
		t.Fatalf("update timestamp went backwards: %v < %v", updated.UpdatedAt, grant.UpdatedAt)
	}
}

func TestDelete(t *testing.T) {
	s := NewInMemoryShares()
	ctx := context.Background()

	grant, err := s.Create(ctx, "home-100", "buyer-1", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "home-100", grant.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "home-100", grant.ID); err != ErrNotFound {
		t.Fatalf("second delete must be not found, got %v", err)
	}
	if _, err := s.FindByHomeAndBuyer(ctx, "home-100", "buyer-1"); err != ErrNotFound {
		t.Fatalf("grant should be gone, got %v", err)
	}
}

func TestCreateSanitizesScope(t *testing.T) {
	s := NewInMemoryShares()
	ctx := context.Background()

	grant, err := s.Create(ctx, "home-100", "buyer-1", map[string]any{"photos": true, "ssn": true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if grant.Scope.Has("ssn") {
		t.Fatalf("unexpected key stored: %v", grant.Scope)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewInMemoryShares()
	ctx := context.Background()

	grant, err := s.Create(ctx, "home-100", "buyer-1", map[string]any{"photos": true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	grant.Scope["address"] = true

	stored, err := s.FindByHomeAndBuyer(ctx, "home-100", "buyer-1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Scope.Has(ScopeAddress) {
		t.Fatal("caller mutation leaked into store")
	}
}
