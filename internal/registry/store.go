package registry

import (
	"context"
	"time"
)

// SharePatch describes a partial update to a stored grant.
type SharePatch struct {
	// Scope, when non-nil, replaces the stored scope after sanitization.
	Scope map[string]any
	// ExpiresAt is applied as given: nil clears any expiry.
	ExpiresAt *time.Time
}

// ShareStore persists share grants. Exactly one active grant may exist per
// (home, buyer) pair; Upsert is the write entry point that preserves this.
type ShareStore interface {
	Create(ctx context.Context, homeID, buyerID string, scope map[string]any, expiresAt *time.Time) (*ShareGrant, error)
	Update(ctx context.Context, homeID, shareID string, patch SharePatch) (*ShareGrant, error)
	Delete(ctx context.Context, homeID, shareID string) error
	FindByHomeAndBuyer(ctx context.Context, homeID, buyerID string) (*ShareGrant, error)
	Upsert(ctx context.Context, homeID, buyerID string, scope map[string]any, expiresAt *time.Time) (*ShareGrant, bool, error)
}

// HomeCatalog serves the immutable home fixtures.
type HomeCatalog interface {
	Find(ctx context.Context, id string) (Home, error)
}

// WishlistCatalog serves externally derived wishlist aggregates.
type WishlistCatalog interface {
	Snapshot(ctx context.Context, id string) (WishlistSnapshot, error)
	Matches(ctx context.Context, id string) (WishlistSnapshot, []WishlistMatch, error)
}
