package registry

import (
	"context"
	"sync"
	"time"

	"hearth.homes/internal/ids"
)

// InMemoryShares implements ShareStore with in-process concurrency safety.
// A process restart loses all grants; this is the reference behaviour.
type InMemoryShares struct {
	mu     sync.RWMutex
	grants []*ShareGrant
	byID   map[string]*ShareGrant
}

var _ ShareStore = (*InMemoryShares)(nil)

// NewInMemoryShares creates an empty grant store.
func NewInMemoryShares() *InMemoryShares {
	return &InMemoryShares{byID: make(map[string]*ShareGrant)}
}

func (s *InMemoryShares) Create(ctx context.Context, homeID, buyerID string, scope map[string]any, expiresAt *time.Time) (*ShareGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(homeID, buyerID, scope, expiresAt), nil
}

func (s *InMemoryShares) createLocked(homeID, buyerID string, scope map[string]any, expiresAt *time.Time) *ShareGrant {
	now := time.Now().UTC()
	grant := &ShareGrant{
		ID:        ids.New(),
		HomeID:    homeID,
		BuyerID:   buyerID,
		Scope:     SanitizeScope(scope),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: normalizeExpiry(expiresAt),
	}
	s.grants = append(s.grants, grant)
	s.byID[grant.ID] = grant
	return copyGrant(grant)
}

func (s *InMemoryShares) Update(ctx context.Context, homeID, shareID string, patch SharePatch) (*ShareGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(homeID, shareID, patch)
}

func (s *InMemoryShares) updateLocked(homeID, shareID string, patch SharePatch) (*ShareGrant, error) {
	grant, ok := s.byID[shareID]
	if !ok || grant.HomeID != homeID {
		return nil, ErrNotFound
	}
	if patch.Scope != nil {
		grant.Scope = SanitizeScope(patch.Scope)
	}
	grant.ExpiresAt = normalizeExpiry(patch.ExpiresAt)
	grant.UpdatedAt = time.Now().UTC()
	return copyGrant(grant), nil
}

func (s *InMemoryShares) Delete(ctx context.Context, homeID, shareID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	grant, ok := s.byID[shareID]
	if !ok || grant.HomeID != homeID {
		return ErrNotFound
	}
	delete(s.byID, shareID)
	for i, g := range s.grants {
		if g.ID == shareID {
			s.grants = append(s.grants[:i], s.grants[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryShares) FindByHomeAndBuyer(ctx context.Context, homeID, buyerID string) (*ShareGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g := s.findPairLocked(homeID, buyerID); g != nil {
		return copyGrant(g), nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryShares) findPairLocked(homeID, buyerID string) *ShareGrant {
	for _, g := range s.grants {
		if g.HomeID == homeID && g.BuyerID == buyerID {
			return g
		}
	}
	return nil
}

// Upsert updates the existing grant for the (home, buyer) pair or creates a
// new one. The latest call's scope and expiry always win.
func (s *InMemoryShares) Upsert(ctx context.Context, homeID, buyerID string, scope map[string]any, expiresAt *time.Time) (*ShareGrant, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.findPairLocked(homeID, buyerID); existing != nil {
		if scope == nil {
			scope = map[string]any{}
		}
		grant, err := s.updateLocked(homeID, existing.ID, SharePatch{Scope: scope, ExpiresAt: expiresAt})
		if err != nil {
			return nil, false, err
		}
		return grant, false, nil
	}
	return s.createLocked(homeID, buyerID, scope, expiresAt), true, nil
}

func normalizeExpiry(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func copyGrant(g *ShareGrant) *ShareGrant {
	out := *g
	out.Scope = make(Scope, len(g.Scope))
	for k, v := range g.Scope {
		out.Scope[k] = v
	}
	if g.ExpiresAt != nil {
		exp := *g.ExpiresAt
		out.ExpiresAt = &exp
	}
	return &out
}

// InMemoryHomes serves the fixture home catalog.
type InMemoryHomes struct {
	homes map[string]Home
}

var _ HomeCatalog = (*InMemoryHomes)(nil)

// NewInMemoryHomes indexes the given homes by id.
func NewInMemoryHomes(homes []Home) *InMemoryHomes {
	idx := make(map[string]Home, len(homes))
	for _, h := range homes {
		idx[h.ID] = h
	}
	return &InMemoryHomes{homes: idx}
}

func (c *InMemoryHomes) Find(ctx context.Context, id string) (Home, error) {
	h, ok := c.homes[id]
	if !ok {
		return Home{}, ErrNotFound
	}
	return h, nil
}

// InMemoryWishlists serves wishlist snapshots and itemized matches.
type InMemoryWishlists struct {
	snapshots map[string]WishlistSnapshot
	matches   map[string][]WishlistMatch
}

var _ WishlistCatalog = (*InMemoryWishlists)(nil)

// NewInMemoryWishlists indexes snapshots and their itemized matches by id.
func NewInMemoryWishlists(snapshots []WishlistSnapshot, matches map[string][]WishlistMatch) *InMemoryWishlists {
	idx := make(map[string]WishlistSnapshot, len(snapshots))
	for _, s := range snapshots {
		idx[s.ID] = s
	}
	return &InMemoryWishlists{snapshots: idx, matches: matches}
}

func (c *InMemoryWishlists) Snapshot(ctx context.Context, id string) (WishlistSnapshot, error) {
	s, ok := c.snapshots[id]
	if !ok {
		return WishlistSnapshot{}, ErrNotFound
	}
	return s, nil
}

func (c *InMemoryWishlists) Matches(ctx context.Context, id string) (WishlistSnapshot, []WishlistMatch, error) {
	s, ok := c.snapshots[id]
	if !ok {
		return WishlistSnapshot{}, nil, ErrNotFound
	}
	items := make([]WishlistMatch, len(c.matches[id]))
	copy(items, c.matches[id])
	return s, items, nil
}
