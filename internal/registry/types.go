package registry

import (
	"errors"
	"time"
)

// Photo is a single listing photo.
type Photo struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Address is the full civic address of a home. Only disclosed to requesters
// whose scope permits it.
type Address struct {
	Street     string `json:"street"`
	Unit       string `json:"unit,omitempty"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// Home is an immutable listing record owned by exactly one seller identity.
type Home struct {
	ID            string
	OwnerID       string
	PropertyType  string
	Beds          int
	Baths         float64
	Summary       string
	Photos        []Photo
	Address       Address
	Neighbourhood string
	City          string
}

// ShareGrant is an owner-authorized, scoped, optionally time-limited
// permission for one buyer to view selected fields of one home.
type ShareGrant struct {
	ID        string     `json:"id"`
	HomeID    string     `json:"homeId"`
	BuyerID   string     `json:"buyerId"`
	Scope     Scope      `json:"scope"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the grant's expiry has passed. Grants without an
// expiry never expire.
func (g ShareGrant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && !g.ExpiresAt.After(now)
}

// WishlistSnapshot is an externally derived aggregate served read-only.
type WishlistSnapshot struct {
	ID            string
	MatchCount    int
	BestFitHomeID string
	BestFitScore  float64
	NewSince      time.Time
}

// WishlistMatch is a per-home itemized match record. Only non-buyer roles may
// see these.
type WishlistMatch struct {
	Alias        string `json:"alias"`
	MatchPercent int    `json:"matchPercent"`
	Area         string `json:"area"`
	PriceBand    string `json:"priceBand"`
}

// ErrNotFound is returned when a home, share grant or wishlist is absent.
var ErrNotFound = errors.New("registry: not found")
