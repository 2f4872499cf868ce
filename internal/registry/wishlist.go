package registry

import (
	"time"

	"hearth.homes/internal/auth"
)

// BestFit references the highest scoring home for a wishlist.
type BestFit struct {
	HomeID string  `json:"homeId"`
	Score  float64 `json:"score"`
}

// SnapshotView is the aggregate wishlist envelope served to every role.
type SnapshotView struct {
	ID         string    `json:"id"`
	MatchCount int       `json:"matchCount"`
	BestFit    BestFit   `json:"bestFit"`
	NewSince   time.Time `json:"newSince"`
}

// MatchedHomesView adds the itemized match list to the aggregate envelope.
// Buyers always receive an empty list with the restricted flag set.
type MatchedHomesView struct {
	SnapshotView
	Items      []WishlistMatch `json:"items"`
	Restricted bool            `json:"restricted"`
	Message    string          `json:"message,omitempty"`
}

const buyerRestrictionMessage = "itemized matches are not available to buyer accounts; aggregate counts only"

// SnapshotViewOf builds the aggregate-only envelope.
func SnapshotViewOf(s WishlistSnapshot) SnapshotView {
	return SnapshotView{
		ID:         s.ID,
		MatchCount: s.MatchCount,
		BestFit:    BestFit{HomeID: s.BestFitHomeID, Score: s.BestFitScore},
		NewSince:   s.NewSince,
	}
}

// MatchedHomesViewFor merges itemized matches into the aggregate envelope,
// forcing the list empty for buyer requesters regardless of stored data.
func MatchedHomesViewFor(s WishlistSnapshot, items []WishlistMatch, role string) MatchedHomesView {
	view := MatchedHomesView{
		SnapshotView: SnapshotViewOf(s),
		Items:        items,
	}
	if view.Items == nil {
		view.Items = []WishlistMatch{}
	}
	if auth.NormalizeRole(role) == auth.RoleBuyer {
		view.Items = []WishlistMatch{}
		view.Restricted = true
		view.Message = buyerRestrictionMessage
	}
	return view
}
