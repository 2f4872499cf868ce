package registry

// CoarseAddress replaces the full address when the requester's scope does not
// include it.
type CoarseAddress struct {
	Area string `json:"area"`
	City string `json:"city"`
}

// HomeView is the projected payload of a home. Address is either the full
// Address or a CoarseAddress depending on scope.
type HomeView struct {
	ID           string  `json:"id"`
	PropertyType string  `json:"propertyType"`
	Beds         int     `json:"beds"`
	Baths        float64 `json:"baths"`
	Summary      string  `json:"summary,omitempty"`
	Photos       []Photo `json:"photos"`
	Address      any     `json:"address"`
}

// ProjectHome emits only the fields the resolved scope authorizes. Structural
// fields are always present; the scope whitelist guarantees no other flag can
// leak additional data.
func ProjectHome(h Home, scope Scope) HomeView {
	view := HomeView{
		ID:           h.ID,
		PropertyType: h.PropertyType,
		Beds:         h.Beds,
		Baths:        h.Baths,
		Photos:       []Photo{},
	}
	if scope.Has(ScopeProfile) {
		view.Summary = h.Summary
	}
	if scope.Has(ScopePhotos) && len(h.Photos) > 0 {
		view.Photos = make([]Photo, len(h.Photos))
		copy(view.Photos, h.Photos)
	}
	if scope.Has(ScopeAddress) {
		view.Address = h.Address
	} else {
		view.Address = CoarseAddress{Area: h.Neighbourhood, City: h.City}
	}
	return view
}
