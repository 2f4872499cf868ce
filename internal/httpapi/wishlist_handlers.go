package httpapi

import (
	"net/http"
	"strings"

	"hearth.homes/internal/registry"
)

// handleWishlists dispatches GET /wishlists/{id}/supply-snapshot and
// GET /wishlists/{id}/matched-homes.
func (a *API) handleWishlists(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/wishlists/")
	segments := strings.Split(strings.Trim(rest, "/"), "/")
	if len(segments) != 2 || segments[0] == "" {
		writeError(w, r, http.StatusNotFound, codeNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	wishlistID := segments[0]
	switch segments[1] {
	case "supply-snapshot":
		snap, err := a.wishlists.Snapshot(r.Context(), wishlistID)
		if err != nil {
			handleRegistryError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, registry.SnapshotViewOf(snap))
	case "matched-homes":
		snap, items, err := a.wishlists.Matches(r.Context(), wishlistID)
		if err != nil {
			handleRegistryError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, registry.MatchedHomesViewFor(snap, items, id.Role))
	default:
		writeError(w, r, http.StatusNotFound, codeNotFound, "resource not found")
	}
}
