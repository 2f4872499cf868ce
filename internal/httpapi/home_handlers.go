package httpapi

import (
	"net/http"
	"strings"
	"time"

	"hearth.homes/internal/auth"
	"hearth.homes/internal/registry"
)

// handleSharedHome serves GET /shared/homes/{homeId}: the buyer-facing
// projection of a home, filtered by the caller's resolved visibility.
func (a *API) handleSharedHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	homeID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/shared/homes/"), "/")
	if homeID == "" || strings.Contains(homeID, "/") {
		writeError(w, r, http.StatusNotFound, codeNotFound, "resource not found")
		return
	}

	home, err := a.homes.Find(r.Context(), homeID)
	if err != nil {
		handleRegistryError(w, r, err)
		return
	}

	id, _ := auth.IdentityFromContext(r.Context())
	access, err := a.visibility.Resolve(r.Context(), id, home, time.Now().UTC())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}

	if access.Level == registry.AccessDenied {
		if access.Reason == registry.DenyUnauthenticated {
			writeError(w, r, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
			return
		}
		writeErrorPayload(w, r, http.StatusForbidden, map[string]any{
			"code":   codeForbidden,
			"error":  "you do not have access to this home",
			"reason": access.Reason,
		})
		return
	}

	writeJSON(w, http.StatusOK, registry.ProjectHome(home, access.Scope))
}
