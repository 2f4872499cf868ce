package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hearth.homes/internal/auth"
	"hearth.homes/internal/obs"
	"hearth.homes/internal/registry"
	"hearth.homes/internal/stream"
)

type shareRequest struct {
	BuyerID   string         `json:"buyerId"`
	Scope     map[string]any `json:"scope"`
	ExpiresAt *string        `json:"expiresAt"`
}

// updateShareRequest uses raw messages so an absent scope can be told apart
// from an explicit empty object.
type updateShareRequest struct {
	Scope     json.RawMessage `json:"scope"`
	ExpiresAt *string         `json:"expiresAt"`
}

// handleHomeShares dispatches /homes/{homeId}/shares and
// /homes/{homeId}/shares/{shareId}.
func (a *API) handleHomeShares(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/homes/")
	segments := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(segments) == 2 && segments[1] == "shares":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.createShare(w, r, segments[0])
	case len(segments) == 3 && segments[1] == "shares":
		switch r.Method {
		case http.MethodPatch:
			a.updateShare(w, r, segments[0], segments[2])
		case http.MethodDelete:
			a.deleteShare(w, r, segments[0], segments[2])
		default:
			methodNotAllowed(w, r, http.MethodPatch, http.MethodDelete)
		}
	default:
		writeError(w, r, http.StatusNotFound, codeNotFound, "resource not found")
	}
}

func (a *API) createShare(w http.ResponseWriter, r *http.Request, homeID string) {
	id, home, ok := a.manageableHome(w, r, homeID)
	if !ok {
		return
	}

	var req shareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	req.BuyerID = strings.TrimSpace(req.BuyerID)
	if req.BuyerID == "" {
		writeError(w, r, http.StatusBadRequest, codeValidation, "buyerId is required")
		return
	}
	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	grant, created, err := a.shares.Upsert(r.Context(), home.ID, req.BuyerID, req.Scope, expiresAt)
	if err != nil {
		obs.ShareOp("upsert", "error")
		handleRegistryError(w, r, err)
		return
	}
	obs.ShareOp("upsert", "ok")

	event := "share.grant.update"
	action := stream.ActionUpdated
	if created {
		event = "share.grant.create"
		action = stream.ActionShared
	}
	a.audit(r.Context(), event, "share_grant", grant.ID, map[string]string{
		"home_id":  grant.HomeID,
		"buyer_id": grant.BuyerID,
		"actor":    id.UserID,
	})
	a.publishShareEvent(action, grant)

	w.Header().Set("Location", fmt.Sprintf("/homes/%s/shares/%s", grant.HomeID, grant.ID))
	writeJSON(w, http.StatusCreated, grant)
}

func (a *API) updateShare(w http.ResponseWriter, r *http.Request, homeID, shareID string) {
	id, home, ok := a.manageableHome(w, r, homeID)
	if !ok {
		return
	}

	var req updateShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	patch := registry.SharePatch{}
	if len(req.Scope) > 0 && string(req.Scope) != "null" {
		var scope map[string]any
		if err := json.Unmarshal(req.Scope, &scope); err != nil {
			writeError(w, r, http.StatusBadRequest, codeValidation, "scope must be an object")
			return
		}
		if scope == nil {
			scope = map[string]any{}
		}
		patch.Scope = scope
	}
	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	patch.ExpiresAt = expiresAt

	grant, err := a.shares.Update(r.Context(), home.ID, shareID, patch)
	if err != nil {
		obs.ShareOp("update", "error")
		handleRegistryError(w, r, err)
		return
	}
	obs.ShareOp("update", "ok")

	a.audit(r.Context(), "share.grant.update", "share_grant", grant.ID, map[string]string{
		"home_id":  grant.HomeID,
		"buyer_id": grant.BuyerID,
		"actor":    id.UserID,
	})
	a.publishShareEvent(stream.ActionUpdated, grant)

	writeJSON(w, http.StatusOK, grant)
}

func (a *API) deleteShare(w http.ResponseWriter, r *http.Request, homeID, shareID string) {
	id, home, ok := a.manageableHome(w, r, homeID)
	if !ok {
		return
	}

	if err := a.shares.Delete(r.Context(), home.ID, shareID); err != nil {
		obs.ShareOp("revoke", "error")
		handleRegistryError(w, r, err)
		return
	}
	obs.ShareOp("revoke", "ok")

	a.audit(r.Context(), "share.grant.revoke", "share_grant", shareID, map[string]string{
		"home_id": home.ID,
		"actor":   id.UserID,
	})
	if a.stream != nil {
		a.stream.Publish(stream.ShareEvent{
			Action:    stream.ActionRevoked,
			HomeID:    home.ID,
			Timestamp: time.Now().UTC(),
		})
	}

	w.WriteHeader(http.StatusNoContent)
}

// manageableHome authenticates the caller, loads the home and checks share
// management rights. Writes the error response itself on failure.
func (a *API) manageableHome(w http.ResponseWriter, r *http.Request, homeID string) (auth.Identity, registry.Home, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return auth.Identity{}, registry.Home{}, false
	}
	home, err := a.homes.Find(r.Context(), homeID)
	if err != nil {
		handleRegistryError(w, r, err)
		return auth.Identity{}, registry.Home{}, false
	}
	if !registry.CanManage(id, home) {
		writeErrorPayload(w, r, http.StatusForbidden, map[string]any{
			"code":   codeForbidden,
			"error":  "only the owner or a managing agent may manage shares for this home",
			"reason": registry.DenyWrongRole,
		})
		return auth.Identity{}, registry.Home{}, false
	}
	return id, home, true
}

func (a *API) publishShareEvent(action string, grant *registry.ShareGrant) {
	if a.stream == nil {
		return
	}
	a.stream.Publish(stream.ShareEvent{
		Action:    action,
		HomeID:    grant.HomeID,
		BuyerID:   grant.BuyerID,
		Scope:     grant.Scope.Keys(),
		Timestamp: time.Now().UTC(),
	})
}

func parseExpiry(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, fmt.Errorf("expiresAt must be an RFC 3339 timestamp")
	}
	utc := t.UTC()
	return &utc, nil
}
