package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"hearth.homes/internal/auth"
)

const tokenTTL = 15 * time.Minute

type tokenRequest struct {
	User   string   `json:"user"`
	Role   string   `json:"role"`
	Scopes []string `json:"scopes"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleAuthToken issues short-lived development tokens. In production the
// identity provider in front of the registry mints these instead.
func (a *API) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	req.User = strings.TrimSpace(req.User)
	if req.User == "" {
		writeError(w, r, http.StatusBadRequest, codeValidation, "user is required")
		return
	}
	if !auth.KnownRole(req.Role) {
		writeError(w, r, http.StatusBadRequest, codeValidation, "role must be one of buyer, seller, agent, mortgage")
		return
	}

	now := time.Now().UTC()
	token, err := auth.GenerateToken(req.User, req.Role, req.Scopes, tokenTTL)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownRole) {
			writeError(w, r, http.StatusBadRequest, codeValidation, "role must be one of buyer, seller, agent, mortgage")
			return
		}
		writeError(w, r, http.StatusInternalServerError, codeInternal, "token generation failed")
		return
	}

	a.audit(r.Context(), "auth.token.issue", "user", req.User, map[string]string{
		"role": auth.NormalizeRole(req.Role),
	})
	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: now.Add(tokenTTL),
	})
}
