package httpapi

import (
	"net/http"
	"strings"

	"hearth.homes/internal/auth"
)

// Identity headers set by the fronting gateway when no bearer token is used.
const (
	headerUserID = "X-User-Id"
	headerRole   = "X-User-Role"
	headerScopes = "X-User-Scopes"
)

// withIdentity resolves the caller's identity from either a bearer token or
// gateway-supplied headers and attaches it to the request context. Requests
// without credentials pass through unauthenticated; endpoints that need auth
// reject them individually.
func (a *API) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if header := r.Header.Get("Authorization"); header != "" {
			token, ok := bearerToken(header)
			if !ok {
				writeError(w, r, http.StatusUnauthorized, codeUnauthenticated, "authorization header must use the Bearer scheme")
				return
			}
			claims, err := auth.ParseAndValidate(token)
			if err != nil {
				writeError(w, r, http.StatusUnauthorized, codeUnauthenticated, "invalid or expired token")
				return
			}
			ctx := auth.ContextWithIdentity(r.Context(), claims.Identity())
			ctx = auth.ContextWithToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if userID := strings.TrimSpace(r.Header.Get(headerUserID)); userID != "" {
			id := auth.Identity{
				UserID: userID,
				Role:   auth.NormalizeRole(r.Header.Get(headerRole)),
				Scopes: auth.ParseScopes(r.Header.Get(headerScopes)),
			}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(r.Context(), id)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// requireIdentity writes a 401 and returns false when the request carries no
// identity.
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok || !id.IsAuthenticated() {
		writeError(w, r, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
		return auth.Identity{}, false
	}
	return id, true
}
