package auth

import "strings"

// Roles recognised by the registry. The identity provider is external; these
// values arrive already validated via headers or a signed token.
const (
	RoleBuyer    = "buyer"
	RoleSeller   = "seller"
	RoleAgent    = "agent"
	RoleMortgage = "mortgage"
)

// ScopeManageHomes marks an agent allowed to manage home listings and shares.
const ScopeManageHomes = "homes:manage"

// Identity is the per-request auth context: who is calling and what they may do.
type Identity struct {
	UserID string
	Role   string
	Scopes []string
}

// IsAuthenticated reports whether any identity was supplied at all.
func (id Identity) IsAuthenticated() bool {
	return strings.TrimSpace(id.UserID) != ""
}

// HasScope reports whether the identity carries the given capability scope.
func (id Identity) HasScope(scope string) bool {
	scope = strings.TrimSpace(strings.ToLower(scope))
	if scope == "" {
		return false
	}
	for _, s := range id.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// NormalizeRole lower-cases and trims a role value. Unknown roles are passed
// through unchanged so the caller can reject them explicitly.
func NormalizeRole(role string) string {
	return strings.TrimSpace(strings.ToLower(role))
}

// KnownRole reports whether the role is one the registry understands.
func KnownRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleBuyer, RoleSeller, RoleAgent, RoleMortgage:
		return true
	}
	return false
}

// ParseScopes splits a space- or comma-separated scope list, lower-cases and
// deduplicates the entries.
func ParseScopes(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(strings.ToLower(f))
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
