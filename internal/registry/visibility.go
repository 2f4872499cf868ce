package registry

import (
	"context"
	"errors"
	"time"

	"hearth.homes/internal/auth"
)

// AccessLevel is the terminal outcome of a visibility resolution.
type AccessLevel int

const (
	AccessDenied AccessLevel = iota
	AccessScoped
	AccessFull
)

// Deny reasons, surfaced at the HTTP boundary as 401/403 sub-codes.
const (
	DenyUnauthenticated = "unauthenticated"
	DenyWrongRole       = "wrong_role"
	DenyNoGrant         = "no_grant"
	DenyGrantExpired    = "grant_expired"
)

// Access is the resolved visibility for one requester against one home.
type Access struct {
	Level  AccessLevel
	Scope  Scope
	Reason string // set only when Level is AccessDenied
}

// Visibility resolves what a requester may see of a home: full access for the
// owner-seller or a managing agent, scoped access for a buyer holding an
// active grant, denial otherwise.
type Visibility struct {
	shares ShareStore
}

// NewVisibility wires the resolver to the share store.
func NewVisibility(shares ShareStore) *Visibility {
	return &Visibility{shares: shares}
}

// Resolve evaluates the requester against the home at the given instant.
// Expired grants are treated as denied but intentionally left in storage.
func (v *Visibility) Resolve(ctx context.Context, id auth.Identity, home Home, now time.Time) (Access, error) {
	if !id.IsAuthenticated() {
		return Access{Level: AccessDenied, Reason: DenyUnauthenticated}, nil
	}

	role := auth.NormalizeRole(id.Role)
	if role == auth.RoleSeller && home.OwnerID == id.UserID {
		return Access{Level: AccessFull, Scope: FullScope()}, nil
	}
	if role == auth.RoleAgent && id.HasScope(auth.ScopeManageHomes) {
		return Access{Level: AccessFull, Scope: FullScope()}, nil
	}

	if role != auth.RoleBuyer {
		return Access{Level: AccessDenied, Reason: DenyWrongRole}, nil
	}

	grant, err := v.shares.FindByHomeAndBuyer(ctx, home.ID, id.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Access{Level: AccessDenied, Reason: DenyNoGrant}, nil
		}
		return Access{}, err
	}
	if grant.Expired(now) {
		return Access{Level: AccessDenied, Reason: DenyGrantExpired}, nil
	}
	return Access{Level: AccessScoped, Scope: grant.Scope}, nil
}

// CanManage reports whether the requester may create, update or revoke shares
// for the home: the owner acting as seller, or a managing agent.
func CanManage(id auth.Identity, home Home) bool {
	role := auth.NormalizeRole(id.Role)
	if role == auth.RoleSeller && home.OwnerID == id.UserID {
		return true
	}
	return role == auth.RoleAgent && id.HasScope(auth.ScopeManageHomes)
}
