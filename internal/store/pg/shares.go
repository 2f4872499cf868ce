package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"hearth.homes/internal/ids"
	"hearth.homes/internal/registry"
)

var _ registry.ShareStore = (*Shares)(nil)

// Shares implements registry.ShareStore using PostgreSQL. The unique index on
// (home_id, buyer_id) backs the one-active-grant-per-pair invariant.
type Shares struct {
	db *sql.DB
}

// NewShares wraps the given database handle.
func NewShares(db *sql.DB) *Shares {
	return &Shares{db: db}
}

const shareColumns = `id, home_id, buyer_id, scope, created_at, updated_at, expires_at`

func (s *Shares) Create(ctx context.Context, homeID, buyerID string, scope map[string]any, expiresAt *time.Time) (*registry.ShareGrant, error) {
	now := time.Now().UTC()
	grant := &registry.ShareGrant{
		ID:        ids.New(),
		HomeID:    homeID,
		BuyerID:   buyerID,
		Scope:     registry.SanitizeScope(scope),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if expiresAt != nil {
		utc := expiresAt.UTC()
		grant.ExpiresAt = &utc
	}
	scopeJSON, err := json.Marshal(grant.Scope)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx,
		`insert into home_shares(id, home_id, buyer_id, scope, created_at, updated_at, expires_at)
		 values($1,$2,$3,$4,$5,$6,$7)`,
		grant.ID, grant.HomeID, grant.BuyerID, scopeJSON, grant.CreatedAt, grant.UpdatedAt, grant.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *Shares) Update(ctx context.Context, homeID, shareID string, patch registry.SharePatch) (*registry.ShareGrant, error) {
	grant, err := s.findByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if grant.HomeID != homeID {
		return nil, registry.ErrNotFound
	}
	if patch.Scope != nil {
		grant.Scope = registry.SanitizeScope(patch.Scope)
	}
	if patch.ExpiresAt != nil {
		utc := patch.ExpiresAt.UTC()
		grant.ExpiresAt = &utc
	} else {
		grant.ExpiresAt = nil
	}
	grant.UpdatedAt = time.Now().UTC()

	scopeJSON, err := json.Marshal(grant.Scope)
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`update home_shares set scope=$1, updated_at=$2, expires_at=$3 where id=$4 and home_id=$5`,
		scopeJSON, grant.UpdatedAt, grant.ExpiresAt, shareID, homeID,
	)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, registry.ErrNotFound
	}
	return grant, nil
}

func (s *Shares) Delete(ctx context.Context, homeID, shareID string) error {
	res, err := s.db.ExecContext(ctx,
		`delete from home_shares where id=$1 and home_id=$2`, shareID, homeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return registry.ErrNotFound
	}
	return nil
}

func (s *Shares) FindByHomeAndBuyer(ctx context.Context, homeID, buyerID string) (*registry.ShareGrant, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+shareColumns+` from home_shares where home_id=$1 and buyer_id=$2 order by created_at asc limit 1`,
		homeID, buyerID,
	)
	return scanGrant(row)
}

func (s *Shares) Upsert(ctx context.Context, homeID, buyerID string, scope map[string]any, expiresAt *time.Time) (*registry.ShareGrant, bool, error) {
	existing, err := s.FindByHomeAndBuyer(ctx, homeID, buyerID)
	switch {
	case err == nil:
		if scope == nil {
			scope = map[string]any{}
		}
		grant, err := s.Update(ctx, homeID, existing.ID, registry.SharePatch{Scope: scope, ExpiresAt: expiresAt})
		if err != nil {
			return nil, false, err
		}
		return grant, false, nil
	case err == registry.ErrNotFound:
		grant, err := s.Create(ctx, homeID, buyerID, scope, expiresAt)
		if err != nil {
			return nil, false, err
		}
		return grant, true, nil
	default:
		return nil, false, err
	}
}

func (s *Shares) findByID(ctx context.Context, shareID string) (*registry.ShareGrant, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+shareColumns+` from home_shares where id=$1`, shareID)
	return scanGrant(row)
}

func scanGrant(row *sql.Row) (*registry.ShareGrant, error) {
	var (
		grant     registry.ShareGrant
		scopeJSON []byte
		expiresAt sql.NullTime
	)
	err := row.Scan(&grant.ID, &grant.HomeID, &grant.BuyerID, &scopeJSON,
		&grant.CreatedAt, &grant.UpdatedAt, &expiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, registry.ErrNotFound
		}
		return nil, err
	}
	grant.Scope = registry.Scope{}
	if len(scopeJSON) > 0 {
		if err := json.Unmarshal(scopeJSON, &grant.Scope); err != nil {
			return nil, err
		}
	}
	if expiresAt.Valid {
		utc := expiresAt.Time.UTC()
		grant.ExpiresAt = &utc
	}
	return &grant, nil
}
