package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const defaultMigrationsTable = "schema_migrations"

// Migration is one named, ordered schema change. Statements run inside a
// single transaction.
type Migration struct {
	Name       string
	Statements []string
}

// Registry returns the schema the share store needs, in apply order.
func Registry() []Migration {
	return []Migration{
		{
			Name: "0001_home_shares",
			Statements: []string{
				`create table if not exists home_shares (
					id text primary key,
					home_id text not null,
					buyer_id text not null,
					scope jsonb not null default '{}'::jsonb,
					created_at timestamptz not null,
					updated_at timestamptz not null,
					expires_at timestamptz
				);`,
				`create unique index if not exists home_shares_home_buyer_idx
					on home_shares(home_id, buyer_id);`,
			},
		},
		{
			Name: "0002_home_shares_expiry_idx",
			Statements: []string{
				`create index if not exists home_shares_expires_at_idx
					on home_shares(expires_at) where expires_at is not null;`,
			},
		},
	}
}

// Manager applies embedded migrations and records them in a bookkeeping table.
type Manager struct {
	db         *sql.DB
	migrations []Migration
	table      string
}

// Option configures Manager.
type Option func(*Manager)

// WithMigrationsTable overrides the default bookkeeping table.
func WithMigrationsTable(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.table = name
		}
	}
}

// NewManager constructs a Manager over the given migration set.
func NewManager(db *sql.DB, migrations []Migration, opts ...Option) *Manager {
	m := &Manager{
		db:         db,
		migrations: migrations,
		table:      defaultMigrationsTable,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Up applies all pending migrations in order.
func (m *Manager) Up(ctx context.Context) error {
	if err := m.ensureTable(ctx); err != nil {
		return err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}
	for _, mig := range m.migrations {
		if applied[mig.Name] {
			continue
		}
		if err := m.exec(ctx, mig); err != nil {
			return fmt.Errorf("apply migration %s: %w", mig.Name, err)
		}
		if err := m.record(ctx, mig.Name); err != nil {
			return err
		}
	}
	return nil
}

// Status returns applied migrations in apply order.
func (m *Manager) Status(ctx context.Context) ([]string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	rows, err := m.db.QueryContext(ctx,
		fmt.Sprintf(`select name from %s order by applied_at asc`, m.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		res = append(res, name)
	}
	return res, rows.Err()
}

func (m *Manager) ensureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`
		create table if not exists %s (
			name text primary key,
			applied_at timestamptz not null default now()
		);`, m.table)
	_, err := m.db.ExecContext(ctx, ddl)
	return err
}

func (m *Manager) exec(ctx context.Context, mig Migration) error {
	if len(mig.Statements) == 0 {
		return errors.New("migration has no statements")
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range mig.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (m *Manager) record(ctx context.Context, name string) error {
	_, err := m.db.ExecContext(ctx,
		fmt.Sprintf(`insert into %s(name, applied_at) values ($1, $2)`, m.table),
		name, time.Now().UTC())
	return err
}

func (m *Manager) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, fmt.Sprintf(`select name from %s`, m.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result[name] = true
	}
	return result, rows.Err()
}
