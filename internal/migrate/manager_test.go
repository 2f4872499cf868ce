package migrate

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpSkipsAppliedMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("create table if not exists schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select name from schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_home_shares"))
	// Only the second migration runs.
	mock.ExpectBegin()
	mock.ExpectExec("create index if not exists home_shares_expires_at_idx").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectExec("insert into schema_migrations").
		WithArgs("0002_home_shares_expiry_idx", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	m := NewManager(db, Registry())
	if err := m.Up(context.Background()); err != nil {
		t.Fatalf("Up: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegistryOrder(t *testing.T) {
	migs := Registry()
	if len(migs) == 0 {
		t.Fatal("expected at least one migration")
	}
	prev := ""
	for _, m := range migs {
		if m.Name <= prev {
			t.Fatalf("migrations out of order: %s after %s", m.Name, prev)
		}
		if len(m.Statements) == 0 {
			t.Fatalf("migration %s has no statements", m.Name)
		}
		prev = m.Name
	}
}
