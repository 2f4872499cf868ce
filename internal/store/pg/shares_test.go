package pg

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"hearth.homes/internal/registry"
)

func TestCreateInsertsSanitizedScope(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("insert into home_shares").
		WithArgs(sqlmock.AnyArg(), "home-100", "buyer-1", []byte(`{"photos":true}`),
			sqlmock.AnyArg(), sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewShares(db)
	grant, err := store.Create(context.Background(), "home-100", "buyer-1",
		map[string]any{"photos": true, "ssn": true}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if grant.ID == "" || grant.Scope.Has("ssn") {
		t.Fatalf("unexpected grant: %+v", grant)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByHomeAndBuyerNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select id, home_id, buyer_id, scope, created_at, updated_at, expires_at from home_shares where home_id=").
		WithArgs("home-100", "buyer-404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	store := NewShares(db)
	if _, err := store.FindByHomeAndBuyer(context.Background(), "home-100", "buyer-404"); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertUpdatesExistingGrant(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "home_id", "buyer_id", "scope", "created_at", "updated_at", "expires_at"}).
		AddRow("01GRANT", "home-100", "buyer-1", []byte(`{"photos":true}`), now, now, nil)

	mock.ExpectQuery("select id, home_id, buyer_id, scope, created_at, updated_at, expires_at from home_shares where home_id=").
		WithArgs("home-100", "buyer-1").
		WillReturnRows(rows)
	mock.ExpectQuery("select id, home_id, buyer_id, scope, created_at, updated_at, expires_at from home_shares where id=").
		WithArgs("01GRANT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "home_id", "buyer_id", "scope", "created_at", "updated_at", "expires_at"}).
			AddRow("01GRANT", "home-100", "buyer-1", []byte(`{"photos":true}`), now, now, nil))
	mock.ExpectExec("update home_shares set scope=").
		WithArgs([]byte(`{"address":true}`), sqlmock.AnyArg(), nil, "01GRANT", "home-100").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewShares(db)
	grant, created, err := store.Upsert(context.Background(), "home-100", "buyer-1",
		map[string]any{"address": true}, nil)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created {
		t.Fatal("expected update, not create")
	}
	if !grant.Scope.Has(registry.ScopeAddress) || grant.Scope.Has(registry.ScopePhotos) {
		t.Fatalf("latest scope must win: %v", grant.Scope)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("delete from home_shares").
		WithArgs("01MISSING", "home-100").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewShares(db)
	if err := store.Delete(context.Background(), "home-100", "01MISSING"); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
