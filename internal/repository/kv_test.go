package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cipromart/directory/internal/storage"
	"github.com/lib/pq"
)

var _ storage.Backend = (*PostgresKVRepository)(nil)

const (
	selectQuery = `SELECT value FROM kv_store WHERE key = $1`
	upsertQuery = `INSERT INTO kv_store (key, value, updated_at)`
	deleteQuery = `DELETE FROM kv_store WHERE key = $1`
)

func setupKVMock(t *testing.T) (*PostgresKVRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresKVRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestGet_Found(t *testing.T) {
	repo, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
		WithArgs("cipromart_data").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"users":[]}`)))

	value, ok, err := repo.Get(context.Background(), "cipromart_data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || string(value) != `{"users":[]}` {
		t.Errorf("Get = %q, %v", value, ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGet_Missing(t *testing.T) {
	repo, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
		WithArgs("businessProfile").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	value, ok, err := repo.Get(context.Background(), "businessProfile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || value != nil {
		t.Errorf("expected missing key, got %q, %v", value, ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGet_Error(t *testing.T) {
	repo, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
		WithArgs("k").
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.Get(context.Background(), "k")
	if err == nil || !regexp.MustCompile(`kv get k`).MatchString(err.Error()) {
		t.Errorf("expected kv get error, got %v", err)
	}
}

func TestSet_Upserts(t *testing.T) {
	repo, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs("cipromart_data", `{"users":[]}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Set(context.Background(), "cipromart_data", []byte(`{"users":[]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSet_InvalidJSONRejected(t *testing.T) {
	repo, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs("k", "not json").
		WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type json"})

	err := repo.Set(context.Background(), "k", []byte("not json"))
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code.Name() != "invalid_text_representation" {
		t.Errorf("expected wrapped pq error, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	repo, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
		WithArgs("k").
		WillReturnError(errors.New("gone"))

	if err := repo.Remove(context.Background(), "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Remove(context.Background(), "k"); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreOverPostgres(t *testing.T) {
	repo, mock, cleanup := setupKVMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
		WithArgs(storage.DataKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec(regexp.QuoteMeta(upsertQuery)).
		WithArgs(storage.DataKey, `{"users":[],"session":{"currentUserId":null}}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := storage.New(repo)
	if err := s.InitializeStorage(context.Background()); err != nil {
		t.Fatalf("InitializeStorage failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
