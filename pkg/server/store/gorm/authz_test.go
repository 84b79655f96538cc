package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return gormDB, mock
}

func TestHasPermission(t *testing.T) {
	db, mock := newMockDB(t)
	authz := NewAuthzStore(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(uint(1), "read").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if !authz.HasPermission(1, "read") {
		t.Error("HasPermission() = false, want true")
	}

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(uint(1), "delete").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	if authz.HasPermission(1, "delete") {
		t.Error("HasPermission() = true, want false")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestEffectivePermissions(t *testing.T) {
	db, mock := newMockDB(t)
	authz := NewAuthzStore(db)

	mock.ExpectQuery(`SELECT DISTINCT p.name`).
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("create").
			AddRow("read").
			AddRow("update"))

	names, err := authz.EffectivePermissions(2)
	if err != nil {
		t.Fatalf("EffectivePermissions() error = %v", err)
	}
	if len(names) != 3 || names[0] != "create" || names[2] != "update" {
		t.Errorf("EffectivePermissions() = %v", names)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
