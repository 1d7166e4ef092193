package main

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestEnsureSchema_ExecutesAllStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "user"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS user_device`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS request`).WillReturnResult(sqlmock.NewResult(0, 0))

	ensureSchema(db)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSchema_DateAndTimestampColumns(t *testing.T) {
	schema := strings.Join(schemaStatements, "\n")

	for _, want := range []string{
		"birthday DATE",
		"register_date TIMESTAMPTZ NOT NULL",
		"last_modify_date TIMESTAMPTZ NOT NULL",
		"last_login TIMESTAMPTZ",
		"request_date TIMESTAMPTZ NOT NULL",
	} {
		if !strings.Contains(schema, want) {
			t.Errorf("schema missing %q", want)
		}
	}
	for _, column := range []string{"birthday", "register_date", "last_modify_date", "last_login", "request_date"} {
		if strings.Contains(schema, column+" TEXT") {
			t.Errorf("%s must not be a TEXT column", column)
		}
	}
}
