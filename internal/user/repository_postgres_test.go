package user

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "name", "last_name", "second_last_name", "avatar", "phone",
		"email", "password", "birthday", "gender", "register_date", "last_modify_date",
		"is_active", "is_staff", "is_superuser", "last_login",
	})
}

func TestPostgresGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := userRows().AddRow(
		1, "alice", "Ana", nil, nil, nil, nil,
		"alice@x.com", "$2a$10$hash", nil, "Mujer", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z",
		true, false, false, nil,
	)
	mock.ExpectQuery(`FROM "user"`).WithArgs("alice@x.com").WillReturnRows(rows)

	u, err := repo.GetByEmail("alice@x.com")
	if err != nil {
		t.Fatalf("expected user, got %v", err)
	}
	if u.ID != 1 || u.Name != "Ana" || u.Gender != "Mujer" || u.LastLogin != nil {
		t.Fatalf("unexpected user %+v", u)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`FROM "user"`).WithArgs("ghost@x.com").WillReturnRows(userRows())

	if _, err := repo.GetByEmail("ghost@x.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`INSERT INTO "user"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	created, err := repo.Create(User{
		Username:       "alice",
		Email:          "alice@x.com",
		Password:       "$2a$10$hash",
		RegisterDate:   "2024-01-01T00:00:00Z",
		LastModifyDate: "2024-01-01T00:00:00Z",
		IsActive:       true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("expected id 42, got %d", created.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateLastLogin_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE "user" SET last_login`).
		WithArgs("2024-01-01T00:00:00Z", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateLastLogin(99, "2024-01-01T00:00:00Z"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
