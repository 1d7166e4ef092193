package request

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func requestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "last_name", "second_last_name", "email", "phone",
		"request_date", "device_os", "comment", "status", "user_id",
	})
}

func TestPostgresCreateRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`INSERT INTO request`).
		WithArgs("Ana", "García", "", "ana@x.com", "555", "2024-01-01T00:00:00Z", "android", "Fuga", true, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	created, err := repo.Create(Request{
		Name:        "Ana",
		LastName:    "García",
		Email:       "ana@x.com",
		Phone:       "555",
		RequestDate: "2024-01-01T00:00:00Z",
		DeviceOS:    "android",
		Comment:     "Fuga",
		Status:      true,
		UserID:      7,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 11 {
		t.Fatalf("expected id 11, got %d", created.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := requestRows().
		AddRow(2, "b", "", "", "b@x.com", "", "2024-01-01T00:00:00Z", "ios", "c", true, 7).
		AddRow(1, "a", "", "", "a@x.com", "", "2024-01-01T00:00:00Z", "ios", "c", true, 7)
	mock.ExpectQuery(`WHERE id = ANY`).
		WithArgs(pq.Array([]int{2, 1}), 7).
		WillReturnRows(rows)

	got, err := repo.ListByIDs(7, []int{2, 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected result %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByIDs_EmptySkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	got, err := repo.ListByIDs(7, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty slice without a query, got %v %v", got, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdate_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE request`).
		WithArgs("2024-01-01T00:00:00Z", false, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.Update(Request{ID: 99, RequestDate: "2024-01-01T00:00:00Z", Status: false}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
