package request

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	requestColumns = `id, name, last_name, second_last_name, email, phone, request_date, device_os, comment, status, user_id`

	insertRequestQuery = `
		INSERT INTO request (name, last_name, second_last_name, email, phone, request_date, device_os, comment, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	getRequestByIDQuery = `
		SELECT ` + requestColumns + `
		FROM request
		WHERE id = $1
	`
	listRequestsByUserQuery = `
		SELECT ` + requestColumns + `
		FROM request
		WHERE user_id = $1
		ORDER BY id DESC
	`
	listRequestsByIDsQuery = `
		SELECT ` + requestColumns + `
		FROM request
		WHERE id = ANY($1::int[]) AND user_id = $2
		ORDER BY array_position($1::int[], id)
	`
	updateRequestQuery = `
		UPDATE request
		SET request_date = $1,
			status = $2
		WHERE id = $3
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(req Request) (Request, error) {
	var id int
	err := r.db.QueryRow(
		insertRequestQuery,
		req.Name,
		req.LastName,
		req.SecondLastName,
		req.Email,
		req.Phone,
		req.RequestDate,
		req.DeviceOS,
		req.Comment,
		req.Status,
		req.UserID,
	).Scan(&id)
	if err != nil {
		return Request{}, err
	}

	req.ID = id
	return req, nil
}

func (r *PostgresRepository) GetByID(id int) (Request, error) {
	row := r.db.QueryRow(getRequestByIDQuery, id)
	req, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}

	return req, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Request, error) {
	rows, err := r.db.Query(listRequestsByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *PostgresRepository) ListByIDs(userID int, ids []int) ([]Request, error) {
	if len(ids) == 0 {
		return []Request{}, nil
	}

	rows, err := r.db.Query(listRequestsByIDsQuery, pq.Array(ids), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *PostgresRepository) Update(req Request) (Request, error) {
	result, err := r.db.Exec(updateRequestQuery, req.RequestDate, req.Status, req.ID)
	if err != nil {
		return Request{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Request{}, err
	}
	if affected == 0 {
		return Request{}, ErrNotFound
	}

	return req, nil
}

func collectRequests(rows *sql.Rows) ([]Request, error) {
	requests := make([]Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func scanRequest(scanner rowScanner) (Request, error) {
	var req Request
	if err := scanner.Scan(
		&req.ID,
		&req.Name,
		&req.LastName,
		&req.SecondLastName,
		&req.Email,
		&req.Phone,
		&req.RequestDate,
		&req.DeviceOS,
		&req.Comment,
		&req.Status,
		&req.UserID,
	); err != nil {
		return Request{}, err
	}

	return req, nil
}
