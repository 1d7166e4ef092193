package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `id, username, name, last_name, second_last_name, avatar, phone, email, password, birthday, gender, register_date, last_modify_date, is_active, is_staff, is_superuser, last_login`

	getUserByIDQuery = `
		SELECT ` + userColumns + `
		FROM "user"
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT ` + userColumns + `
		FROM "user"
		WHERE email = $1
	`
	getUserByUsernameQuery = `
		SELECT ` + userColumns + `
		FROM "user"
		WHERE username = $1
	`

	insertUserQuery = `
		INSERT INTO "user" (username, name, last_name, second_last_name, avatar, phone, email, password, birthday, gender, register_date, last_modify_date, is_active, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	updateUserQuery = `
		UPDATE "user"
		SET username = $1,
			name = $2,
			last_name = $3,
			second_last_name = $4,
			avatar = $5,
			phone = $6,
			email = $7,
			birthday = $8,
			gender = $9,
			is_active = $10,
			last_modify_date = $11
		WHERE id = $12
	`
	updateLastLoginQuery = `UPDATE "user" SET last_login = $1 WHERE id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.getOne(getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) GetByUsername(username string) (User, error) {
	return r.getOne(getUserByUsernameQuery, username)
}

func (r *PostgresRepository) getOne(query string, arg any) (User, error) {
	row := r.db.QueryRow(query, arg)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		user.Username,
		nullIfEmpty(user.Name),
		nullIfEmpty(user.LastName),
		nullIfEmpty(user.SecondLastName),
		nullIfEmpty(user.Avatar),
		nullIfEmpty(user.Phone),
		user.Email,
		user.Password,
		nullString(user.Birthday),
		nullIfEmpty(user.Gender),
		user.RegisterDate,
		user.LastModifyDate,
		user.IsActive,
		user.IsStaff,
		user.IsSuperuser,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}

	user.ID = id
	return user, nil
}

// Update leaves register_date and password untouched.
func (r *PostgresRepository) Update(id int, userUpdate User) (User, error) {
	result, err := r.db.Exec(
		updateUserQuery,
		userUpdate.Username,
		nullIfEmpty(userUpdate.Name),
		nullIfEmpty(userUpdate.LastName),
		nullIfEmpty(userUpdate.SecondLastName),
		nullIfEmpty(userUpdate.Avatar),
		nullIfEmpty(userUpdate.Phone),
		userUpdate.Email,
		nullString(userUpdate.Birthday),
		nullIfEmpty(userUpdate.Gender),
		userUpdate.IsActive,
		userUpdate.LastModifyDate,
		id,
	)
	if err != nil {
		return User{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) UpdateLastLogin(id int, lastLogin string) error {
	result, err := r.db.Exec(updateLastLoginQuery, lastLogin, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var name, lastName, secondLastName, avatar, phone, birthday, gender, lastLogin sql.NullString

	if err := scanner.Scan(
		&user.ID,
		&user.Username,
		&name,
		&lastName,
		&secondLastName,
		&avatar,
		&phone,
		&user.Email,
		&user.Password,
		&birthday,
		&gender,
		&user.RegisterDate,
		&user.LastModifyDate,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&lastLogin,
	); err != nil {
		return User{}, err
	}

	user.Name = name.String
	user.LastName = lastName.String
	user.SecondLastName = secondLastName.String
	user.Avatar = avatar.String
	user.Phone = phone.String
	user.Gender = gender.String
	if birthday.Valid {
		user.Birthday = &birthday.String
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.String
	}

	return user, nil
}

func nullIfEmpty(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
