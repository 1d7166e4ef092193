package device

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	getDeviceByUserQuery = `
		SELECT id, user_id, device_token, device_os, status
		FROM user_device
		WHERE user_id = $1
		ORDER BY id
		LIMIT 1
	`
	insertDeviceQuery = `
		INSERT INTO user_device (user_id, device_token, device_os, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	updateDeviceQuery = `
		UPDATE user_device
		SET device_token = $1,
			device_os = $2,
			status = $3
		WHERE id = $4
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUser(userID int) (Device, error) {
	var d Device
	err := r.db.QueryRow(getDeviceByUserQuery, userID).Scan(&d.ID, &d.UserID, &d.DeviceToken, &d.DeviceOS, &d.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return Device{}, ErrNotFound
		}
		return Device{}, err
	}

	return d, nil
}

func (r *PostgresRepository) Create(device Device) (Device, error) {
	var id int
	err := r.db.QueryRow(insertDeviceQuery, device.UserID, device.DeviceToken, device.DeviceOS, device.Status).Scan(&id)
	if err != nil {
		return Device{}, err
	}

	device.ID = id
	return device, nil
}

func (r *PostgresRepository) Update(device Device) (Device, error) {
	result, err := r.db.Exec(updateDeviceQuery, device.DeviceToken, device.DeviceOS, device.Status, device.ID)
	if err != nil {
		return Device{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Device{}, err
	}
	if affected == 0 {
		return Device{}, ErrNotFound
	}

	return device, nil
}
