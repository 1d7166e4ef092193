package device

import (
	"errors"
	"sync"
)

var (
	ErrNotFound     = errors.New("device not found")
	ErrTokenTooLong = errors.New("device token exceeds 250 characters")
	ErrOSTooLong    = errors.New("device os exceeds 20 characters")
	ErrMissingField = errors.New("device token and device os required")
)

type Repository interface {
	GetByUser(userID int) (Device, error)
	Create(device Device) (Device, error)
	Update(device Device) (Device, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	devices []Device
	nextID  int
}

func NewInMemoryRepository(seed []Device) *InMemoryRepository {
	repo := &InMemoryRepository{
		devices: make([]Device, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, d := range seed {
		repo.devices = append(repo.devices, d)
		if d.ID > maxID {
			maxID = d.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByUser(userID int) (Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.devices {
		if d.UserID == userID {
			return d, nil
		}
	}

	return Device{}, ErrNotFound
}

func (r *InMemoryRepository) Create(device Device) (Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if device.ID == 0 {
		device.ID = r.nextID
		r.nextID++
	}

	r.devices = append(r.devices, device)
	return device, nil
}

func (r *InMemoryRepository) Update(device Device) (Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.devices {
		if d.ID == device.ID {
			r.devices[i] = device
			return device, nil
		}
	}

	return Device{}, ErrNotFound
}
