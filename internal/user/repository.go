package user

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidGender      = errors.New("gender must be Mujer or Hombre")
)

type Repository interface {
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	GetByUsername(username string) (User, error)
	Create(user User) (User, error)
	Update(id int, user User) (User, error)
	UpdateLastLogin(id int, lastLogin string) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{
		users:  make([]User, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, user := range seed {
		repo.users = append(repo.users, user)
		if user.ID > maxID {
			maxID = user.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUsername(username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}

	r.users = append(r.users, user)
	return user, nil
}

// Update overwrites the mutable profile fields. register_date never changes
// after creation; the password only changes when a new hash is supplied.
func (r *InMemoryRepository) Update(id int, userUpdate User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			user.Username = userUpdate.Username
			user.Name = userUpdate.Name
			user.LastName = userUpdate.LastName
			user.SecondLastName = userUpdate.SecondLastName
			user.Avatar = userUpdate.Avatar
			user.Phone = userUpdate.Phone
			user.Email = userUpdate.Email
			user.Birthday = userUpdate.Birthday
			user.Gender = userUpdate.Gender
			user.IsActive = userUpdate.IsActive
			user.LastModifyDate = userUpdate.LastModifyDate
			if userUpdate.Password != "" {
				user.Password = userUpdate.Password
			}
			r.users[i] = user
			return user, nil
		}
	}

	return User{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateLastLogin(id int, lastLogin string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users[i].LastLogin = &lastLogin
			return nil
		}
	}

	return ErrNotFound
}
