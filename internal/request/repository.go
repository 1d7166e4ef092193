package request

import (
	"errors"
	"sync"
)

var (
	ErrNotFound       = errors.New("request not found")
	ErrMissingField   = errors.New("name, email, comment and deviceOs are required")
	ErrCommentTooLong = errors.New("comment exceeds 500 characters")
)

type Repository interface {
	Create(req Request) (Request, error)
	GetByID(id int) (Request, error)
	ListByUser(userID int) ([]Request, error)
	// ListByIDs returns the requests whose id is present in ids, restricted
	// to the given user, ordered the same way as the ids argument. An empty
	// ids slice returns an empty result without querying.
	ListByIDs(userID int, ids []int) ([]Request, error)
	Update(req Request) (Request, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	requests []Request
	nextID   int
}

func NewInMemoryRepository(seed []Request) *InMemoryRepository {
	repo := &InMemoryRepository{
		requests: make([]Request, 0, len(seed)),
		nextID:   1,
	}

	maxID := 0
	for _, req := range seed {
		repo.requests = append(repo.requests, req)
		if req.ID > maxID {
			maxID = req.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) Create(req Request) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == 0 {
		req.ID = r.nextID
		r.nextID++
	}

	r.requests = append(r.requests, req)
	return req, nil
}

func (r *InMemoryRepository) GetByID(id int) (Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}

	return Request{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Request, 0)
	for _, req := range r.requests {
		if req.UserID == userID {
			result = append(result, req)
		}
	}

	return result, nil
}

func (r *InMemoryRepository) ListByIDs(userID int, ids []int) ([]Request, error) {
	if len(ids) == 0 {
		return []Request{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Request, 0, len(ids))
	for _, id := range ids {
		for _, req := range r.requests {
			if req.ID == id && req.UserID == userID {
				result = append(result, req)
				break
			}
		}
	}

	return result, nil
}

func (r *InMemoryRepository) Update(req Request) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.requests {
		if existing.ID == req.ID {
			r.requests[i] = req
			return req, nil
		}
	}

	return Request{}, ErrNotFound
}
