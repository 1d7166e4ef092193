package request

import (
	"log"
	"time"
)

// Notifier announces a newly created request to operators. Implementations
// are best effort; a failure never rolls back the creation.
type Notifier interface {
	NotifyNewRequest(req Request) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create persists the inquiry with a server-assigned timestamp and open
// status, then notifies operators.
func (s *Service) Create(userID int, req Request) (Request, error) {
	if req.Name == "" || req.Email == "" || req.Comment == "" || req.DeviceOS == "" {
		return Request{}, ErrMissingField
	}
	if len(req.Comment) > MaxCommentLen {
		return Request{}, ErrCommentTooLong
	}

	req.UserID = userID
	req.Status = true
	req.RequestDate = time.Now().UTC().Format(time.RFC3339)

	created, err := s.repo.Create(req)
	if err != nil {
		return Request{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyNewRequest(created); err != nil {
			log.Printf("request %d: notification failed: %v", created.ID, err)
		}
	}

	return created, nil
}

func (s *Service) ListByUser(userID int) ([]Request, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListByIDs(userID int, ids []int) ([]Request, error) {
	return s.repo.ListByIDs(userID, ids)
}

// Close marks the request as handled. request_date is refreshed on every
// save, not only at creation; that matches the historical behavior the
// mobile clients rely on.
func (s *Service) Close(userID, id int) (Request, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return Request{}, err
	}
	if req.UserID != userID {
		return Request{}, ErrNotFound
	}

	req.Status = false
	req.RequestDate = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(req)
}
