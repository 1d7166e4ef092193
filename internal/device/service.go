package device

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert replaces the user's registered device token in place, or inserts a
// row when the user has none. The get-or-create pair is not atomic: two
// concurrent registrations for the same user can both insert. Last write
// wins.
func (s *Service) Upsert(userID int, token, deviceOS string) (Device, error) {
	if token == "" || deviceOS == "" {
		return Device{}, ErrMissingField
	}
	if len(token) > MaxTokenLen {
		return Device{}, ErrTokenTooLong
	}
	if len(deviceOS) > MaxOSLen {
		return Device{}, ErrOSTooLong
	}

	existing, err := s.repo.GetByUser(userID)
	if err == nil {
		existing.DeviceToken = token
		existing.DeviceOS = deviceOS
		existing.Status = true
		return s.repo.Update(existing)
	}
	if err != ErrNotFound {
		return Device{}, err
	}

	return s.repo.Create(Device{
		UserID:      userID,
		DeviceToken: token,
		DeviceOS:    deviceOS,
		Status:      true,
	})
}

// GetByUser returns the user's current registration.
func (s *Service) GetByUser(userID int) (Device, error) {
	return s.repo.GetByUser(userID)
}
