package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/desatorate/desatorate-backend/internal/mail"
)

type Service struct {
	repo   Repository
	mailer mail.Mailer
}

func NewService(repo Repository, mailer mail.Mailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// NormalizeEmail canonicalizes the login identifier before any lookup or
// write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register creates the account. Duplicate checks run before the insert so a
// validation failure leaves no partial write.
func (s *Service) Register(user User) (User, error) {
	return s.create(user, false)
}

// CreateSuperuser provisions an operator account with the staff and
// superuser flags set. Used by the admin CLI.
func (s *Service) CreateSuperuser(username, email, password string) (User, error) {
	return s.create(User{Username: username, Email: email, Password: password}, true)
}

func (s *Service) create(user User, elevated bool) (User, error) {
	user.Email = NormalizeEmail(user.Email)
	user.Username = strings.TrimSpace(user.Username)

	if !ValidGender(user.Gender) {
		return User{}, ErrInvalidGender
	}

	if _, err := s.repo.GetByUsername(user.Username); err == nil {
		return User{}, ErrUsernameExists
	} else if err != ErrNotFound {
		return User{}, err
	}
	if _, err := s.repo.GetByEmail(user.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	user.Password = string(hashed)

	now := time.Now().UTC().Format(time.RFC3339)
	user.RegisterDate = now
	user.LastModifyDate = now
	user.IsActive = true
	user.IsStaff = elevated
	user.IsSuperuser = elevated

	return s.repo.Create(user)
}

// Authenticate verifies the email/password pair. A missing user and a wrong
// password yield the same error so callers cannot enumerate accounts.
func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// RecordLogin stamps last_login with the current time.
func (s *Service) RecordLogin(id int) (string, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.UpdateLastLogin(id, now); err != nil {
		return "", err
	}
	return now, nil
}

// Update saves profile changes, refreshing last_modify_date. register_date
// is never touched after creation.
func (s *Service) Update(id int, user User) (User, error) {
	user.Email = NormalizeEmail(user.Email)
	if !ValidGender(user.Gender) {
		return User{}, ErrInvalidGender
	}

	user.LastModifyDate = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, user)
}

// SendEmail dispatches a multi-part message to the user through the
// configured mail transport. It reports whether the transport accepted the
// message; transport failures are returned to the caller.
func (s *Service) SendEmail(user User, subject, body, html string) (bool, error) {
	if err := s.mailer.Send(user.Email, subject, body, html); err != nil {
		return false, err
	}
	return true, nil
}
