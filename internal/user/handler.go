package user

import (
	"mime/multipart"
	"net/mail"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/desatorate/desatorate-backend/internal/auth"
	"github.com/desatorate/desatorate-backend/internal/avatar"
	"github.com/desatorate/desatorate-backend/internal/device"
)

type Handler struct {
	service   *Service
	devices   *device.Service
	avatars   *avatar.Store
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewHandler(service *Service, devices *device.Service, avatars *avatar.Store, jwtSecret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{
		service:   service,
		devices:   devices,
		avatars:   avatars,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-up", h.register)
	app.Post("/api/v1/sign-in", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
	// partial payloads are accepted, so PUT and PATCH share one handler
	app.Put("/api/v1/profile", h.updateProfile)
	app.Patch("/api/v1/profile", h.updateProfile)
	app.Post("/api/v1/profile/avatar", h.uploadAvatar)
}

type registerRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
	Phone          string `json:"phone"`
	Birthday       string `json:"birthday"`
	Gender         string `json:"gender"`
	DeviceToken    string `json:"deviceToken"`
	DeviceOS       string `json:"deviceOs"`
}

type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DeviceOS    string `json:"deviceOs"`
	DeviceToken string `json:"deviceToken"`
}

func (r registerRequest) isMissingRequiredFields() bool {
	return r.Username == "" || r.Email == "" || r.Password == "" || r.DeviceToken == "" || r.DeviceOS == ""
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.isMissingRequiredFields() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "username, email, password, deviceToken and deviceOs are required"})
	}
	if _, err := mail.ParseAddress(payload.Email); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "invalid email"})
	}

	var birthday *string
	if payload.Birthday != "" {
		birthday = &payload.Birthday
	}

	created, err := h.service.Register(User{
		Username:       payload.Username,
		Email:          payload.Email,
		Password:       payload.Password,
		Name:           payload.Name,
		LastName:       payload.LastName,
		SecondLastName: payload.SecondLastName,
		Phone:          payload.Phone,
		Birthday:       birthday,
		Gender:         payload.Gender,
	})
	if err != nil {
		switch err {
		case ErrEmailExists, ErrUsernameExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case ErrInvalidGender:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	if _, err := h.devices.Upsert(created.ID, payload.DeviceToken, payload.DeviceOS); err != nil {
		switch err {
		case device.ErrMissingField, device.ErrTokenTooLong, device.ErrOSTooLong:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	token, err := IssueToken(h.jwtSecret, created, h.tokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	c.Set("Cache-Control", "no-store")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  sanitizeUser(created),
		"token": token,
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" || payload.DeviceOS == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email, password and deviceOs are required"})
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid credentials"})
	}

	if lastLogin, err := h.service.RecordLogin(u.ID); err == nil {
		u.LastLogin = &lastLogin
	}

	if payload.DeviceToken != "" {
		if _, err := h.devices.Upsert(u.ID, payload.DeviceToken, payload.DeviceOS); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		}
	}

	token, err := IssueToken(h.jwtSecret, u, h.tokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	c.Set("Cache-Control", "no-store")
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    sanitizeUser(u),
		"token":   token,
	})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	u, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	return c.JSON(sanitizeUser(u))
}

// profileUpdateRequest carries the fields a client may change; nil means
// "leave as is".
type profileUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	SecondLastName *string `json:"secondLastName,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Birthday       *string `json:"birthday,omitempty"`
	Gender         *string `json:"gender,omitempty"`
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	existing, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	var payload profileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Name != nil {
		existing.Name = *payload.Name
	}
	if payload.LastName != nil {
		existing.LastName = *payload.LastName
	}
	if payload.SecondLastName != nil {
		existing.SecondLastName = *payload.SecondLastName
	}
	if payload.Phone != nil {
		existing.Phone = *payload.Phone
	}
	if payload.Birthday != nil {
		existing.Birthday = payload.Birthday
	}
	if payload.Gender != nil {
		existing.Gender = *payload.Gender
	}

	updated, err := h.service.Update(userID, existing)
	if err != nil {
		if err == ErrInvalidGender {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(sanitizeUser(updated))
}

func (h *Handler) uploadAvatar(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	// accept both the descriptive "avatar" key and the generic "file" key
	var file *multipart.FileHeader
	if f, ferr := c.FormFile("avatar"); ferr == nil && f != nil {
		file = f
	} else if f, ferr := c.FormFile("file"); ferr == nil && f != nil {
		file = f
	}
	if file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}

	existing, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	path, thumbPath, err := h.avatars.Save(file)
	if err != nil {
		if err == avatar.ErrUnsupportedImage {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	existing.Avatar = path
	updated, err := h.service.Update(userID, existing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"avatar":          path,
		"avatarThumbnail": thumbPath,
		"user":            sanitizeUser(updated),
	})
}

func sanitizeUser(u User) User {
	u.Password = ""
	u.AvatarThumbnail = avatar.ThumbPath(u.Avatar)
	return u
}
