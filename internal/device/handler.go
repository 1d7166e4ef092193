package device

import (
	"github.com/gofiber/fiber/v2"

	"github.com/desatorate/desatorate-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/device", h.getDevice)
	app.Post("/api/v1/device", h.registerDevice)
}

type registerDeviceRequest struct {
	DeviceToken string `json:"deviceToken"`
	DeviceOS    string `json:"deviceOs"`
}

func (h *Handler) getDevice(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	d, err := h.service.GetByUser(userID)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no device registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(d)
}

func (h *Handler) registerDevice(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(registerDeviceRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	d, err := h.service.Upsert(userID, payload.DeviceToken, payload.DeviceOS)
	if err != nil {
		switch err {
		case ErrMissingField, ErrTokenTooLong, ErrOSTooLong:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(d)
}
