package request

import (
	"strconv"
	"strings"

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
	app.Post("/api/v1/request", h.createRequest)
	app.Get("/api/v1/request", h.listRequests)
	app.Get("/api/v1/request/batch", h.batchRequests)
	app.Patch("/api/v1/request/:id<[0-9]+>/close", h.closeRequest)
}

type createRequestPayload struct {
	Name           string `json:"name"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DeviceOS       string `json:"deviceOs"`
	Comment        string `json:"comment"`
}

func (h *Handler) createRequest(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createRequestPayload)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(userID, Request{
		Name:           payload.Name,
		LastName:       payload.LastName,
		SecondLastName: payload.SecondLastName,
		Email:          payload.Email,
		Phone:          payload.Phone,
		DeviceOS:       payload.DeviceOS,
		Comment:        payload.Comment,
	})
	if err != nil {
		switch err {
		case ErrMissingField, ErrCommentTooLong:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) listRequests(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	requests, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(requests)
}

// batchRequests returns the caller's requests for a comma-separated ids
// query parameter, in the order given. Clients use it to resync previously
// submitted inquiries.
func (h *Handler) batchRequests(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids := make([]int, 0)
	for _, raw := range strings.Split(c.Query("ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "ids must be integers"})
		}
		ids = append(ids, id)
	}

	requests, err := h.service.ListByIDs(userID, ids)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(requests)
}

func (h *Handler) closeRequest(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	closed, err := h.service.Close(userID, id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "request not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(closed)
}
