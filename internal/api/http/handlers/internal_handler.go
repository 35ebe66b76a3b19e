package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	"github.com/spec-kit/users-service/internal/service"
	apperrors "github.com/spec-kit/users-service/pkg/util"
)

// InternalHandler serves trusted callers such as the auth service. Responses
// include the stored password hash.
type InternalHandler struct {
	users      *service.UserService
	passengers *service.PassengerService
	create     *PassengersHandler
}

func NewInternalHandler(users *service.UserService, passengers *service.PassengerService) *InternalHandler {
	return &InternalHandler{users: users, passengers: passengers, create: NewPassengersHandler(passengers)}
}

// UserByEmail handles GET /internal/users?email=. A missing user yields an empty object.
func (h *InternalHandler) UserByEmail(c *fiber.Ctx) error {
	email, err := requiredQuery(c, "email")
	if err != nil {
		return err
	}
	user, err := h.users.GetUserByEmail(c.UserContext(), email)
	if apperrors.IsCode(err, apperrors.CodeNotFound) {
		return respond(c, http.StatusOK, "user not found", fiber.Map{})
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user", dto.NewInternalUserResponse(user))
}

// ResetUserPassword handles PUT /internal/users/:id/reset-password?newPassword=.
func (h *InternalHandler) ResetUserPassword(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.users.ResetPassword(c.UserContext(), id, c.Query("newPassword"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password reset", dto.NewUserResponse(user))
}

// PassengerByEmail handles GET /internal/passengers?email=.
func (h *InternalHandler) PassengerByEmail(c *fiber.Ctx) error {
	email, err := requiredQuery(c, "email")
	if err != nil {
		return err
	}
	passenger, err := h.passengers.GetPassengerByEmail(c.UserContext(), email)
	if apperrors.IsCode(err, apperrors.CodeNotFound) {
		return respond(c, http.StatusOK, "passenger not found", fiber.Map{})
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "passenger", dto.NewInternalPassengerResponse(passenger))
}

// ResetPassengerPassword handles PUT /internal/passengers/:id/reset-password?newPassword=.
func (h *InternalHandler) ResetPassengerPassword(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	passenger, err := h.passengers.ResetPassword(c.UserContext(), id, c.Query("newPassword"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password reset", dto.NewPassengerResponse(passenger))
}

// CreatePassenger handles POST /internal/passengers, used by sign-up flows
// that run behind the auth service.
func (h *InternalHandler) CreatePassenger(c *fiber.Ctx) error {
	passenger, err := h.create.create(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "passenger created", dto.NewInternalPassengerResponse(passenger))
}

func requiredQuery(c *fiber.Ctx, key string) (string, error) {
	val := c.Query(key)
	if val == "" {
		return "", apperrors.NewInvalidInput(key+" is required", map[string]any{"field": key})
	}
	return val, nil
}
