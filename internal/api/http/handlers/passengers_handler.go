package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/service"
)

// PassengersHandler exposes passenger account endpoints.
type PassengersHandler struct {
	passengers *service.PassengerService
}

func NewPassengersHandler(passengers *service.PassengerService) *PassengersHandler {
	return &PassengersHandler{passengers: passengers}
}

// Create handles POST /passengers.
func (h *PassengersHandler) Create(c *fiber.Ctx) error {
	passenger, err := h.create(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "passenger created", dto.NewPassengerResponse(passenger))
}

func (h *PassengersHandler) create(c *fiber.Ctx) (*domain.Passenger, error) {
	var req dto.CreatePassengerRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return h.passengers.CreatePassenger(c.UserContext(), service.CreatePassengerInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
}

// Update handles PUT /passengers/:id.
func (h *PassengersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePassengerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	passenger, err := h.passengers.UpdatePassenger(c.UserContext(), req.Patch(id))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "passenger updated", dto.NewPassengerResponse(passenger))
}

// UpdatePassword handles PUT /passengers/:id/password.
func (h *PassengersHandler) UpdatePassword(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	passenger, err := h.passengers.UpdatePassword(c.UserContext(), id, domain.PasswordChange{
		Current: req.CurrentPassword,
		New:     req.NewPassword,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password updated", dto.NewPassengerResponse(passenger))
}

// Count handles GET /passengers/count.
func (h *PassengersHandler) Count(c *fiber.Ctx) error {
	count, err := h.passengers.CountPassengers(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "passenger count", dto.PassengerCountResponse{Count: count})
}
