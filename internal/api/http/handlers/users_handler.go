package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/users-service/internal/api/dto"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/service"
)

// UsersHandler exposes user account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	created, err := h.users.CreateUser(c.UserContext(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Status:   domain.UserStatus(req.Status),
	})
	if err != nil {
		return err
	}

	message := "user created"
	if !created.Notified() {
		message = "user created; credentials notification failed"
	}
	return respond(c, http.StatusCreated, message, dto.NewUserResponse(created.User))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user deleted", nil)
}

// UpdateStatus handles PUT /users/:id/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateStatus(c.UserContext(), id, domain.UserStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "status updated", dto.NewUserResponse(user))
}

// ListByRole handles GET /users?role=.
func (h *UsersHandler) ListByRole(c *fiber.Ctx) error {
	users, err := h.users.GetUsersByRole(c.UserContext(), domain.Role(c.Query("role")))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "users", dto.NewUserResponses(users))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetUserByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user", dto.NewUserResponse(user))
}

// UpdatePassword handles PUT /users/:id/password.
func (h *UsersHandler) UpdatePassword(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdatePassword(c.UserContext(), id, domain.PasswordChange{
		Current: req.CurrentPassword,
		New:     req.NewPassword,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "password updated", dto.NewUserResponse(user))
}
