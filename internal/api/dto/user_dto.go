package dto

import (
	"time"

	"github.com/spec-kit/users-service/internal/domain"
)

// CreateUserRequest payload for POST /users.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"max=255"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// UpdateStatusRequest payload for PUT /users/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PasswordChangeRequest payload for password updates on either account kind.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse is the public view of a user. It never carries the hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InternalUserResponse is returned to trusted services that verify credentials.
type InternalUserResponse struct {
	UserResponse
	Password string `json:"password"`
}

// NewUserResponse scrubs the credential hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses maps a slice.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

func NewInternalUserResponse(user *domain.User) InternalUserResponse {
	return InternalUserResponse{UserResponse: NewUserResponse(user), Password: user.PasswordHash}
}
