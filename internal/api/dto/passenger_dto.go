package dto

import (
	"time"

	"github.com/spec-kit/users-service/internal/domain"
)

// CreatePassengerRequest payload for POST /passengers.
type CreatePassengerRequest struct {
	Name     string `json:"name" validate:"max=255"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Password string `json:"password"`
}

// UpdatePassengerRequest is a partial update; absent fields are left alone.
// Password is accepted by the decoder only so that the service can reject it.
type UpdatePassengerRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password"`
}

// Patch converts the request into a domain patch for passenger id.
func (r UpdatePassengerRequest) Patch(id int64) domain.PassengerPatch {
	return domain.PassengerPatch{ID: id, Name: r.Name, Email: r.Email, Password: r.Password}
}

// PassengerResponse is the public view of a passenger.
type PassengerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InternalPassengerResponse includes the stored hash.
type InternalPassengerResponse struct {
	PassengerResponse
	Password string `json:"password"`
}

// PassengerCountResponse payload for GET /passengers/count.
type PassengerCountResponse struct {
	Count int64 `json:"count"`
}

func NewPassengerResponse(passenger *domain.Passenger) PassengerResponse {
	return PassengerResponse{
		ID:        passenger.ID,
		Name:      passenger.Name,
		Email:     passenger.Email,
		CreatedAt: passenger.CreatedAt,
		UpdatedAt: passenger.UpdatedAt,
	}
}

func NewInternalPassengerResponse(passenger *domain.Passenger) InternalPassengerResponse {
	return InternalPassengerResponse{PassengerResponse: NewPassengerResponse(passenger), Password: passenger.PasswordHash}
}
