package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/pkg/patch"
)

// CreateUserRequest payload for POST /users.
type CreateUserRequest struct {
	RegisterRequest
	Role   domain.Role       `json:"role"`
	Status domain.UserStatus `json:"status"`
}

// Input converts the request for the user service.
func (r CreateUserRequest) Input() service.CreateUserInput {
	return service.CreateUserInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
		Status:    r.Status,
	}
}

// UpdateUserRequest payload for PUT /users. Absent fields are left as they are.
type UpdateUserRequest struct {
	ID        string                         `json:"id" validate:"required,uuid"`
	Username  patch.Field[string]            `json:"username" validate:"omitnil,min=3,max=20"`
	Email     patch.Field[string]            `json:"email" validate:"omitnil,email"`
	Password  patch.Field[string]            `json:"password" validate:"omitnil,min=8,max=72"`
	FirstName patch.Field[string]            `json:"first_name" validate:"omitnil,min=3,max=20"`
	LastName  patch.Field[string]            `json:"last_name" validate:"omitnil,min=3,max=20"`
	Role      patch.Field[domain.Role]       `json:"role"`
	Status    patch.Field[domain.UserStatus] `json:"status"`
}

// Validate runs the tag checks and rejects null for required columns.
func (r UpdateUserRequest) Validate() error {
	if err := Validate(r); err != nil {
		return err
	}
	return rejectNull(map[string]interface{ IsNull() bool }{
		"username": r.Username,
		"password": r.Password,
		"role":     r.Role,
		"status":   r.Status,
	})
}

// Input converts the request for the user service.
func (r UpdateUserRequest) Input() service.UpdateUserInput {
	return service.UpdateUserInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
		Status:    r.Status,
	}
}

// UserResponse is the public view of an account; the password hash is never
// included.
type UserResponse struct {
	ID        uuid.UUID         `json:"id"`
	Username  string            `json:"username"`
	Email     *string           `json:"email"`
	FirstName *string           `json:"first_name"`
	LastName  *string           `json:"last_name"`
	Role      domain.Role       `json:"role"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewUserResponse maps a stored user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserSummaryResponse is a user referenced from a ticket.
type UserSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
}

func newUserSummary(u domain.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
