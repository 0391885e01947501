package dto

import "time"

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest payload for self-service sign-up.
type RegisterRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=20"`
	Email     *string `json:"email" validate:"omitnil,email"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName *string `json:"first_name" validate:"omitnil,min=3,max=20"`
	LastName  *string `json:"last_name" validate:"omitnil,min=3,max=20"`
}

// VerifyRequest payload for POST /auth/verify.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyResponse echoes the claims of a valid token.
type VerifyResponse struct {
	Valid     bool      `json:"valid"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IDResponse is returned by create and update endpoints.
type IDResponse struct {
	ID string `json:"id"`
}

// CountResponse is returned by count endpoints.
type CountResponse struct {
	Count int64 `json:"count"`
}

// DeleteRequest identifies the row removed by a DELETE endpoint.
type DeleteRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}
